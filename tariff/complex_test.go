// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tariff_test

import (
	"strings"
	"testing"

	"github.com/someonegg/broker/tariff"
)

// mockCoster 按距离表返回运费，用于测试
type mockCoster map[tariff.Lane]float64

func (m mockCoster) Cost(from, to string) (float64, bool) {
	cost, ok := m[tariff.Lane{From: from, To: to}]
	return cost, ok
}

func TestFlatAndNone(t *testing.T) {
	t.Run("Flat", func(t *testing.T) {
		c := tariff.Flat(2.5)
		cost, ok := c.Cost("mill", "port")
		if !ok || cost != 2.5 {
			t.Errorf("Cost() = %v, %v, want 2.5, true", cost, ok)
		}
	})

	t.Run("None", func(t *testing.T) {
		if _, ok := tariff.None().Cost("mill", "port"); ok {
			t.Error("None().Cost() reported a known lane")
		}
	})
}

func TestNewComplexCoster(t *testing.T) {
	base := mockCoster{
		{From: "A", To: "X"}: 4,
		{From: "A", To: "Y"}: 6,
	}

	t.Run("NoCustomRecords", func(t *testing.T) {
		c := tariff.NewComplexCoster(base, nil)
		cost, ok := c.Cost("A", "Y")
		if !ok || cost != 6 {
			t.Errorf("Cost(A, Y) = %v, %v, want 6, true (delegated to base)", cost, ok)
		}
		if _, ok := c.Cost("B", "Y"); ok {
			t.Error("Cost(B, Y) found, want unknown lane")
		}
	})

	t.Run("OverrideAndAdd", func(t *testing.T) {
		c := tariff.NewComplexCoster(base, []tariff.CostRecord{
			{Lane: tariff.Lane{From: "A", To: "X"}, Cost: 1},
			{Lane: tariff.Lane{From: "B", To: "Y"}, Cost: 3},
		})

		if cost, _ := c.Cost("A", "X"); cost != 1 {
			t.Errorf("Cost(A, X) = %v, want 1", cost)
		}
		if cost, ok := c.Cost("B", "Y"); !ok || cost != 3 {
			t.Errorf("Cost(B, Y) = %v, %v, want 3, true", cost, ok)
		}
		// 方向敏感
		if _, ok := c.Cost("Y", "B"); ok {
			t.Error("Cost(Y, B) found, lanes are directed")
		}
	})

	t.Run("LaterRecordWins", func(t *testing.T) {
		lane := tariff.Lane{From: "A", To: "X"}
		c := tariff.NewComplexCoster(base, []tariff.CostRecord{
			{Lane: lane, Cost: 7},
			{Lane: lane, Cost: 9},
		})
		if cost, _ := c.Cost("A", "X"); cost != 9 {
			t.Errorf("Cost(A, X) = %v, want 9 (later record should override)", cost)
		}
	})

	t.Run("ZeroCostRecord", func(t *testing.T) {
		c := tariff.NewComplexCoster(tariff.Flat(5), []tariff.CostRecord{
			{Lane: tariff.Lane{From: "A", To: "X"}, Cost: 0},
		})
		if cost, ok := c.Cost("A", "X"); !ok || cost != 0 {
			t.Errorf("Cost(A, X) = %v, %v, want 0, true", cost, ok)
		}
		if cost, _ := c.Cost("A", "Y"); cost != 5 {
			t.Errorf("Cost(A, Y) = %v, want 5 (flat fallback)", cost)
		}
	})
}

func TestMatrix(t *testing.T) {
	t.Run("Complete", func(t *testing.T) {
		c := tariff.NewComplexCoster(tariff.Flat(1), []tariff.CostRecord{
			{Lane: tariff.Lane{From: "B", To: "X"}, Cost: 8},
		})

		m, err := tariff.Matrix(c, []string{"A", "B"}, []string{"X", "Y", "Z"})
		if err != nil {
			t.Fatalf("Matrix() error = %v", err)
		}
		want := [][]float64{{1, 1, 1}, {8, 1, 1}}
		for i := range want {
			for j := range want[i] {
				if m[i][j] != want[i][j] {
					t.Errorf("m[%d][%d] = %v, want %v", i, j, m[i][j], want[i][j])
				}
			}
		}
	})

	t.Run("MissingLane", func(t *testing.T) {
		c := mockCoster{{From: "A", To: "X"}: 4}

		_, err := tariff.Matrix(c, []string{"A"}, []string{"X", "Y"})
		if err == nil {
			t.Fatal("Matrix() error = nil, want missing lane")
		}
		if !strings.Contains(err.Error(), "A -> Y") {
			t.Errorf("error %q does not name the lane", err)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		m, err := tariff.Matrix(tariff.None(), nil, []string{"X"})
		if err != nil || len(m) != 0 {
			t.Errorf("Matrix() = %v, %v, want empty", m, err)
		}
	})
}
