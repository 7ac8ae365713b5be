// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package broker

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	syntheticSupplierID = "DF"
	syntheticReceiverID = "OF"

	// upper bound of the contract penalty, leaving headroom for the sums
	// of margins and potentials.
	maxPenalty = 1e300
)

// balanced is a problem padded with at most one synthetic supplier or
// receiver so that total supply equals total demand.
type balanced struct {
	rows, cols         int
	realRows, realCols int

	synthRow int // -1 when absent
	synthCol int // -1 when absent

	supply []float64
	demand []float64

	purchase []float64 // real rows only
	price    []float64 // real cols only

	margin    *mat.Dense
	transport *mat.Dense
	penalized []bool // rows*cols
	penalty   float64

	rowIDs []string
	colIDs []string
}

func (b *balanced) index(i, j int) int {
	return i*b.cols + j
}

func (b *balanced) synthetic(i, j int) bool {
	return i == b.synthRow || j == b.synthCol
}

func validate(p Problem) error {
	m, n := len(p.Suppliers), len(p.Receivers)
	if m == 0 {
		return invalidInput("supply", -1, "no supplier")
	}
	if n == 0 {
		return invalidInput("demand", -1, "no receiver")
	}

	for i, s := range p.Suppliers {
		if !finite(s.Supply) || s.Supply <= 0 {
			return invalidInput("supply", i, "must be positive and finite, got %v", s.Supply)
		}
		if !finite(s.PurchaseCost) || s.PurchaseCost < 0 {
			return invalidInput("purchaseCost", i, "must be non-negative and finite, got %v", s.PurchaseCost)
		}
	}
	for j, r := range p.Receivers {
		if !finite(r.Demand) || r.Demand <= 0 {
			return invalidInput("demand", j, "must be positive and finite, got %v", r.Demand)
		}
		if !finite(r.SalePrice) || r.SalePrice < 0 {
			return invalidInput("salePrice", j, "must be non-negative and finite, got %v", r.SalePrice)
		}
	}

	if len(p.Transport) != m {
		return invalidInput("transportCost", -1, "%d rows, want %d", len(p.Transport), m)
	}
	for i, row := range p.Transport {
		if len(row) != n {
			return invalidInput("transportCost", i, "%d columns, want %d", len(row), n)
		}
		for j, c := range row {
			if !finite(c) || c < 0 {
				return invalidInput("transportCost", i*n+j, "must be non-negative and finite, got %v", c)
			}
		}
	}

	return nil
}

func normalize(p Problem, cfg config) (*balanced, error) {
	if err := validate(p); err != nil {
		return nil, err
	}

	m, n := len(p.Suppliers), len(p.Receivers)

	supply := make([]float64, m)
	purchase := make([]float64, m)
	for i, s := range p.Suppliers {
		supply[i] = s.Supply
		purchase[i] = s.PurchaseCost
	}
	demand := make([]float64, n)
	price := make([]float64, n)
	for j, r := range p.Receivers {
		demand[j] = r.Demand
		price[j] = r.SalePrice
	}

	b := &balanced{
		realRows: m,
		realCols: n,
		synthRow: -1,
		synthCol: -1,
		purchase: purchase,
		price:    price,
	}

	totalSupply, totalDemand := floats.Sum(supply), floats.Sum(demand)
	switch diff := totalDemand - totalSupply; {
	case diff > cfg.tol:
		b.synthRow = m
		supply = append(supply, diff)
	case diff < -cfg.tol:
		b.synthCol = n
		demand = append(demand, -diff)
	}
	b.supply, b.demand = supply, demand
	b.rows, b.cols = len(supply), len(demand)

	b.margin = mat.NewDense(b.rows, b.cols, nil)
	b.transport = mat.NewDense(b.rows, b.cols, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			t := p.Transport[i][j]
			b.transport.Set(i, j, t)
			b.margin.Set(i, j, price[j]-purchase[i]-t)
		}
	}

	b.penalty = contractPenalty(p, cfg.penaltyFactor)
	b.penalized = make([]bool, b.rows*b.cols)
	if b.synthRow >= 0 {
		for j, r := range p.Receivers {
			if r.Contract {
				b.penalize(b.synthRow, j)
			}
		}
	}
	if b.synthCol >= 0 {
		for i, s := range p.Suppliers {
			if s.Contract {
				b.penalize(i, b.synthCol)
			}
		}
	}

	b.rowIDs = make([]string, b.rows)
	for i, s := range p.Suppliers {
		b.rowIDs[i] = s.ID
		if s.ID == "" {
			b.rowIDs[i] = fmt.Sprintf("D%d", i+1)
		}
	}
	if b.synthRow >= 0 {
		b.rowIDs[b.synthRow] = syntheticSupplierID
	}
	b.colIDs = make([]string, b.cols)
	for j, r := range p.Receivers {
		b.colIDs[j] = r.ID
		if r.ID == "" {
			b.colIDs[j] = fmt.Sprintf("O%d", j+1)
		}
	}
	if b.synthCol >= 0 {
		b.colIDs[b.synthCol] = syntheticReceiverID
	}

	return b, nil
}

func (b *balanced) penalize(i, j int) {
	b.margin.Set(i, j, b.margin.At(i, j)-b.penalty)
	b.transport.Set(i, j, b.transport.At(i, j)+b.penalty)
	b.penalized[b.index(i, j)] = true
}

// contractPenalty scales the largest cost or price of the problem so that
// routing a contract node's residual through the synthetic node is never
// worth it while a real alternative exists.
func contractPenalty(p Problem, factor float64) float64 {
	base := 1.0
	for _, s := range p.Suppliers {
		base = math.Max(base, s.PurchaseCost)
	}
	for _, r := range p.Receivers {
		base = math.Max(base, r.SalePrice)
	}
	for _, row := range p.Transport {
		if len(row) > 0 {
			base = math.Max(base, floats.Max(row))
		}
	}

	if base > maxPenalty/factor {
		return maxPenalty
	}
	return base * factor
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
