// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package broker

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

type greedyCell struct {
	row, col  int
	margin    float64
	synthetic bool
}

// greedyCells lists every cell in allocation order: real cells before
// synthetic ones, higher margin first, row-major among equals.
func greedyCells(b *balanced) []greedyCell {
	cl := make([]greedyCell, b.rows*b.cols)

	for n, i := 0, 0; i < b.rows; i++ {
		for j := 0; j < b.cols; j++ {
			cl[n] = greedyCell{
				row:       i,
				col:       j,
				margin:    b.margin.At(i, j),
				synthetic: b.synthetic(i, j),
			}
			n++
		}
	}

	sort.SliceStable(cl, func(i, j int) bool {
		if cl[i].synthetic != cl[j].synthetic {
			return !cl[i].synthetic
		}
		return cl[i].margin > cl[j].margin
	})

	return cl
}

// initialPlan builds a feasible, possibly degenerate, plan by the maximum
// margin rule.
func initialPlan(b *balanced, tol float64) (*mat.Dense, []bool) {
	plan := mat.NewDense(b.rows, b.cols, nil)
	basic := make([]bool, b.rows*b.cols)

	supplyRest := append([]float64(nil), b.supply...)
	demandRest := append([]float64(nil), b.demand...)

	for _, c := range greedyCells(b) {
		if supplyRest[c.row] <= tol || demandRest[c.col] <= tol {
			continue
		}

		amount := minFloat64(supplyRest[c.row], demandRest[c.col])
		plan.Set(c.row, c.col, amount)
		basic[b.index(c.row, c.col)] = true

		supplyRest[c.row] = snap(supplyRest[c.row]-amount, tol)
		demandRest[c.col] = snap(demandRest[c.col]-amount, tol)
	}

	return plan, basic
}

func minFloat64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// snap rounds values within tol of zero to exactly zero.
func snap(v, tol float64) float64 {
	if v <= tol && v >= -tol {
		return 0
	}
	return v
}
