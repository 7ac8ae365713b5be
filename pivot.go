// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package broker

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

type pricing struct {
	enter    Cell
	delta    float64 // reduced cost of enter
	maxDelta float64 // -Inf when every cell is basic
	improve  bool
}

// price computes the reduced cost of every non-basic cell and selects the
// entering cell: the largest reduced cost (row-major among equals), or the
// first improving cell in row-major order under Bland's rule.
func price(b *balanced, basic []bool, u, v []float64, tol float64, bland bool) pricing {
	pr := pricing{enter: Cell{-1, -1}, maxDelta: math.Inf(-1)}

	for i := 0; i < b.rows; i++ {
		for j := 0; j < b.cols; j++ {
			if basic[b.index(i, j)] {
				continue
			}
			delta := b.margin.At(i, j) - u[i] - v[j]
			if delta > pr.maxDelta {
				pr.maxDelta = delta
				if !bland {
					pr.enter, pr.delta = Cell{i, j}, delta
				}
			}
			if bland && pr.enter.Row < 0 && delta > tol {
				pr.enter, pr.delta = Cell{i, j}, delta
			}
		}
	}

	pr.improve = pr.maxDelta > tol
	return pr
}

// alternate reports whether a non-basic cell could enter without changing
// the total margin.
func (pr pricing) alternate(tol float64) bool {
	return pr.maxDelta >= -tol && pr.maxDelta <= tol
}

// pivot shifts theta around the cycle. Exactly one decrease cell holding
// theta leaves the basis; any other cell emptied by the shift stays basic at
// zero quantity.
func pivot(b *balanced, plan *mat.Dense, basic []bool, cycle []Cell, tol float64, bland bool) (theta float64, leaving Cell) {
	theta = math.Inf(1)
	for k := 1; k < len(cycle); k += 2 {
		if q := plan.At(cycle[k].Row, cycle[k].Col); q < theta {
			theta = q
		}
	}

	leaving = Cell{-1, -1}
	for k := 1; k < len(cycle); k += 2 {
		c := cycle[k]
		if plan.At(c.Row, c.Col) != theta {
			continue
		}
		if leaving.Row < 0 || (bland && b.index(c.Row, c.Col) < b.index(leaving.Row, leaving.Col)) {
			leaving = c
		}
	}

	for k, c := range cycle {
		q := plan.At(c.Row, c.Col)
		if k%2 == 0 {
			q += theta
		} else {
			q -= theta
		}
		plan.Set(c.Row, c.Col, snap(q, tol))
	}

	enter := cycle[0]
	basic[b.index(enter.Row, enter.Col)] = true
	basic[b.index(leaving.Row, leaving.Col)] = false
	plan.Set(leaving.Row, leaving.Col, 0)

	return theta, leaving
}

// basisSignature identifies the set of basic cells.
func basisSignature(basic []bool) string {
	sig := make([]byte, (len(basic)+7)/8)
	for k, ok := range basic {
		if ok {
			sig[k/8] |= 1 << uint(k%8)
		}
	}
	return string(sig)
}
