// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package broker

import (
	"fmt"
)

// adjacency lists the basic cells of every row (by column) and of every
// column (by row), both in ascending order.
type adjacency struct {
	rowCols [][]int
	colRows [][]int
}

func newAdjacency(b *balanced, basic []bool) adjacency {
	adj := adjacency{
		rowCols: make([][]int, b.rows),
		colRows: make([][]int, b.cols),
	}
	for i := 0; i < b.rows; i++ {
		for j := 0; j < b.cols; j++ {
			if basic[b.index(i, j)] {
				adj.rowCols[i] = append(adj.rowCols[i], j)
				adj.colRows[j] = append(adj.colRows[j], i)
			}
		}
	}
	return adj
}

// potentials solves u[i] + v[j] = margin[i][j] over the basic cells. The
// synthetic supplier's row, or row 0 when there is none, is pinned to 0.
func potentials(b *balanced, basic []bool) (u, v []float64, err error) {
	adj := newAdjacency(b, basic)

	u = make([]float64, b.rows)
	v = make([]float64, b.cols)
	rowKnown := make([]bool, b.rows)
	colKnown := make([]bool, b.cols)

	root := 0
	if b.synthRow >= 0 {
		root = b.synthRow
	}
	rowKnown[root] = true

	// nodes: rows as i, columns as rows+j
	queue := []int{root}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		if node < b.rows {
			i := node
			for _, j := range adj.rowCols[i] {
				if colKnown[j] {
					continue
				}
				v[j] = b.margin.At(i, j) - u[i]
				colKnown[j] = true
				queue = append(queue, b.rows+j)
			}
			continue
		}

		j := node - b.rows
		for _, i := range adj.colRows[j] {
			if rowKnown[i] {
				continue
			}
			u[i] = b.margin.At(i, j) - v[j]
			rowKnown[i] = true
			queue = append(queue, i)
		}
	}

	for i, ok := range rowKnown {
		if !ok {
			return nil, nil, &DegenerateBasisError{Reason: fmt.Sprintf("row %d unreachable from the root", i)}
		}
	}
	for j, ok := range colKnown {
		if !ok {
			return nil, nil, &DegenerateBasisError{Reason: fmt.Sprintf("column %d unreachable from the root", j)}
		}
	}

	return u, v, nil
}
