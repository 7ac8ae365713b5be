// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package broker

// findCycle returns the stepping-stone cycle closed by the entering cell.
// The path alternates a move along the row and a move along the column,
// starting and ending at the entering cell, so even positions gain and odd
// positions lose quantity.
func findCycle(b *balanced, basic []bool, enter Cell) ([]Cell, error) {
	adj := newAdjacency(b, basic)

	rowSeen := make([]bool, b.rows)
	colSeen := make([]bool, b.cols)
	rowSeen[enter.Row] = true

	path := []Cell{enter}

	var walk func(cur Cell, alongRow bool) bool
	walk = func(cur Cell, alongRow bool) bool {
		if alongRow {
			for _, j := range adj.rowCols[cur.Row] {
				if j == cur.Col || colSeen[j] {
					continue
				}
				path = append(path, Cell{cur.Row, j})
				if j == enter.Col {
					return true
				}
				colSeen[j] = true
				if walk(Cell{cur.Row, j}, false) {
					return true
				}
				path = path[:len(path)-1]
			}
			return false
		}

		for _, i := range adj.colRows[cur.Col] {
			if i == cur.Row || rowSeen[i] {
				continue
			}
			rowSeen[i] = true
			path = append(path, Cell{i, cur.Col})
			if walk(Cell{i, cur.Col}, true) {
				return true
			}
			path = path[:len(path)-1]
		}
		return false
	}

	if !walk(enter, true) || len(path) < 4 {
		return nil, &PivotCycleNotFoundError{Row: enter.Row, Col: enter.Col}
	}
	return path, nil
}
