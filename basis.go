// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package broker

import (
	"fmt"
	"math"
)

// disjointSet is a union-find over rows and columns; column j is node
// rows+j.
type disjointSet struct {
	parent []int
	rank   []int
	sets   int
}

func newDisjointSet(n int) *disjointSet {
	ds := &disjointSet{
		parent: make([]int, n),
		rank:   make([]int, n),
		sets:   n,
	}
	for i := range ds.parent {
		ds.parent[i] = i
	}
	return ds
}

func (ds *disjointSet) find(x int) int {
	for ds.parent[x] != x {
		ds.parent[x] = ds.parent[ds.parent[x]]
		x = ds.parent[x]
	}
	return x
}

// union reports false when a and b already share a set.
func (ds *disjointSet) union(a, b int) bool {
	ra, rb := ds.find(a), ds.find(b)
	if ra == rb {
		return false
	}
	switch {
	case ds.rank[ra] < ds.rank[rb]:
		ds.parent[ra] = rb
	case ds.rank[ra] > ds.rank[rb]:
		ds.parent[rb] = ra
	default:
		ds.parent[rb] = ra
		ds.rank[ra]++
	}
	ds.sets--
	return true
}

// repairBasis turns the basic cells into a spanning tree over rows and
// columns by marking zero-quantity cells basic, one per missing link. It
// returns the cells it added.
func repairBasis(b *balanced, basic []bool) ([]Cell, error) {
	ds := newDisjointSet(b.rows + b.cols)

	for i := 0; i < b.rows; i++ {
		for j := 0; j < b.cols; j++ {
			if !basic[b.index(i, j)] {
				continue
			}
			if !ds.union(i, b.rows+j) {
				return nil, &DegenerateBasisError{
					Reason: fmt.Sprintf("basic cell (%d, %d) closes a cycle", i, j),
				}
			}
		}
	}

	var added []Cell

	for ds.sets > 1 {
		best, bestMargin := Cell{-1, -1}, math.Inf(-1)
		for i := 0; i < b.rows; i++ {
			for j := 0; j < b.cols; j++ {
				if basic[b.index(i, j)] || ds.find(i) == ds.find(b.rows+j) {
					continue
				}
				if m := b.margin.At(i, j); best.Row < 0 || m > bestMargin {
					best, bestMargin = Cell{i, j}, m
				}
			}
		}
		if best.Row < 0 {
			return nil, &DegenerateBasisError{
				Reason: fmt.Sprintf("no cell bridges the %d components", ds.sets),
			}
		}

		basic[b.index(best.Row, best.Col)] = true
		ds.union(best.Row, b.rows+best.Col)
		added = append(added, best)
	}

	return added, nil
}

func basicCount(basic []bool) int {
	n := 0
	for _, ok := range basic {
		if ok {
			n++
		}
	}
	return n
}
