// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tariff looks up per-unit transport costs between named nodes.
package tariff

import (
	"github.com/pkg/errors"
)

type Lane struct {
	From string
	To   string
}

type Coster interface {
	Cost(from, to string) (cost float64, ok bool)
}

type flatCoster float64

// Flat returns a Coster that charges the same cost on every lane.
func Flat(cost float64) Coster {
	return flatCoster(cost)
}

func (c flatCoster) Cost(from, to string) (float64, bool) {
	return float64(c), true
}

type noneCoster struct{}

// None returns a Coster that knows no lane.
func None() Coster {
	return noneCoster{}
}

func (noneCoster) Cost(from, to string) (float64, bool) {
	return 0, false
}

// Matrix builds the [from][to] cost matrix. Every lane must be known.
func Matrix(c Coster, from, to []string) ([][]float64, error) {
	m := make([][]float64, len(from))
	for i, f := range from {
		m[i] = make([]float64, len(to))
		for j, t := range to {
			cost, ok := c.Cost(f, t)
			if !ok {
				return nil, errors.Errorf("no transport cost for lane %s -> %s", f, t)
			}
			m[i][j] = cost
		}
	}
	return m, nil
}
