// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package broker

import (
	"math"
)

const (
	DefaultMaxIterations = 100
	DefaultTolerance     = 1e-6
	DefaultPenaltyFactor = 1e5
)

type config struct {
	maxIter       int
	tol           float64
	penaltyFactor float64
	logger        Logger
	history       bool
}

func defaultConfig() config {
	return config{
		maxIter:       DefaultMaxIterations,
		tol:           DefaultTolerance,
		penaltyFactor: DefaultPenaltyFactor,
		logger:        noopLogger{},
	}
}

type Option func(*config) error

// WithMaxIterations bounds the number of pivots. Zero accepts only an
// initial plan that is already optimal.
func WithMaxIterations(n int) Option {
	return func(c *config) error {
		if n < 0 {
			return invalidInput("maxIterations", -1, "must not be negative, got %d", n)
		}
		c.maxIter = n
		return nil
	}
}

func WithTolerance(eps float64) Option {
	return func(c *config) error {
		if !(eps > 0) || math.IsInf(eps, 0) {
			return invalidInput("tolerance", -1, "must be positive and finite, got %v", eps)
		}
		c.tol = eps
		return nil
	}
}

// WithPenaltyFactor sets the multiplier applied to the largest cost or
// price of the problem to obtain the contract penalty.
func WithPenaltyFactor(f float64) Option {
	return func(c *config) error {
		if !(f > 1) || math.IsInf(f, 0) {
			return invalidInput("penaltyFactor", -1, "must be finite and greater than 1, got %v", f)
		}
		c.penaltyFactor = f
		return nil
	}
}

func WithLogger(logger Logger) Option {
	return func(c *config) error {
		if logger == nil {
			logger = noopLogger{}
		}
		c.logger = logger
		return nil
	}
}

// WithHistory records a Snapshot of the plan after every pivot.
func WithHistory() Option {
	return func(c *config) error {
		c.history = true
		return nil
	}
}
