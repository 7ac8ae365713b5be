// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package certify checks a broker result against a general purpose LP
// solver.
package certify

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"github.com/someonegg/broker"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

type MismatchError struct {
	Engine float64 // total margin of the checked plan
	LP     float64 // optimal total margin found by the LP solver
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("total margin %g differs from LP optimum %g", e.Engine, e.LP)
}

type InfeasiblePlanError struct {
	Reason string
}

func (e *InfeasiblePlanError) Error() string {
	return "infeasible plan: " + e.Reason
}

// Check verifies that res is a feasible plan of its balanced problem whose
// total margin matches the LP optimum within tol, relative to the optimum.
func Check(res *broker.Result, tol float64) error {
	if err := feasible(res, tol); err != nil {
		return err
	}

	opt, err := Optimum(res)
	if err != nil {
		return err
	}

	got := 0.0
	for i := range res.Plan {
		got += floats.Dot(res.Margin[i], res.Plan[i])
	}
	if math.Abs(got-opt) > tol*math.Max(1, math.Abs(opt)) {
		return &MismatchError{Engine: got, LP: opt}
	}
	return nil
}

// Optimum solves the balanced problem of res as a standard form LP and
// returns the largest achievable total margin.
//
//	minimize  -margin . x
//	s.t.      row sums of x == supply
//	          column sums of x == demand, last column dropped
//	          x >= 0
//
// The dropped column constraint is implied by the others and would leave
// the constraint matrix rank deficient.
func Optimum(res *broker.Result) (float64, error) {
	if res == nil || len(res.Plan) == 0 || len(res.Plan[0]) == 0 {
		return 0, errors.New("empty result")
	}
	rows, cols := len(res.Margin), len(res.Margin[0])

	c := make([]float64, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			c[i*cols+j] = -res.Margin[i][j]
		}
	}

	A := mat.NewDense(rows+cols-1, rows*cols, nil)
	b := make([]float64, rows+cols-1)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			A.Set(i, i*cols+j, 1)
		}
		b[i] = res.Supply[i]
	}
	for j := 0; j < cols-1; j++ {
		for i := 0; i < rows; i++ {
			A.Set(rows+j, i*cols+j, 1)
		}
		b[rows+j] = res.Demand[j]
	}

	z, _, err := lp.Simplex(c, A, b, 0, nil)
	if err != nil {
		return 0, errors.Wrap(err, "solving reference LP")
	}
	return -z, nil
}

func feasible(res *broker.Result, tol float64) error {
	if res == nil || len(res.Plan) == 0 {
		return &InfeasiblePlanError{Reason: "no plan"}
	}
	rows, cols := len(res.Supply), len(res.Demand)
	if len(res.Plan) != rows || len(res.Margin) != rows {
		return &InfeasiblePlanError{Reason: fmt.Sprintf("plan has %d rows, want %d", len(res.Plan), rows)}
	}

	colSums := make([]float64, cols)
	for i, row := range res.Plan {
		if len(row) != cols || len(res.Margin[i]) != cols {
			return &InfeasiblePlanError{Reason: fmt.Sprintf("row %d has %d columns, want %d", i, len(row), cols)}
		}
		for j, q := range row {
			if q < -tol {
				return &InfeasiblePlanError{Reason: fmt.Sprintf("negative quantity %g at (%d,%d)", q, i, j)}
			}
			colSums[j] += q
		}
		if s := floats.Sum(row); !within(s, res.Supply[i], tol) {
			return &InfeasiblePlanError{Reason: fmt.Sprintf("row %s ships %g of %g", res.RowLabels[i], s, res.Supply[i])}
		}
	}
	for j, s := range colSums {
		if !within(s, res.Demand[j], tol) {
			return &InfeasiblePlanError{Reason: fmt.Sprintf("column %s receives %g of %g", res.ColLabels[j], s, res.Demand[j])}
		}
	}
	return nil
}

func within(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol*math.Max(1, math.Abs(want))
}
