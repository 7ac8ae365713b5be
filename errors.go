// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package broker

import (
	"fmt"

	"github.com/pkg/errors"
)

// InvalidInputError reports a problem rejected before any computation.
// Index is -1 when the whole field is at fault.
type InvalidInputError struct {
	Field  string
	Index  int
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid input %s[%d]: %s", e.Field, e.Index, e.Reason)
}

func invalidInput(field string, index int, format string, args ...interface{}) error {
	return &InvalidInputError{
		Field:  field,
		Index:  index,
		Reason: fmt.Sprintf(format, args...),
	}
}

// DegenerateBasisError means the basic cells could not be made a spanning
// tree. It is unreachable for a well-formed balanced problem.
type DegenerateBasisError struct {
	Reason string
}

func (e *DegenerateBasisError) Error() string {
	return "degenerate basis: " + e.Reason
}

// PivotCycleNotFoundError means no stepping-stone cycle closes through the
// entering cell. It is an internal consistency failure.
type PivotCycleNotFoundError struct {
	Row int
	Col int
}

func (e *PivotCycleNotFoundError) Error() string {
	return fmt.Sprintf("no pivot cycle through cell (%d, %d)", e.Row, e.Col)
}

// NonConvergenceError is returned when the iteration cap is reached while
// an improving cell still exists. Best holds the plan reached so far, with
// Optimal set to false.
type NonConvergenceError struct {
	Iterations int
	Best       *Result
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("no optimal plan after %d iterations", e.Iterations)
}

func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}
