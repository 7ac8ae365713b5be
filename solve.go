// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package broker

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

type steppingStone struct {
	opts []Option
}

// SteppingStone returns a Solver that starts from the maximum margin plan
// and improves it by MODI pricing and stepping-stone pivots.
func SteppingStone(opts ...Option) Solver {
	return steppingStone{opts: opts}
}

func Solve(p Problem, opts ...Option) (*Result, error) {
	return SolveWithContext(context.Background(), p, opts...)
}

// SolveWithContext is Solve with cancellation. The context is only
// consulted between pivots, never in the middle of one.
func SolveWithContext(ctx context.Context, p Problem, opts ...Option) (*Result, error) {
	return SteppingStone(opts...).Solve(ctx, p)
}

// solveState is everything one solve mutates.
type solveState struct {
	cfg  config
	prob *balanced

	plan  *mat.Dense
	basic []bool
	u, v  []float64
	pr    pricing

	iter    int
	bland   bool
	seen    map[string]struct{}
	history []Snapshot
}

func (s steppingStone) Solve(ctx context.Context, p Problem) (*Result, error) {
	cfg := defaultConfig()
	for _, opt := range s.opts {
		if err := opt(&cfg); err != nil {
			return nil, errors.Wrap(err, "applying solver option")
		}
	}

	prob, err := normalize(p, cfg)
	if err != nil {
		return nil, err
	}

	st := &solveState{
		cfg:  cfg,
		prob: prob,
		seen: make(map[string]struct{}),
	}
	st.logProblem()

	st.plan, st.basic = initialPlan(prob, cfg.tol)
	st.seen[basisSignature(st.basic)] = struct{}{}
	if cfg.history {
		st.history = append(st.history, Snapshot{
			Entering: Cell{-1, -1},
			Leaving:  Cell{-1, -1},
			Plan:     rows(st.plan),
		})
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "solve interrupted after %d iterations", st.iter)
		}

		added, err := repairBasis(prob, st.basic)
		if err != nil {
			return nil, err
		}
		for _, c := range added {
			cfg.logger.Print(fmt.Sprintf("basis repair: (%s, %s) enters at 0",
				prob.rowIDs[c.Row], prob.colIDs[c.Col]))
		}

		st.u, st.v, err = potentials(prob, st.basic)
		if err != nil {
			return nil, err
		}

		st.pr = price(prob, st.basic, st.u, st.v, cfg.tol, st.bland)
		if !st.pr.improve {
			break
		}

		if st.iter >= cfg.maxIter {
			cfg.logger.Print(fmt.Sprintf("iteration cap %d reached, max delta %g", cfg.maxIter, st.pr.maxDelta))
			return nil, &NonConvergenceError{
				Iterations: st.iter,
				Best:       st.result(false),
			}
		}

		if err := st.step(); err != nil {
			return nil, err
		}
	}

	res := st.result(true)
	cfg.logger.Print(fmt.Sprintf("optimal after %d iterations: margin %g, profit %g, alternate optimum %t",
		res.Iterations, res.TotalMargin, res.TotalProfit, res.HasAlternateOptimum))

	return res, nil
}

// step performs one pivot on the current entering cell.
func (st *solveState) step() error {
	prob, enter := st.prob, st.pr.enter

	cycle, err := findCycle(prob, st.basic, enter)
	if err != nil {
		return err
	}

	theta, leaving := pivot(prob, st.plan, st.basic, cycle, st.cfg.tol, st.bland)
	st.iter++

	st.cfg.logger.Print(fmt.Sprintf("iteration %d: (%s, %s) enters with delta %g, theta %g, (%s, %s) leaves",
		st.iter, prob.rowIDs[enter.Row], prob.colIDs[enter.Col], st.pr.delta, theta,
		prob.rowIDs[leaving.Row], prob.colIDs[leaving.Col]))

	sig := basisSignature(st.basic)
	if _, ok := st.seen[sig]; ok && !st.bland {
		st.bland = true
		st.cfg.logger.Print(fmt.Sprintf("iteration %d: basis repeated, switching to Bland's rule", st.iter))
	}
	st.seen[sig] = struct{}{}

	if st.cfg.history {
		st.history = append(st.history, Snapshot{
			Iteration: st.iter,
			Entering:  enter,
			Leaving:   leaving,
			Delta:     st.pr.delta,
			Theta:     theta,
			Plan:      rows(st.plan),
		})
	}

	return nil
}

func (st *solveState) logProblem() {
	if _, ok := st.cfg.logger.(noopLogger); ok {
		return
	}
	prob := st.prob
	st.cfg.logger.Print(fmt.Sprintf("suppliers: %v, receivers: %v, synthetic supplier: %t, synthetic receiver: %t",
		prob.realRows, prob.realCols, prob.synthRow >= 0, prob.synthCol >= 0))
	st.cfg.logger.Print(fmt.Sprintf("margin = %v", mat.Formatted(prob.margin, mat.Prefix("         "), mat.Squeeze())))
}

func rows(m *mat.Dense) [][]float64 {
	r, _ := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = mat.Row(nil, i, m)
	}
	return out
}
