// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trade

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/someonegg/broker"
	"github.com/someonegg/broker/tariff"
	"gonum.org/v1/gonum/floats"
)

func (b *Broker) init() {
	if b.MaxIterations == nil {
		b.mi = DefaultMaxIterations
	} else {
		b.mi = *b.MaxIterations
	}

	if b.Tolerance == nil {
		b.tol = DefaultTolerance
	} else {
		b.tol = *b.Tolerance
	}

	if b.PenaltyFactor == nil {
		b.pf = DefaultPenaltyFactor
	} else {
		b.pf = *b.PenaltyFactor
	}
}

func (b *Broker) coster(routes []Route) tariff.Coster {
	base := tariff.None()
	if b.DefaultRouteCost != nil {
		base = tariff.Flat(*b.DefaultRouteCost)
	}

	records := make([]tariff.CostRecord, len(routes))
	for i, r := range routes {
		records[i] = tariff.CostRecord{
			Lane: tariff.Lane{From: r.From, To: r.To},
			Cost: r.Cost,
		}
	}
	return tariff.NewComplexCoster(base, records)
}

// Build converts the parties and their routes into a validated problem.
func (b *Broker) Build(suppliers []Supplier, receivers []Receiver, routes []Route) (broker.Problem, error) {
	from, to, err := names(suppliers, receivers, routes)
	if err != nil {
		return broker.Problem{}, err
	}

	transport, err := tariff.Matrix(b.coster(routes), from, to)
	if err != nil {
		return broker.Problem{}, errors.Wrap(err, "building transport costs")
	}

	prob := broker.Problem{
		Suppliers: make([]broker.Supplier, len(suppliers)),
		Receivers: make([]broker.Receiver, len(receivers)),
		Transport: transport,
	}
	for i, s := range suppliers {
		prob.Suppliers[i] = broker.Supplier{
			ID:           s.Name,
			Supply:       s.Supply,
			PurchaseCost: s.Cost,
			Contract:     s.Contract,
		}
	}
	for j, r := range receivers {
		prob.Receivers[j] = broker.Receiver{
			ID:        r.Name,
			Demand:    r.Demand,
			SalePrice: r.Price,
			Contract:  r.Contract,
		}
	}

	if err := prob.Validate(); err != nil {
		return broker.Problem{}, err
	}
	return prob, nil
}

// Plan computes the most profitable shipments. When the iteration cap is
// hit, the best plan found so far is returned along with the
// *broker.NonConvergenceError.
func (b *Broker) Plan(ctx context.Context, suppliers []Supplier, receivers []Receiver, routes []Route) (*Plan, error) {
	b.init()

	prob, err := b.Build(suppliers, receivers, routes)
	if err != nil {
		return nil, err
	}

	opts := []broker.Option{
		broker.WithMaxIterations(b.mi),
		broker.WithTolerance(b.tol),
		broker.WithPenaltyFactor(b.pf),
	}
	if b.Verbose {
		opts = append(opts, broker.WithLogger(log.New(os.Stderr, "", 0)))
	}

	res, err := broker.SolveWithContext(ctx, prob, opts...)
	if err != nil {
		var ncErr *broker.NonConvergenceError
		if errors.As(err, &ncErr) {
			return b.plan(ncErr.Best), err
		}
		return nil, err
	}

	return b.plan(res), nil
}

func names(suppliers []Supplier, receivers []Receiver, routes []Route) (from, to []string, err error) {
	seenFrom := make(map[string]bool)
	for _, s := range suppliers {
		if s.Name == "" {
			return nil, nil, errors.New("supplier without name")
		}
		if seenFrom[s.Name] {
			return nil, nil, errors.Errorf("duplicate supplier %s", s.Name)
		}
		seenFrom[s.Name] = true
		from = append(from, s.Name)
	}

	seenTo := make(map[string]bool)
	for _, r := range receivers {
		if r.Name == "" {
			return nil, nil, errors.New("receiver without name")
		}
		if seenTo[r.Name] {
			return nil, nil, errors.Errorf("duplicate receiver %s", r.Name)
		}
		seenTo[r.Name] = true
		to = append(to, r.Name)
	}

	for _, r := range routes {
		if !seenFrom[r.From] {
			return nil, nil, errors.Errorf("route %s -> %s: unknown supplier", r.From, r.To)
		}
		if !seenTo[r.To] {
			return nil, nil, errors.Errorf("route %s -> %s: unknown receiver", r.From, r.To)
		}
	}

	return from, to, nil
}

func (b *Broker) plan(res *broker.Result) *Plan {
	m, n := len(res.Plan), len(res.Plan[0])
	if res.SyntheticSupplier {
		m--
	}
	if res.SyntheticReceiver {
		n--
	}

	var summ Summary
	summ.Suppliers = m
	summ.Receivers = n
	summ.Supply = floats.Sum(res.Supply[:m])
	summ.Demand = floats.Sum(res.Demand[:n])

	var shipments []Shipment
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			if qty := res.Plan[i][j]; qty > b.tol {
				shipments = append(shipments, Shipment{
					From:     res.RowLabels[i],
					To:       res.ColLabels[j],
					Quantity: qty,
					Margin:   res.Margin[i][j],
				})
				summ.Shipped += qty
			}
		}
	}

	if res.SyntheticSupplier {
		summ.UnmetDemand = floats.Sum(res.Plan[m])
	}
	if res.SyntheticReceiver {
		for i := 0; i < m; i++ {
			summ.UnsoldSupply += res.Plan[i][n]
		}
	}

	summ.Revenue = res.TotalRevenue
	summ.PurchaseCost = res.TotalPurchaseCost
	summ.TransportCost = res.TotalTransportCost
	summ.Profit = res.TotalProfit
	summ.Optimal = res.Optimal
	summ.AlternateOptimum = res.HasAlternateOptimum
	summ.Iterations = res.Iterations

	if b.Verbose {
		b.report(res, m, n)
	}

	return &Plan{
		Shipments: shipments,
		Summary:   summ,
		Result:    res,
	}
}

// report prints the parties left unserved, largest first.
func (b *Broker) report(res *broker.Result, m, n int) {
	type rest struct {
		name      string
		total     float64
		remaining float64
	}
	show := func(rests []rest, what string) {
		sort.SliceStable(rests, func(i, j int) bool {
			return rests[i].remaining > rests[j].remaining
		})
		total := 0.0
		for _, r := range rests {
			if r.remaining <= b.tol {
				break
			}
			total += r.remaining
			fmt.Fprintln(os.Stderr, r.name, what+":", r.total, what+"_rest:", r.remaining)
		}
		if total > 0 {
			fmt.Fprintln(os.Stderr, "total", what, "rest", total)
			fmt.Fprintln(os.Stderr, "")
		}
	}

	if res.SyntheticSupplier {
		rests := make([]rest, n)
		for j := range rests {
			rests[j] = rest{res.ColLabels[j], res.Demand[j], res.Plan[m][j]}
		}
		show(rests, "demand")
	}
	if res.SyntheticReceiver {
		rests := make([]rest, m)
		for i := range rests {
			rests[i] = rest{res.RowLabels[i], res.Supply[i], res.Plan[i][n]}
		}
		show(rests, "supply")
	}

	for _, rc := range res.ReducedCosts {
		fmt.Fprintln(os.Stderr, rc)
	}
}
