// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package broker computes the profit-maximizing allocation of goods from
// suppliers to receivers (the intermediary problem), honoring contract
// obligations of individual nodes.
package broker

import (
	"context"
	"fmt"
)

type Solver interface {
	Solve(ctx context.Context, p Problem) (*Result, error)
}

type Supplier struct {
	ID           string
	Supply       float64
	PurchaseCost float64
	Contract     bool // must be cleared within the real network
}

type Receiver struct {
	ID        string
	Demand    float64
	SalePrice float64
	Contract  bool // must be served within the real network
}

type Problem struct {
	Suppliers []Supplier
	Receivers []Receiver
	Transport [][]float64 // [supplier][receiver]
}

// NewProblem builds a Problem from plain vectors. The contract vectors may
// be nil, meaning no node is contract-bound.
func NewProblem(supply, demand, purchaseCost, salePrice []float64, transport [][]float64,
	supplierContract, receiverContract []bool) (Problem, error) {

	var p Problem

	if len(purchaseCost) != len(supply) {
		return p, invalidInput("purchaseCost", -1, "length %d, want %d", len(purchaseCost), len(supply))
	}
	if len(salePrice) != len(demand) {
		return p, invalidInput("salePrice", -1, "length %d, want %d", len(salePrice), len(demand))
	}
	if supplierContract != nil && len(supplierContract) != len(supply) {
		return p, invalidInput("supplierContract", -1, "length %d, want %d", len(supplierContract), len(supply))
	}
	if receiverContract != nil && len(receiverContract) != len(demand) {
		return p, invalidInput("receiverContract", -1, "length %d, want %d", len(receiverContract), len(demand))
	}

	p.Suppliers = make([]Supplier, len(supply))
	for i := range supply {
		p.Suppliers[i] = Supplier{
			Supply:       supply[i],
			PurchaseCost: purchaseCost[i],
		}
		if supplierContract != nil {
			p.Suppliers[i].Contract = supplierContract[i]
		}
	}

	p.Receivers = make([]Receiver, len(demand))
	for j := range demand {
		p.Receivers[j] = Receiver{
			Demand:    demand[j],
			SalePrice: salePrice[j],
		}
		if receiverContract != nil {
			p.Receivers[j].Contract = receiverContract[j]
		}
	}

	p.Transport = transport

	return p, nil
}

// Validate reports the first problem that would make a solve fail with
// *InvalidInputError.
func (p Problem) Validate() error {
	return validate(p)
}

type Cell struct {
	Row int
	Col int
}

type ReducedCost struct {
	Supplier   int
	Receiver   int
	SupplierID string
	ReceiverID string
	Delta      float64
}

func (rc ReducedCost) String() string {
	return fmt.Sprintf("%s -> %s Δ = %.2f", rc.SupplierID, rc.ReceiverID, rc.Delta)
}

// Snapshot is the plan right after one pivot. Iteration 0 is the initial
// plan, with no entering or leaving cell.
type Snapshot struct {
	Iteration int
	Entering  Cell
	Leaving   Cell
	Delta     float64
	Theta     float64
	Plan      [][]float64
}

// Result is the outcome of a solve. Matrices cover the balanced problem, so
// they carry one extra row (SyntheticSupplier) or column (SyntheticReceiver)
// when supply and demand totals differ.
type Result struct {
	Plan      [][]float64
	Basic     [][]bool
	Margin    [][]float64
	Penalized [][]bool
	Transport [][]float64
	Supply    []float64
	Demand    []float64

	RowLabels []string
	ColLabels []string

	SyntheticSupplier bool
	SyntheticReceiver bool

	RowDuals     []float64
	ColDuals     []float64
	ReducedCosts []ReducedCost

	TotalMargin        float64 // includes synthetic cells
	TotalProfit        float64
	TotalRevenue       float64
	TotalPurchaseCost  float64
	TotalTransportCost float64

	HasAlternateOptimum bool
	Optimal             bool
	Iterations          int

	History []Snapshot // only with WithHistory
}
