// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trade uses broker to plan shipments between named parties.
package trade

import (
	"github.com/someonegg/broker"
)

type Supplier struct {
	Name     string  `json:"name"`
	Supply   float64 `json:"supply"`
	Cost     float64 `json:"cost"` // purchase cost per unit
	Contract bool    `json:"contract"`
}

type Receiver struct {
	Name     string  `json:"name"`
	Demand   float64 `json:"demand"`
	Price    float64 `json:"price"` // sale price per unit
	Contract bool    `json:"contract"`
}

type Route struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Cost float64 `json:"cost"` // transport cost per unit
}

type Shipment struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Quantity float64 `json:"qty"`
	Margin   float64 `json:"margin"` // per unit
}

type Plan struct {
	Shipments []Shipment `json:"shipments"`
	Summary   Summary    `json:"summary"`

	Result *broker.Result `json:"-"`
}

const (
	DefaultMaxIterations = broker.DefaultMaxIterations
	DefaultTolerance     = broker.DefaultTolerance
	DefaultPenaltyFactor = broker.DefaultPenaltyFactor
)

type Broker struct {
	MaxIterations *int     `json:"mi"`
	Tolerance     *float64 `json:"tol"`
	PenaltyFactor *float64 `json:"pf"`

	// When set, lanes without a route cost this much instead of failing.
	DefaultRouteCost *float64 `json:"drc"`

	Verbose bool `json:"vv"`

	mi  int
	tol float64
	pf  float64
}

type Summary struct {
	Suppliers      int     `json:"suppliers"`
	Receivers      int     `json:"receivers"`
	Supply         float64 `json:"supply"`
	Demand         float64 `json:"demand"`
	Shipped        float64 `json:"shipped"`
	UnmetDemand    float64 `json:"unmet_demand"`
	UnsoldSupply   float64 `json:"unsold_supply"`

	Revenue       float64 `json:"revenue"`
	PurchaseCost  float64 `json:"purchase_cost"`
	TransportCost float64 `json:"transport_cost"`
	Profit        float64 `json:"profit"`

	Optimal          bool `json:"optimal"`
	AlternateOptimum bool `json:"alternate_optimum"`
	Iterations       int  `json:"iterations"`
}
