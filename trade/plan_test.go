// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trade_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/someonegg/broker"
	"github.com/someonegg/broker/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 辅助函数
func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}

func fullRoutes(from, to []string, costs [][]float64) []trade.Route {
	var routes []trade.Route
	for i := range from {
		for j := range to {
			routes = append(routes, trade.Route{From: from[i], To: to[j], Cost: costs[i][j]})
		}
	}
	return routes
}

func shortMarket() ([]trade.Supplier, []trade.Receiver, []trade.Route) {
	suppliers := []trade.Supplier{
		{Name: "A", Supply: 20, Cost: 10},
		{Name: "B", Supply: 30, Cost: 12},
	}
	receivers := []trade.Receiver{
		{Name: "X", Demand: 10, Price: 30},
		{Name: "Y", Demand: 28, Price: 25},
		{Name: "Z", Demand: 27, Price: 30},
	}
	routes := fullRoutes([]string{"A", "B"}, []string{"X", "Y", "Z"},
		[][]float64{{8, 14, 17}, {12, 9, 19}})
	return suppliers, receivers, routes
}

// 1. 基础规划
func TestBroker_Plan(t *testing.T) {
	t.Run("DemandExceedsSupply", func(t *testing.T) {
		suppliers, receivers, routes := shortMarket()

		b := &trade.Broker{}
		plan, err := b.Plan(context.Background(), suppliers, receivers, routes)
		require.NoError(t, err)

		assert.Equal(t, []trade.Shipment{
			{From: "A", To: "X", Quantity: 10, Margin: 12},
			{From: "A", To: "Z", Quantity: 10, Margin: 3},
			{From: "B", To: "Y", Quantity: 28, Margin: 4},
			{From: "B", To: "Z", Quantity: 2, Margin: -1},
		}, plan.Shipments)

		assert.Equal(t, trade.Summary{
			Suppliers:     2,
			Receivers:     3,
			Supply:        50,
			Demand:        65,
			Shipped:       50,
			UnmetDemand:   15,
			Revenue:       1360,
			PurchaseCost:  560,
			TransportCost: 540,
			Profit:        260,
			Optimal:       true,
		}, plan.Summary)
		require.NotNil(t, plan.Result)
		assert.True(t, plan.Result.SyntheticSupplier)
	})

	t.Run("ContractReceiver", func(t *testing.T) {
		suppliers, receivers, routes := shortMarket()
		receivers[2].Contract = true

		b := &trade.Broker{}
		plan, err := b.Plan(context.Background(), suppliers, receivers, routes)
		require.NoError(t, err)

		served := 0.0
		for _, s := range plan.Shipments {
			if s.To == "Z" {
				served += s.Quantity
			}
		}
		assert.Equal(t, 27.0, served)
		assert.Equal(t, 185.0, plan.Summary.Profit)
		assert.Equal(t, 15.0, plan.Summary.UnmetDemand)
	})

	t.Run("SupplyExceedsDemand", func(t *testing.T) {
		suppliers := []trade.Supplier{
			{Name: "A", Supply: 10},
			{Name: "B", Supply: 10},
		}
		receivers := []trade.Receiver{{Name: "X", Demand: 10, Price: 5}}
		routes := []trade.Route{
			{From: "A", To: "X", Cost: 1},
			{From: "B", To: "X", Cost: 2},
		}

		b := &trade.Broker{}
		plan, err := b.Plan(context.Background(), suppliers, receivers, routes)
		require.NoError(t, err)

		assert.Equal(t, []trade.Shipment{{From: "A", To: "X", Quantity: 10, Margin: 4}}, plan.Shipments)
		assert.Equal(t, 10.0, plan.Summary.UnsoldSupply)
		assert.Equal(t, 0.0, plan.Summary.UnmetDemand)
		assert.Equal(t, 40.0, plan.Summary.Profit)

		suppliers[1].Contract = true
		plan, err = b.Plan(context.Background(), suppliers, receivers, routes)
		require.NoError(t, err)
		assert.Equal(t, []trade.Shipment{{From: "B", To: "X", Quantity: 10, Margin: 3}}, plan.Shipments)
		assert.Equal(t, 30.0, plan.Summary.Profit)
	})

	t.Run("DefaultRouteCost", func(t *testing.T) {
		suppliers := []trade.Supplier{{Name: "A", Supply: 5, Cost: 1}}
		receivers := []trade.Receiver{
			{Name: "X", Demand: 5, Price: 10},
			{Name: "Y", Demand: 5, Price: 10},
		}
		routes := []trade.Route{{From: "A", To: "X", Cost: 6}}

		b := &trade.Broker{DefaultRouteCost: floatPtr(2)}
		plan, err := b.Plan(context.Background(), suppliers, receivers, routes)
		require.NoError(t, err)

		// the default lane A -> Y is cheaper than the explicit A -> X
		assert.Equal(t, []trade.Shipment{{From: "A", To: "Y", Quantity: 5, Margin: 7}}, plan.Shipments)
		assert.Equal(t, 5.0, plan.Summary.UnmetDemand)
	})
}

// 2. 参数与错误
func TestBroker_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingRoute", func(t *testing.T) {
		suppliers, receivers, routes := shortMarket()
		_, err := (&trade.Broker{}).Plan(ctx, suppliers, receivers, routes[1:])
		require.Error(t, err)
		assert.Contains(t, err.Error(), "A -> X")
	})

	t.Run("UnknownEndpoint", func(t *testing.T) {
		suppliers, receivers, routes := shortMarket()
		routes = append(routes, trade.Route{From: "C", To: "X"})
		_, err := (&trade.Broker{}).Plan(ctx, suppliers, receivers, routes)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown supplier")
	})

	t.Run("DuplicateName", func(t *testing.T) {
		suppliers, receivers, routes := shortMarket()
		receivers[1].Name = "X"
		_, err := (&trade.Broker{}).Plan(ctx, suppliers, receivers, routes)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate receiver X")
	})

	t.Run("InvalidQuantity", func(t *testing.T) {
		suppliers, receivers, routes := shortMarket()
		suppliers[0].Supply = 0
		_, err := (&trade.Broker{}).Plan(ctx, suppliers, receivers, routes)
		require.Error(t, err)
		assert.True(t, broker.IsInvalidInput(err))
	})

	t.Run("InvalidSetting", func(t *testing.T) {
		suppliers, receivers, routes := shortMarket()
		b := &trade.Broker{Tolerance: floatPtr(-1)}
		_, err := b.Plan(ctx, suppliers, receivers, routes)
		require.Error(t, err)
		assert.True(t, broker.IsInvalidInput(err))
	})

	t.Run("IterationCap", func(t *testing.T) {
		suppliers := []trade.Supplier{{Name: "A", Supply: 10}, {Name: "B", Supply: 10}}
		receivers := []trade.Receiver{{Name: "X", Demand: 10, Price: 10}, {Name: "Y", Demand: 10, Price: 10}}
		routes := fullRoutes([]string{"A", "B"}, []string{"X", "Y"}, [][]float64{{5, 6}, {6, 10}})

		b := &trade.Broker{MaxIterations: intPtr(0)}
		plan, err := b.Plan(ctx, suppliers, receivers, routes)
		var ncErr *broker.NonConvergenceError
		require.ErrorAs(t, err, &ncErr)
		require.NotNil(t, plan)
		assert.False(t, plan.Summary.Optimal)
		assert.Equal(t, 50.0, plan.Summary.Profit)

		b.MaxIterations = nil
		plan, err = b.Plan(ctx, suppliers, receivers, routes)
		require.NoError(t, err)
		assert.True(t, plan.Summary.Optimal)
		assert.Equal(t, 80.0, plan.Summary.Profit)
		assert.Equal(t, 1, plan.Summary.Iterations)
	})
}

func TestBroker_Build(t *testing.T) {
	suppliers, receivers, routes := shortMarket()
	routes[0].Cost = 3

	var b trade.Broker
	p, err := b.Build(suppliers, receivers, routes)
	require.NoError(t, err)

	require.Len(t, p.Suppliers, 2)
	require.Len(t, p.Receivers, 3)
	assert.Equal(t, "B", p.Suppliers[1].ID)
	assert.Equal(t, 12.0, p.Suppliers[1].PurchaseCost)
	assert.Equal(t, "Z", p.Receivers[2].ID)
	assert.Equal(t, [][]float64{{3, 14, 17}, {12, 9, 19}}, p.Transport)
	assert.NoError(t, p.Validate())
}

func TestPlan_JSON(t *testing.T) {
	suppliers, receivers, routes := shortMarket()
	plan, err := (&trade.Broker{}).Plan(context.Background(), suppliers, receivers, routes)
	require.NoError(t, err)

	data, err := json.Marshal(plan)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, 2)
	assert.Contains(t, raw, "shipments")
	assert.Contains(t, string(raw["summary"]), `"unmet_demand":15`)
}
