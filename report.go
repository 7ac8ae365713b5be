// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package broker

// result aggregates the current plan. Purchase cost, transport cost and
// revenue only count real routes; the total margin counts every cell.
func (st *solveState) result(optimal bool) *Result {
	prob := st.prob

	res := &Result{
		Plan:      rows(st.plan),
		Margin:    rows(prob.margin),
		Transport: rows(prob.transport),
		Basic:     make([][]bool, prob.rows),
		Penalized: make([][]bool, prob.rows),
		Supply:    append([]float64(nil), prob.supply...),
		Demand:    append([]float64(nil), prob.demand...),
		RowLabels: append([]string(nil), prob.rowIDs...),
		ColLabels: append([]string(nil), prob.colIDs...),
		RowDuals:  append([]float64(nil), st.u...),
		ColDuals:  append([]float64(nil), st.v...),

		SyntheticSupplier: prob.synthRow >= 0,
		SyntheticReceiver: prob.synthCol >= 0,

		Optimal:    optimal,
		Iterations: st.iter,
		History:    st.history,
	}

	for i := 0; i < prob.rows; i++ {
		res.Basic[i] = make([]bool, prob.cols)
		res.Penalized[i] = make([]bool, prob.cols)

		for j := 0; j < prob.cols; j++ {
			k := prob.index(i, j)
			res.Basic[i][j] = st.basic[k]
			res.Penalized[i][j] = prob.penalized[k]

			qty := st.plan.At(i, j)
			res.TotalMargin += prob.margin.At(i, j) * qty

			if prob.synthetic(i, j) {
				continue
			}

			res.TotalPurchaseCost += prob.purchase[i] * qty
			res.TotalTransportCost += prob.transport.At(i, j) * qty
			res.TotalRevenue += prob.price[j] * qty

			if !st.basic[k] {
				res.ReducedCosts = append(res.ReducedCosts, ReducedCost{
					Supplier:   i,
					Receiver:   j,
					SupplierID: prob.rowIDs[i],
					ReceiverID: prob.colIDs[j],
					Delta:      prob.margin.At(i, j) - st.u[i] - st.v[j],
				})
			}
		}
	}

	res.TotalProfit = res.TotalRevenue - res.TotalPurchaseCost - res.TotalTransportCost
	res.HasAlternateOptimum = optimal && st.pr.alternate(st.cfg.tol)

	return res
}
