// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/someonegg/broker/certify"
	"github.com/someonegg/broker/trade"
)

type Problem struct {
	Suppliers []trade.Supplier `json:"suppliers"`
	Receivers []trade.Receiver `json:"receivers"`
	Routes    []trade.Route    `json:"routes"`
}

func doSolve(ctx context.Context, problemFile, planFile string,
	maxIter int, tol, penalty, defaultCost float64,
	check, verbose bool) error {

	prob, err := loadProblem(problemFile)
	if err != nil {
		return errors.Wrap(err, "load problem file failed")
	}

	b := &trade.Broker{
		MaxIterations: &maxIter,
		Tolerance:     &tol,
		PenaltyFactor: &penalty,
		Verbose:       verbose,
	}
	if defaultCost >= 0 {
		b.DefaultRouteCost = &defaultCost
	}

	plan, solveErr := b.Plan(ctx, prob.Suppliers, prob.Receivers, prob.Routes)
	if plan == nil {
		return solveErr
	}
	fmt.Printf("%+v\n", plan.Summary)

	if err := writePlan(planFile, plan); err != nil {
		return errors.Wrap(err, "write plan file failed")
	}
	if solveErr != nil {
		return solveErr
	}

	if check {
		if err := certify.Check(plan.Result, tol); err != nil {
			return errors.Wrap(err, "certify failed")
		}
		if verbose {
			fmt.Println("certified against LP optimum")
		}
	}

	return nil
}

func doCheck(problemFile string) error {
	prob, err := loadProblem(problemFile)
	if err != nil {
		return errors.Wrap(err, "load problem file failed")
	}

	var b trade.Broker
	if _, err := b.Build(prob.Suppliers, prob.Receivers, prob.Routes); err != nil {
		return err
	}

	fmt.Printf("suppliers: %v, receivers: %v, routes: %v\n",
		len(prob.Suppliers), len(prob.Receivers), len(prob.Routes))
	return nil
}

func loadProblem(file string) (*Problem, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var prob Problem

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&prob); err != nil {
		return nil, err
	}

	return &prob, nil
}

func writePlan(file string, plan *trade.Plan) error {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "   ")
	if err := encoder.Encode(plan); err != nil {
		return err
	}

	return os.WriteFile(file, buf.Bytes(), 0644)
}
