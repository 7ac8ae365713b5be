package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "broker",
		Usage: "Plan the most profitable shipments between suppliers and receivers",
		Commands: []*cli.Command{
			solveCmd,
			checkCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println("Error: ", err)
		os.Exit(1)
	}
}

var solveCmd = &cli.Command{
	Name:    "solve",
	Usage:   "Solve a problem and write the shipment plan",
	Aliases: []string{"s"},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "problem",
			Required: true,
			Usage:    "specify the input problem.json",
		},
		&cli.StringFlag{
			Name:     "plan",
			Required: true,
			Usage:    "specify the output plan.json",
		},
		&cli.IntFlag{
			Name:  "max-iter",
			Value: 100,
			Usage: "specify the iteration cap",
		},
		&cli.Float64Flag{
			Name:  "tol",
			Value: 1e-6,
			Usage: "specify the numerical tolerance",
		},
		&cli.Float64Flag{
			Name:  "penalty",
			Value: 1e5,
			Usage: "specify the contract penalty factor (> 1)",
		},
		&cli.Float64Flag{
			Name:  "default-cost",
			Value: -1,
			Usage: "specify the transport cost of lanes without a route (disabled when negative)",
		},
		&cli.BoolFlag{
			Name:  "certify",
			Usage: "cross-check the result with an LP solver",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
		},
	},
	Action: func(ctx *cli.Context) error {
		var (
			problemFile = ctx.String("problem")
			planFile    = ctx.String("plan")
			maxIter     = ctx.Int("max-iter")
			tol         = ctx.Float64("tol")
			penalty     = ctx.Float64("penalty")
			defaultCost = ctx.Float64("default-cost")
			certify     = ctx.Bool("certify")
			verbose     = ctx.Bool("verbose")
		)
		if maxIter < 0 {
			return errors.New("invalid max-iter")
		}
		if !(tol > 0 && tol < 1) {
			return errors.New("invalid tol")
		}
		if !(penalty > 1) {
			return errors.New("invalid penalty")
		}
		return doSolve(ctx.Context, problemFile, planFile,
			maxIter, tol, penalty, defaultCost, certify, verbose)
	},
}

var checkCmd = &cli.Command{
	Name:    "check",
	Usage:   "Load and validate a problem without solving it",
	Aliases: []string{"c"},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "problem",
			Required: true,
			Usage:    "specify the input problem.json",
		},
	},
	Action: func(ctx *cli.Context) error {
		return doCheck(ctx.String("problem"))
	},
}
