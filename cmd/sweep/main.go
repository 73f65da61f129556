// Package main is the batch experiment driver. It runs the entanglement
// sweep and the strategy payoff table without starting the HTTP server,
// writing a plot PNG and printing the table to stdout.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/aristath/qdilemma/internal/modules/experiments"
	"github.com/aristath/qdilemma/internal/modules/game"
	"github.com/aristath/qdilemma/pkg/logger"
)

func main() {
	var (
		points   = flag.Int("points", experiments.BatchSweepPoints, "number of gamma values to sweep")
		shots    = flag.Int("shots", experiments.BatchSweepShots, "measurement shots per circuit")
		output   = flag.String("output", experiments.DefaultPlotFilename, "path for the sweep plot PNG")
		seed     = flag.Uint64("seed", 0, "RNG seed for reproducible runs (0 uses a time-based seed)")
		logLevel = flag.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	)
	flag.Parse()

	log := logger.New(logger.Config{
		Level:  *logLevel,
		Pretty: true,
	})

	if err := game.VerifyGates(); err != nil {
		log.Fatal().Err(err).Msg("Gate self-check failed")
	}

	var gameService *game.Service
	if *seed != 0 {
		gameService = game.NewSeededService(*seed, log)
	} else {
		gameService = game.NewService(log)
	}

	log.Info().
		Int("points", *points).
		Int("shots", *shots).
		Msg("Running entanglement sweep")

	sweep, err := experiments.RunSweep(gameService, *points, *shots, func(i, total int, point experiments.SweepPoint) {
		log.Debug().
			Int("point", i).
			Int("total", total).
			Float64("gamma", point.Gamma).
			Float64("classical", point.Classical).
			Float64("quantum", point.Quantum).
			Msg("Sweep point complete")
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Sweep failed")
	}

	if err := experiments.WritePlot(sweep, *output); err != nil {
		log.Fatal().Err(err).Msg("Failed to write sweep plot")
	}
	log.Info().Str("path", *output).Msg("Sweep plot written")

	log.Info().Int("shots", *shots).Msg("Computing strategy payoff table")

	table, err := experiments.RunEquilibrium(gameService, *shots)
	if err != nil {
		log.Fatal().Err(err).Msg("Payoff table failed")
	}

	fmt.Fprintln(os.Stdout)
	fmt.Fprint(os.Stdout, table.Format())
}
