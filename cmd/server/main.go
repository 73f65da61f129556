// Package main is the entry point for the qdilemma server. It wires the
// quantum game simulator, the experiment services, and the run history store,
// then serves the REST API and the embedded dashboard frontend.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/qdilemma/internal/config"
	"github.com/aristath/qdilemma/internal/database"
	"github.com/aristath/qdilemma/internal/modules/experiments"
	experimentsHandlers "github.com/aristath/qdilemma/internal/modules/experiments/handlers"
	"github.com/aristath/qdilemma/internal/modules/game"
	gameHandlers "github.com/aristath/qdilemma/internal/modules/game/handlers"
	"github.com/aristath/qdilemma/internal/scheduler"
	"github.com/aristath/qdilemma/internal/server"
	"github.com/aristath/qdilemma/pkg/logger"
)

func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	log.Info().Msg("Starting qdilemma")

	// Gate kernels must be sound before anything is served.
	if err := game.VerifyGates(); err != nil {
		log.Fatal().Err(err).Msg("Gate self-check failed")
	}

	// Run history is optional. When enabled, every dashboard run is persisted
	// to SQLite so the recent-runs view survives restarts.
	var historyDB *database.DB
	var runRepo *experiments.RunRepository
	if cfg.HistoryEnabled {
		historyDB, err = database.New(database.Config{
			Path:    cfg.HistoryDBPath(),
			Name:    "history",
			Profile: database.ProfileStandard,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open history database")
		}
		defer historyDB.Close()

		runRepo = experiments.NewRunRepository(historyDB, log)
		if err := runRepo.InitSchema(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize run history schema")
		}
		log.Info().Str("path", cfg.HistoryDBPath()).Msg("Run history enabled")
	} else {
		log.Info().Msg("Run history disabled")
	}

	gameService := game.NewService(log)
	experimentsService := experiments.NewService(gameService, runRepo, log)

	srv := server.New(server.Config{
		Port:                cfg.Port,
		Log:                 log,
		Config:              cfg,
		DevMode:             cfg.DevMode,
		GameHandlers:        gameHandlers.NewHandler(gameService, experimentsService, cfg.DefaultShots, log),
		ExperimentsHandlers: experimentsHandlers.NewHandler(experimentsService, log),
		SystemHandlers:      server.NewSystemHandlers(log, cfg.DataDir, getEnv("VERSION", "dev")),
	})

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Warm the sweep cache so the dashboard chart has data on first load.
	if cfg.SweepRefreshOnBoot {
		go func() {
			if err := experimentsService.RefreshSweep(); err != nil {
				log.Error().Err(err).Msg("Initial sweep refresh failed")
			}
		}()
	}

	// Optional periodic sweep refresh, cron-scheduled.
	var sched *scheduler.Scheduler
	if cfg.SweepRefreshCron != "" {
		sched = scheduler.New(log)
		job := scheduler.NewSweepRefreshJob(experimentsService)
		if err := sched.AddJob(cfg.SweepRefreshCron, job); err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.SweepRefreshCron).Msg("Failed to schedule sweep refresh")
		}
		sched.Start()
		log.Info().Str("schedule", cfg.SweepRefreshCron).Msg("Sweep refresh scheduled")
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	if sched != nil {
		sched.Stop()
		log.Info().Msg("Scheduler stopped")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
