package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quangtran/advisor/internal/config"
	"github.com/quangtran/advisor/internal/modules/indicators"
	"github.com/quangtran/advisor/internal/modules/scanner"
	"github.com/quangtran/advisor/internal/modules/scoring"
	"github.com/quangtran/advisor/internal/modules/simulation"
	"github.com/quangtran/advisor/internal/modules/universe"
	"github.com/quangtran/advisor/internal/scheduler"
	"github.com/quangtran/advisor/internal/server"
	"github.com/quangtran/advisor/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		errLog := logger.New(logger.Config{Level: "error"})
		errLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting advisor")

	store, err := universe.NewHistoryStore(cfg.HistoryDBPath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open history store")
	}
	defer store.Close()

	engine := indicators.NewEngine(log)
	technical := scoring.NewTechnicalScorer(log)
	fundamental := scoring.NewFundamentalScorer(log)
	simulator := simulation.NewSimulator(log)

	scan := scanner.New(scanner.Config{
		Engine:        engine,
		Scorer:        technical,
		Workers:       cfg.ScanWorkers,
		SymbolTimeout: cfg.ScanSymbolTimeout,
		Log:           log,
	})

	sched := scheduler.New(log)
	radarJob := scheduler.NewRadarScanJob(scheduler.RadarScanConfig{
		Scanner: scan,
		Fetch:   store.Fetch,
		Symbols: universe.List(cfg.ScanExchange),
		Log:     log,
	})
	if err := sched.AddJob(cfg.ScanSchedule, radarJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register radar scan job")
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(server.Config{
		Port:        cfg.Port,
		DevMode:     cfg.DevMode,
		Log:         log,
		Engine:      engine,
		Technical:   technical,
		Fundamental: fundamental,
		Simulator:   simulator,
		Scanner:     scan,
		Store:       store,
	})

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
