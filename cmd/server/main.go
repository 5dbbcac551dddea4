// Package main wires together the path-follower guidance service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"path-follower/internal/api"
	"path-follower/internal/config"
	"path-follower/internal/env"
	"path-follower/internal/logging"
	"path-follower/internal/metrics"
	"path-follower/internal/sim"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush
	zap.ReplaceGlobals(logger)

	metrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var effects []env.Environment
	if cfg.Env.WindSpeed > 0 {
		effects = append(effects, env.FromSpeedAndDir(cfg.Env.WindSpeed, cfg.Env.WindDirDeg))
	}
	if cfg.Env.FloorEnabled {
		effects = append(effects, env.Floor{SafetyMarginM: cfg.Env.FloorMarginM})
	}

	engine := sim.New(sim.Config{
		OriginLat:       cfg.Sim.OriginLat,
		OriginLon:       cfg.Sim.OriginLon,
		TickHz:          cfg.Sim.TickHz,
		StartAltM:       cfg.Sim.StartAltM,
		DefaultSpeed:    cfg.Sim.DefaultSpeed,
		ArrivalProgress: cfg.Sim.ArrivalProgress,
		PosTolM:         cfg.Sim.PosTolM,
		MaxHorizAccel:   cfg.Sim.MaxHorizAccel,
		MaxVertAccel:    cfg.Sim.MaxVertAccel,
		Follower: sim.FollowerConfig{
			CorrectionGain:      cfg.Follower.CorrectionGain,
			MaxCorrectionWeight: cfg.Follower.MaxCorrectionWeight,
			MaxClimbRate:        cfg.Follower.MaxClimbRate,
		},
		Environment: &env.Chain{Effects: effects},
		Logger:      logger.Named("sim"),
	})

	server := api.NewServer(engine, logger.Named("api"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("engine started", zap.Float64("tickHz", cfg.Sim.TickHz))
		if err := engine.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("engine error", zap.Error(err))
			stop()
		}
	}()

	go func() {
		logger.Info("http server started", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
