package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/BruksfildServices01/teleconsult/internal/audit"
	"github.com/BruksfildServices01/teleconsult/internal/config"
	"github.com/BruksfildServices01/teleconsult/internal/metrics"
	"github.com/BruksfildServices01/teleconsult/internal/routes"
	"github.com/BruksfildServices01/teleconsult/pkg/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	source, err := openDataSource(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open data source", "data_source", cfg.DataSource, "error", err)
		os.Exit(1)
	}
	defer source.Close()

	dispatcher := audit.NewDispatcher(source.AuditSink, logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	widgetMetrics := metrics.NewWidgetMetrics(reg)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	registry := routes.RegisterRoutes(r, routes.Dependencies{
		Config:   cfg,
		Repo:     source.Repo,
		Audit:    dispatcher,
		Metrics:  widgetMetrics,
		Gatherer: reg,
		Logger:   logger,
	})

	sweepCtx, stopSweep := context.WithCancel(ctx)
	go registry.Run(sweepCtx, time.Minute)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", "addr", cfg.Addr(), "data_source", cfg.DataSource)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	stopSweep()
	registry.Close()
	dispatcher.Close()

	logger.Info("server stopped")
}
