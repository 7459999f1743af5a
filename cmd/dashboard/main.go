package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/thermal-comfort-service/internal/adapter/csvfile"
	httpadapter "github.com/couchcryptid/thermal-comfort-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/thermal-comfort-service/internal/adapter/kafka"
	"github.com/couchcryptid/thermal-comfort-service/internal/config"
	"github.com/couchcryptid/thermal-comfort-service/internal/observability"
	"github.com/couchcryptid/thermal-comfort-service/internal/pipeline"
	"github.com/couchcryptid/thermal-comfort-service/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	if cfg.Thresholds.Night.Degenerate() {
		logger.Warn("night window start is not after end, every hour counts as night",
			"night_start_hour", cfg.Thresholds.Night.Start,
			"night_end_hour", cfg.Thresholds.Night.End,
		)
	}

	source := csvfile.NewSource(cfg, logger)
	reports := report.NewService(source, cfg, metrics, logger)
	readiness := observability.Readiness{source}

	// Alert publishing is feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	var (
		publisher *pipeline.Pipeline
		writer    *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		builder := pipeline.NewAlertBuilder(reports.Codec(), logger)
		publisher = pipeline.New(reports, builder, writer, logger, metrics, cfg.PublishInterval)
		readiness = append(readiness, publisher)
		logger.Info("alert publishing enabled", "topic", cfg.KafkaAlertTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("alert publishing disabled")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, readiness, reports, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	// Start alert publisher.
	done := make(chan struct{})
	go func() {
		defer close(done)
		if publisher == nil {
			return
		}
		if err := publisher.Run(ctx); err != nil {
			logger.Error("publisher error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	select {
	case <-done:
	case <-shutdownCtx.Done():
		logger.Warn("publisher did not stop before shutdown timeout")
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
