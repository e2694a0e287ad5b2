package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/carprice/internal/config"
	logpkg "github.com/kailas-cloud/carprice/internal/logger"
	"github.com/kailas-cloud/carprice/internal/metrics"
	"github.com/kailas-cloud/carprice/internal/repository/dataset"
	"github.com/kailas-cloud/carprice/internal/repository/model"
	chiTransport "github.com/kailas-cloud/carprice/internal/transport/chi"
	healthuc "github.com/kailas-cloud/carprice/internal/usecase/health"
	predictionuc "github.com/kailas-cloud/carprice/internal/usecase/prediction"
	"github.com/kailas-cloud/carprice/internal/version"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Load the dataset and model, then serve the prediction form",
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	env := c.String("env")

	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, loggerOptions(cfg.Logging))
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting carprice server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("dataset", cfg.Dataset.Path),
		zap.String("model", cfg.Model.Path),
	)

	// Both are loaded exactly once; a failure here is fatal.
	catalog, err := dataset.Load(cfg.Dataset.Path, dataset.Format(cfg.Dataset.Format))
	if err != nil {
		logger.Fatal("Failed to load dataset", zap.Error(err))
	}
	logger.Info("Dataset loaded",
		zap.Int("rows", catalog.Len()),
		zap.Int("companies", len(catalog.DistinctCompanies())),
	)

	holder, err := model.Load(cfg.Model.Path)
	if err != nil {
		logger.Fatal("Failed to load model", zap.Error(err))
	}
	logger.Info("Model loaded",
		zap.String("kind", string(holder.Kind())),
		zap.Int("features", holder.Schema().Len()),
	)
	if missing := holder.Schema().MissingNumeric(); len(missing) > 0 {
		logger.Warn("Model schema lacks numeric columns, their values will be dropped",
			zap.Strings("columns", missing),
		)
	}

	metrics.RegisterPredictionMetrics()

	predictionSvc := predictionuc.New(catalog, holder).
		WithObserver(metrics.PredictionObserver{}).
		WithCurrencySymbol(cfg.Form.CurrencySymbol)
	healthSvc := healthuc.New(catalog, holder)

	server := chiTransport.NewServer(predictionSvc, healthSvc, formOptions(cfg.Form), logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      chiTransport.NewRouter(server, logger),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}

func loggerOptions(l config.LoggingConfig) logpkg.Options {
	return logpkg.Options{
		Level:      l.Level,
		File:       l.File,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		MaxAgeDays: l.MaxAgeDays,
		Compress:   l.Compress,
	}
}

func formOptions(f config.FormConfig) chiTransport.FormOptions {
	return chiTransport.FormOptions{
		Title:       f.Title,
		YearMin:     f.YearMin,
		YearMax:     f.YearMax,
		YearDefault: f.YearDefault,
		KmsMin:      f.KmsMin,
		KmsMax:      f.KmsMax,
		KmsStep:     f.KmsStep,
		KmsDefault:  f.KmsDefault,
	}
}
