package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"bizdash/internal/amqp"
	"bizdash/internal/config"
	applog "bizdash/internal/log"
	gsheet "bizdash/internal/sheets/google"
	"bizdash/internal/storage"
	"bizdash/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.Setup("mirror-worker")

	logger.Info("Starting mirror-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// Local store holding the rows still waiting to reach the spreadsheet.
	store, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite store", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer store.Close()

	sheetsClient, err := gsheet.NewFromEnv(context.Background())
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	// AMQP is optional; without it the worker falls back to the periodic
	// backlog scan alone.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
	} else {
		logger.Info("AMQP disabled - relying on periodic backlog scan")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mirror := worker.NewMirrorWorker(store, sheetsClient, cfg.MirrorBatchSize)

	// On startup, push any rows that accumulated while the worker was down.
	logger.Info("Performing startup backlog check...")
	if err := mirror.ProcessBacklog(ctx); err != nil {
		logger.Error("Startup backlog check failed", "error", err)
		// Don't exit - continue with normal operation
	}

	if amqpClient != nil {
		go func() {
			if err := amqpClient.ConsumeRecordCreated(ctx, mirror.HandleRecordCreated); err != nil {
				if err != context.Canceled {
					logger.Error("Message consumption failed", "error", err)
				}
				cancel()
			}
		}()
	}

	// Periodic scan catches rows whose events were lost.
	go func() {
		if err := mirror.Run(ctx, cfg.MirrorInterval); err != nil && err != context.Canceled {
			logger.Error("Mirror loop failed", "error", err)
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	logger.Info("Shutting down worker...")
	cancel()

	// Give in-flight appends a moment to finish.
	time.Sleep(2 * time.Second)
	logger.Info("Worker shutdown complete")
}
