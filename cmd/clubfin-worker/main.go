package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"clubfin/internal/config"
	"clubfin/internal/events"
	applog "clubfin/internal/log"
	"clubfin/internal/sheetsync"
	gsheet "clubfin/internal/sheetsync/google"
	"clubfin/internal/sheetsync/memory"
	"clubfin/internal/storage"
	"clubfin/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(applog.Config{
		Component: applog.ComponentWorker,
		Format:    cfg.LogFormat,
	})
	applog.SetDefault(logger)

	logger.Info("Starting clubfin-worker")

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	// Snapshot storage is read-only here, used for the startup check.
	repo, err := storage.NewSnapshotRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open snapshot storage, continuing without it", "error", err, "path", cfg.SQLiteDBPath)
		repo = nil
	} else {
		defer repo.Close()
	}

	// Audit destination: the treasurer's spreadsheet, or an in-memory log
	// when no spreadsheet is configured.
	var audit sheetsync.AuditWriter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		audit = client
		logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		audit = memory.New()
		logger.Info("Google Sheets disabled - using in-memory audit log")
	}

	var syncWorker *worker.SyncWorker
	if repo != nil {
		syncWorker = worker.NewSyncWorker(repo, audit)
	} else {
		syncWorker = worker.NewSyncWorker(nil, audit)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := syncWorker.StartupCheck(ctx); err != nil {
		logger.Error("Startup check failed", "error", err)
		// Keep going; the check is informational.
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return events.ConsumeWithReconnect(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, syncWorker.HandleRosterEvent)
	})

	// Heartbeat so operators can tell a quiet worker from a dead one.
	g.Go(func() error {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				logger.Info("Worker alive", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	logger.Info("Worker started, consuming roster events", "queue", cfg.AMQPQueue)

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
