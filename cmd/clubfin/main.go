package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"clubfin/internal/actions"
	"clubfin/internal/assistant"
	"clubfin/internal/config"
	"clubfin/internal/events"
	apphttp "clubfin/internal/http"
	applog "clubfin/internal/log"
	"clubfin/internal/roster"
	"clubfin/internal/services"
	"clubfin/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(applog.Config{
		Component: applog.ComponentApp,
		Format:    cfg.LogFormat,
	})
	applog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// Snapshot storage. The app keeps working in memory if it fails.
	var repo roster.SnapshotRepository
	sqliteRepo, err := storage.NewSnapshotRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize snapshot storage, roster will not survive restarts",
			"error", err, "path", cfg.SQLiteDBPath)
	} else {
		repo = sqliteRepo
		defer sqliteRepo.Close()
	}

	// Restore the roster, or seed a fresh one on first run.
	store := loadOrSeedStore(context.Background(), logger, repo)

	// AMQP is optional; without it roster events are simply not mirrored.
	var publisher services.EventPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client, continuing without event publishing", "error", err)
		} else {
			publisher = amqpClient
			defer amqpClient.Close()
			logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	dispatcher := actions.NewDispatcher(store, nil)
	tracker := services.NewTrackerService(dispatcher, repo, publisher)

	asst := buildAssistant(logger, cfg)

	srv := apphttp.NewServer(":"+cfg.Port, store, tracker, asst, cfg.MonthlyFeeARS, nil)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting clubfin server", "port", cfg.Port, "monthly_fee_ars", cfg.MonthlyFeeARS)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}

// loadOrSeedStore restores the persisted roster. On first run (or when
// storage is unavailable) it seeds the demo roster and saves it.
func loadOrSeedStore(ctx context.Context, logger *applog.Logger, repo roster.SnapshotRepository) *roster.Store {
	if repo != nil {
		snap, ok, err := repo.Load(ctx)
		if err != nil {
			logger.Error("Failed to load roster snapshot, seeding fresh roster", "error", err)
		} else if ok {
			logger.Info("Roster snapshot restored", "players", len(snap.Players))
			return roster.NewFromSnapshot(snap)
		}
	}

	seed := roster.SeedSnapshot(time.Now())
	logger.Info("Seeded initial roster", "players", len(seed.Players))
	if repo != nil {
		if err := repo.Save(ctx, seed); err != nil {
			logger.Error("Failed to persist seeded roster", "error", err)
		}
	}
	return roster.NewFromSnapshot(seed)
}

// buildAssistant wires the Gemini client behind the single-flight guard.
// Without an API key the chat degrades to a fixed offline notice.
func buildAssistant(logger *applog.Logger, cfg *config.Config) assistant.Assistant {
	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, chat assistant disabled")
		return offlineAssistant{}
	}

	gemini, err := assistant.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.MonthlyFeeARS, nil)
	if err != nil {
		logger.Error("Failed to initialize Gemini assistant, chat disabled", "error", err)
		return offlineAssistant{}
	}
	logger.Info("Gemini assistant initialized", "model", cfg.GeminiModel)
	return assistant.NewSingleFlight(gemini)
}

type offlineAssistant struct{}

func (offlineAssistant) Chat(ctx context.Context, prompt string, snap roster.Snapshot) (assistant.Reply, error) {
	return assistant.Reply{Text: "El asistente no está configurado. Definí GEMINI_API_KEY para habilitar el chat."}, nil
}
