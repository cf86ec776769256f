package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"ledger/internal/amqp"
	"ledger/internal/config"
	applog "ledger/internal/log"
	gsheet "ledger/internal/sheets/google"
	"ledger/internal/storage"
	"ledger/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Level:     applog.DefaultConfig().Level,
		Component: applog.ComponentWorker,
	})
	applog.SetDefault(logger)

	logger.Info("Starting ledger-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	sqliteRepo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer sqliteRepo.Close()

	// The sheet mirror is optional; without it the worker only drains and
	// acknowledges messages.
	var sheetsClient *gsheet.Client
	if cfg.GoogleSpreadsheetID != "" {
		sheetsClient, err = gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Google Sheets mirror disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var syncWorker *worker.SyncWorker
	if sheetsClient != nil {
		syncWorker = worker.NewSyncWorker(sqliteRepo, sheetsClient, cfg.SyncBatchSize)

		// Drain anything that accumulated while the worker was down.
		logger.Info("Performing startup sync check...")
		if err := syncWorker.StartupSyncCheck(ctx); err != nil {
			logger.Error("Startup sync check failed", "error", err)
			// Keep running; the periodic scan retries.
		}
	} else {
		logger.Info("Skipping sync operations - no mirror available")
	}

	g, gctx := errgroup.WithContext(ctx)

	if syncWorker != nil {
		g.Go(func() error {
			err := amqpClient.ConsumeMessages(gctx, func(msg *amqp.RecordSyncMessage) error {
				return syncWorker.HandleMessage(gctx, msg)
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Message consumption failed", "error", err)
				return err
			}
			return nil
		})

		// Periodic scan for records whose messages were lost.
		g.Go(func() error {
			ticker := time.NewTicker(cfg.SyncInterval)
			defer ticker.Stop()

			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					if err := syncWorker.ProcessPendingRecords(gctx); err != nil {
						logger.Error("Periodic sync failed", "error", err)
					}
				}
			}
		})
	}

	// Block until a shutdown signal or a fatal goroutine error.
	g.Go(func() error {
		<-gctx.Done()
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker shutdown complete")
}
