// Command worker relays outbox events written by the API to the publisher.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ordering/cmd"
	"ordering/config"
	"ordering/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, *configPath)
	stop()
	_ = logger.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "outbox worker: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if !cfg.Worker.Enabled {
		logger.Info("Outbox worker disabled, nothing to do")
		return nil
	}

	worker, closeDB, err := cmd.NewOutboxWorker(ctx, cfg)
	if errors.Is(err, cmd.ErrWorkerNeedsMySQL) {
		logger.Info("Outbox worker skipped", zap.String("database_type", cfg.Database.Type), zap.Error(err))
		return nil
	}
	if err != nil {
		return err
	}
	defer closeDB()

	logger.Info("Outbox worker started",
		zap.Duration("poll_interval", cfg.Worker.PollInterval),
		zap.Int("batch_size", cfg.Worker.BatchSize))

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("outbox worker stopped: %w", err)
	}
	logger.Info("Outbox worker stopped")
	return nil
}
