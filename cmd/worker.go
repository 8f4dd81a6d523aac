package cmd

import (
	"context"
	"errors"

	"ordering/config"
	"ordering/infrastructure/persistence/mysql"
)

// ErrWorkerNeedsMySQL the in-memory outbox lives inside the API process
var ErrWorkerNeedsMySQL = errors.New("outbox worker requires database.type=mysql")

// NewOutboxWorker wires the outbox poller to MySQL and the logging publisher.
// Callers own the returned closer.
func NewOutboxWorker(ctx context.Context, cfg *config.Config) (*mysql.OutboxWorker, func() error, error) {
	if cfg.Database.Type != "mysql" {
		return nil, nil, ErrWorkerNeedsMySQL
	}

	db, closeDB, err := OpenMySQL(ctx, &cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	worker, err := mysql.NewOutboxWorker(mysql.NewOutboxRepository(db), &mysql.LoggingOutboxPublisher{}, cfg.Worker)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	return worker, closeDB, nil
}
