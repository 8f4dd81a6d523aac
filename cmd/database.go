package cmd

import (
	"context"
	"fmt"

	"ordering/config"
	"ordering/infrastructure/persistence/mysql"
	"ordering/pkg/logger"

	"gorm.io/gorm"
)

// OpenMySQL connects, pings and, when auto_migrate is set, migrates the schema.
// The returned closer releases the connection pool.
func OpenMySQL(ctx context.Context, cfg *config.DatabaseConfig) (*gorm.DB, func() error, error) {
	db, err := mysql.ConfigFromDatabase(cfg).Connect()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if err := mysql.Ping(ctx, db); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	if cfg.AutoMigrate {
		if err := mysql.AutoMigrate(db); err != nil {
			sqlDB.Close()
			return nil, nil, fmt.Errorf("failed to auto migrate: %w", err)
		}
		logger.Info("Schema migrated")
	}
	return db, sqlDB.Close, nil
}
