package db

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"storefront-be/internal/config"
	"storefront-be/internal/logger"

	_ "github.com/lib/pq"
)

func InitDB(cfg *config.Config) *sql.DB {
	db, err := sql.Open("postgres", DSN(cfg))
	if err != nil {
		logger.L().Fatal("failed to connect to db", zap.Error(err))
	}

	if err = db.Ping(); err != nil {
		logger.L().Fatal("failed to ping db", zap.Error(err))
	}

	logger.L().Info("database connection established",
		zap.String("host", cfg.DBHost),
		zap.String("database", cfg.DBName),
	)
	return db
}

// DSN builds the lib/pq connection string from the DB_* config vars.
func DSN(cfg *config.Config) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)
}
