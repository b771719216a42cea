package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"ems/internal/config"
)

var DB *pgxpool.Pool

func InitDB(ctx context.Context, cfg config.Database, log *zap.Logger) error {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return fmt.Errorf("parse connection string: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MaxConnIdleTime = cfg.MaxIdleTime
	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = map[string]string{}
	}
	poolConfig.ConnConfig.RuntimeParams["search_path"] = "public"

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("ping database: %w", err)
	}

	DB = pool
	var currentDB, currentUser string
	if err := pool.QueryRow(ctx, "SELECT current_database(), current_user").Scan(&currentDB, &currentUser); err != nil {
		log.Warn("database connection established, context query failed", zap.Error(err))
	} else {
		log.Info("database connection established", zap.String("db", currentDB), zap.String("user", currentUser))
	}
	return nil
}

func CloseDB() {
	if DB != nil {
		DB.Close()
	}
}
