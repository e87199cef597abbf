package storage

import (
	"context"
	"database/sql"
	"fmt"

	"adrs/pkg/config"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// DB is a receipt store handle. It wraps database/sql so the repository
// layer is backend-agnostic; Placeholder carries the SQL placeholder style
// the backend expects.
type DB struct {
	*sql.DB
	Placeholder squirrel.PlaceholderFormat

	pool *pgxpool.Pool
}

// Open acquires a store handle for the configured backend. The embedded
// sqlite backend is the default; postgres is available for deployments
// that already run one.
func Open(ctx context.Context, cfg *config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return openSQLite(ctx, cfg, logger)
	case "postgres":
		return openPostgres(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Close releases the handle and the underlying pool, if any.
func (d *DB) Close() {
	_ = d.DB.Close()
	if d.pool != nil {
		d.pool.Close()
	}
}

func openSQLite(ctx context.Context, cfg *config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(FULL)", cfg.Path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// Single-writer store: one connection serializes all statements.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	logger.Info("Database connection established",
		zap.String("driver", "sqlite"),
		zap.String("path", cfg.Path),
	)

	return &DB{DB: db, Placeholder: squirrel.Question}, nil
}

func openPostgres(ctx context.Context, cfg *config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established",
		zap.String("driver", "postgres"),
		zap.String("host", cfg.Host),
		zap.String("database", cfg.DBName),
	)

	return &DB{DB: stdlib.OpenDBFromPool(pool), Placeholder: squirrel.Dollar, pool: pool}, nil
}
