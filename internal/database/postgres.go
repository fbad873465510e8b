package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/taskboard/taskboard-api/internal/logger"
)

type Config struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

const pingAttempts = 5

// NewPostgresDB opens a connection pool and verifies it with a short
// exponential-backoff ping loop, so the service survives a database that is
// still coming up.
func NewPostgresDB(ctx context.Context, cfg Config) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	backoff := 200 * time.Millisecond
	for attempt := 1; ; attempt++ {
		err = db.PingContext(ctx)
		if err == nil {
			break
		}
		if attempt == pingAttempts {
			db.Close()
			return nil, fmt.Errorf("failed to ping database after %d attempts: %w", pingAttempts, err)
		}
		logger.WarnLog(ctx, "database ping attempt %d failed: %v, retrying in %s", attempt, err, backoff)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		}
		backoff *= 2
	}

	if err := ensureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS task (
			id         SERIAL PRIMARY KEY,
			title      VARCHAR(256) NOT NULL,
			priority   VARCHAR(16) NOT NULL DEFAULT 'none',
			status     VARCHAR(16) NOT NULL DEFAULT 'not_started',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS custom_field (
			id      SERIAL PRIMARY KEY,
			task_id INTEGER NOT NULL REFERENCES task(id) ON DELETE CASCADE,
			name    VARCHAR(128) NOT NULL,
			type    VARCHAR(16) NOT NULL,
			value   TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_custom_field_task_id ON custom_field (task_id)`,
		`CREATE INDEX IF NOT EXISTS idx_custom_field_name ON custom_field (lower(name))`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
