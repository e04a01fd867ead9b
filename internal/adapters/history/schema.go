package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// InitSchema creates the fare_history table and its index for the given dialect.
func InitSchema(ctx context.Context, db *sql.DB, dialect Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	var statements []string
	switch dialect {
	case Postgres:
		statements = []string{`
	CREATE TABLE IF NOT EXISTS fare_history (
		id BIGSERIAL PRIMARY KEY,
		run_id TEXT NOT NULL,
		price_key TEXT NOT NULL,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		departure_date TEXT NOT NULL,
		amount NUMERIC(12, 2) NOT NULL,
		currency TEXT NOT NULL,
		fetched_at TIMESTAMPTZ NOT NULL
	);
	`, `
	CREATE INDEX IF NOT EXISTS idx_fare_history_key_fetched
	ON fare_history(price_key, fetched_at DESC);
	`}
	case SQLite:
		statements = []string{`
	CREATE TABLE IF NOT EXISTS fare_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		price_key TEXT NOT NULL,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		departure_date TEXT NOT NULL,
		amount REAL NOT NULL,
		currency TEXT NOT NULL,
		fetched_at TEXT NOT NULL
	);
	`, `
	CREATE INDEX IF NOT EXISTS idx_fare_history_key_fetched
	ON fare_history(price_key, fetched_at);
	`}
	default:
		return fmt.Errorf("init schema: unknown dialect %q", dialect)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
