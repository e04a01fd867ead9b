package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"route-fare-planner/internal/platform/db"
	"route-fare-planner/internal/ports"
	"strings"
)

// Store is an opened fare history together with its connection.
type Store struct {
	ports.FareHistory
	DB      *sql.DB
	Dialect Dialect
}

func (s *Store) Close() error {
	return s.DB.Close()
}

// ErrNotConfigured means neither a Postgres URL nor a SQLite path was given.
var ErrNotConfigured = errors.New("fare history: no database configured")

// Open connects to Postgres when databaseURL is set, otherwise to the SQLite
// file at sqlitePath, and ensures the schema exists.
func Open(ctx context.Context, databaseURL, sqlitePath string) (*Store, error) {
	var (
		conn    *sql.DB
		dialect Dialect
		err     error
	)
	switch {
	case strings.TrimSpace(databaseURL) != "":
		conn, err = db.Open(databaseURL)
		dialect = Postgres
	case strings.TrimSpace(sqlitePath) != "":
		conn, err = db.OpenSQLite(sqlitePath)
		dialect = SQLite
	default:
		return nil, ErrNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("open fare history: %w", err)
	}

	if err := InitSchema(ctx, conn, dialect); err != nil {
		conn.Close()
		return nil, fmt.Errorf("open fare history: %w", err)
	}

	s := &Store{DB: conn, Dialect: dialect}
	if dialect == Postgres {
		s.FareHistory = NewSQLFareHistory(conn)
	} else {
		s.FareHistory = NewSqliteFareHistory(conn)
	}
	return s, nil
}
