package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"route-fare-planner/internal/platform/obs"
	"route-fare-planner/internal/ports"
	"strings"
)

// SQLFareHistory stores fetched fares in Postgres.
type SQLFareHistory struct {
	DB *sql.DB
}

var _ ports.FareHistory = (*SQLFareHistory)(nil)

func NewSQLFareHistory(db *sql.DB) *SQLFareHistory {
	return &SQLFareHistory{DB: db}
}

func (s *SQLFareHistory) RecordMany(ctx context.Context, records []ports.FareRecord) (err error) {
	defer obs.Time(ctx, "history.RecordMany")(&err)

	if s.DB == nil {
		return errors.New("fare history: db is nil")
	}

	if len(records) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record fares: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO fare_history (
		run_id, price_key, origin, destination, departure_date, amount, currency, fetched_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`)
	if err != nil {
		return fmt.Errorf("record fares: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if strings.TrimSpace(r.Key) == "" {
			return errors.New("record fares: empty price key")
		}

		if _, err := stmt.ExecContext(ctx,
			r.RunID, r.Key, r.Origin, r.Destination, r.DepartureDate, r.Amount, r.Currency, r.FetchedAt.UTC(),
		); err != nil {
			return fmt.Errorf("record fares key=%q: %w", r.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record fares commit: %w", err)
	}

	return nil
}

func (s *SQLFareHistory) Latest(ctx context.Context) (_ []ports.FareRecord, err error) {
	defer obs.Time(ctx, "history.Latest")(&err)

	if s.DB == nil {
		return nil, errors.New("fare history: db is nil")
	}

	q := `
	SELECT DISTINCT ON (price_key)
		run_id, price_key, origin, destination, departure_date, amount::float8, currency, fetched_at
	FROM fare_history
	ORDER BY price_key, fetched_at DESC, id DESC;
	`

	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("latest fares: query fare_history table: %w", err)
	}
	defer rows.Close()

	var out []ports.FareRecord
	for rows.Next() {
		var r ports.FareRecord
		if err := rows.Scan(
			&r.RunID, &r.Key, &r.Origin, &r.Destination, &r.DepartureDate, &r.Amount, &r.Currency, &r.FetchedAt,
		); err != nil {
			return nil, fmt.Errorf("latest fares: scan rows: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("latest fares: row iteration: %w", err)
	}

	return out, nil
}
