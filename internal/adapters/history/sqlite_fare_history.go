package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"route-fare-planner/internal/platform/obs"
	"route-fare-planner/internal/ports"
	"strings"
	"time"
)

// Fixed-width UTC layout so text comparison orders the same as time.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLite backed fare history. The default sink when no Postgres URL is set.
type SqliteFareHistory struct {
	DB *sql.DB
}

var _ ports.FareHistory = (*SqliteFareHistory)(nil)

func NewSqliteFareHistory(db *sql.DB) *SqliteFareHistory {
	return &SqliteFareHistory{DB: db}
}

func (s *SqliteFareHistory) RecordMany(ctx context.Context, records []ports.FareRecord) (err error) {
	defer obs.Time(ctx, "history.sqlite.RecordMany")(&err)

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
		run_id,
		price_key,
		origin,
		destination,
		departure_date,
		amount,
		currency,
		fetched_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
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
			r.RunID, r.Key, r.Origin, r.Destination, r.DepartureDate, r.Amount, r.Currency,
			r.FetchedAt.UTC().Format(sqliteTimeLayout),
		); err != nil {
			return fmt.Errorf("record fares key=%q: %w", r.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record fares commit: %w", err)
	}

	return nil
}

func (s *SqliteFareHistory) Latest(ctx context.Context) (_ []ports.FareRecord, err error) {
	defer obs.Time(ctx, "history.sqlite.Latest")(&err)

	if s.DB == nil {
		return nil, errors.New("fare history: db is nil")
	}

	// SQLite has no DISTINCT ON; pick the newest row id per key instead.
	q := `
	SELECT run_id, price_key, origin, destination, departure_date, amount, currency, fetched_at
	FROM fare_history AS f
	WHERE f.id = (
		SELECT g.id FROM fare_history AS g
		WHERE g.price_key = f.price_key
		ORDER BY g.fetched_at DESC, g.id DESC
		LIMIT 1
	)
	ORDER BY f.price_key;
	`

	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("latest fares: query fare_history table: %w", err)
	}
	defer rows.Close()

	var out []ports.FareRecord
	for rows.Next() {
		var r ports.FareRecord
		var fetchedAt string
		if err := rows.Scan(
			&r.RunID, &r.Key, &r.Origin, &r.Destination, &r.DepartureDate, &r.Amount, &r.Currency, &fetchedAt,
		); err != nil {
			return nil, fmt.Errorf("latest fares: scan rows: %w", err)
		}

		r.FetchedAt, err = time.Parse(sqliteTimeLayout, fetchedAt)
		if err != nil {
			return nil, fmt.Errorf("latest fares: parse fetched_at %q: %w", fetchedAt, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("latest fares: row iteration: %w", err)
	}

	return out, nil
}
