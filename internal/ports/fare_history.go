package ports

import (
	"context"
	"time"
)

// One fetched fare as recorded in the history store.
type FareRecord struct {
	RunID         string
	Key           string
	Origin        string
	Destination   string
	DepartureDate string
	Amount        float64
	Currency      string
	FetchedAt     time.Time
}

// Append-only log of fares fetched by update runs.
type FareHistory interface {
	// Store all records of one run atomically.
	RecordMany(ctx context.Context, records []FareRecord) error
	// Return the most recent record per price key, ordered by key.
	Latest(ctx context.Context) ([]FareRecord, error)
}
