package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"route-fare-planner/internal/dataset"
	"route-fare-planner/internal/domain"
	"route-fare-planner/internal/platform/obs"
	"route-fare-planner/internal/ports"
	"time"
)

// PriceUpdater refreshes flight prices in a dataset file.
// History and Publisher are optional sinks; their failures are logged, not returned.
type PriceUpdater struct {
	Provider  ports.FareProvider
	History   ports.FareHistory
	Publisher ports.FarePublisher
	Now       func() time.Time
}

type UpdatePricesRequest struct {
	DataPath string
	Queries  []domain.RouteQuery
	// Base for date offsets; zero means the updater's clock.
	Today  time.Time
	DryRun bool
	RunID  string
}

type UpdatePricesResult struct {
	Results []domain.PriceResult
	// Number of dataset fields overwritten.
	Patched int
	Dataset dataset.Dataset
	Records []ports.FareRecord
}

// UpdatePrices loads the dataset, fetches every configured fare, patches the
// dataset and, unless DryRun, writes it back and notifies the sinks.
// Nothing is written when any fetch fails.
func (u *PriceUpdater) UpdatePrices(ctx context.Context, req UpdatePricesRequest) (_ UpdatePricesResult, err error) {
	defer obs.Time(ctx, "fares.UpdatePrices")(&err)

	if u.Provider == nil {
		return UpdatePricesResult{}, errors.New("update prices: provider is nil")
	}

	now := time.Now
	if u.Now != nil {
		now = u.Now
	}
	today := req.Today
	if today.IsZero() {
		today = now()
	}

	// Load first so a bad data path fails before any network call.
	ds, err := dataset.Load(req.DataPath)
	if err != nil {
		return UpdatePricesResult{}, fmt.Errorf("update prices: %w", err)
	}

	results, err := FetchPrices(ctx, u.Provider, req.Queries, today)
	if err != nil {
		return UpdatePricesResult{}, fmt.Errorf("update prices: %w", err)
	}

	patched, err := dataset.ApplyPriceUpdates(ds, dataset.PriceIndex(results))
	if err != nil {
		return UpdatePricesResult{}, fmt.Errorf("update prices: %w", err)
	}

	out := UpdatePricesResult{
		Results: results,
		Patched: patched,
		Dataset: ds,
		Records: fareRecords(req.RunID, req.Queries, results, today, now()),
	}

	if req.DryRun {
		return out, nil
	}

	if err := dataset.Save(req.DataPath, ds); err != nil {
		return UpdatePricesResult{}, fmt.Errorf("update prices: %w", err)
	}

	u.notify(ctx, out.Records)
	return out, nil
}

func (u *PriceUpdater) notify(ctx context.Context, records []ports.FareRecord) {
	if u.History != nil {
		if err := u.History.RecordMany(ctx, records); err != nil {
			log.Printf("run_id=%s fare history write failed: %v", obs.RunID(ctx), err)
		}
	}

	if u.Publisher != nil {
		for _, r := range records {
			if err := u.Publisher.PublishFare(r); err != nil {
				log.Printf("run_id=%s fare publish failed key=%s: %v", obs.RunID(ctx), r.Key, err)
			}
		}
	}
}

// FetchPrices returns results in query order, so they pair up by index.
func fareRecords(
	runID string,
	queries []domain.RouteQuery,
	results []domain.PriceResult,
	today time.Time,
	fetchedAt time.Time,
) []ports.FareRecord {
	out := make([]ports.FareRecord, 0, len(results))
	for i, r := range results {
		rec := ports.FareRecord{
			RunID:     runID,
			Key:       r.Key,
			Amount:    domain.Round2(r.Amount),
			Currency:  r.Currency,
			FetchedAt: fetchedAt,
		}
		if i < len(queries) {
			q := queries[i]
			rec.Origin = q.Origin
			rec.Destination = q.Destination
			rec.DepartureDate = DepartureDate(q, today)
		}
		out = append(out, rec)
	}
	return out
}
