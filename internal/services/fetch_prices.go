package services

import (
	"context"
	"errors"
	"fmt"
	"route-fare-planner/internal/config"
	"route-fare-planner/internal/domain"
	"route-fare-planner/internal/platform/obs"
	"route-fare-planner/internal/ports"
	"strings"
	"time"
)

// Offset applied when a route has neither a departure date nor an explicit offset.
const DefaultDateOffsetDays = 3

// ResolveQueries turns the routes file entries into fare queries, in file order.
func ResolveQueries(routes config.RoutesFile) ([]domain.RouteQuery, error) {
	queries := make([]domain.RouteQuery, 0, len(routes.Routes))
	for i, r := range routes.Routes {
		key := strings.TrimSpace(r.Key)
		origin := strings.TrimSpace(r.Origin)
		destination := strings.TrimSpace(r.Destination)
		if key == "" || origin == "" || destination == "" {
			return nil, fmt.Errorf("resolve queries: route #%d: key, origin and destination are required", i+1)
		}

		q := domain.RouteQuery{
			Key:            key,
			Origin:         origin,
			Destination:    destination,
			DateOffsetDays: DefaultDateOffsetDays,
		}
		if r.DepartureDate != nil {
			q.DepartureDate = strings.TrimSpace(*r.DepartureDate)
		}
		if r.DateOffsetDays != nil {
			q.DateOffsetDays = *r.DateOffsetDays
		}
		queries = append(queries, q)
	}
	return queries, nil
}

// DepartureDate returns the query's explicit date, or today plus its offset, as YYYY-MM-DD.
func DepartureDate(q domain.RouteQuery, today time.Time) string {
	if q.DepartureDate != "" {
		return q.DepartureDate
	}
	return today.AddDate(0, 0, q.DateOffsetDays).Format(time.DateOnly)
}

// FetchPrices acquires one access token and then looks up the lowest fare for
// each query in order. The first failure aborts the run and no results are returned.
func FetchPrices(
	ctx context.Context,
	provider ports.FareProvider,
	queries []domain.RouteQuery,
	today time.Time,
) (_ []domain.PriceResult, err error) {
	defer obs.Time(ctx, "fares.FetchPrices")(&err)

	if provider == nil {
		return nil, errors.New("fetch prices: provider is nil")
	}

	token, err := provider.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch prices: access token: %w", err)
	}

	results := make([]domain.PriceResult, 0, len(queries))
	for _, q := range queries {
		dep := DepartureDate(q, today)

		fare, err := provider.LowestOneWayFare(ctx, token, q.Origin, q.Destination, dep)
		if err != nil {
			return nil, fmt.Errorf("fetch prices: key=%q %s->%s %s: %w", q.Key, q.Origin, q.Destination, dep, err)
		}

		results = append(results, domain.PriceResult{
			Key:      q.Key,
			Amount:   fare.Amount,
			Currency: fare.Currency,
		})
	}

	return results, nil
}
