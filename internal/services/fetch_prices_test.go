package services

import (
	"context"
	"errors"
	"route-fare-planner/internal/adapters/fares"
	"route-fare-planner/internal/config"
	"route-fare-planner/internal/domain"
	"testing"
	"time"
)

var testToday = time.Date(2026, 2, 24, 9, 30, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestResolveQueriesDefaults(t *testing.T) {
	routes := config.RoutesFile{Routes: []config.RouteEntry{
		{Key: "hak_sha", Origin: "HAK", Destination: "SHA"},
		{Key: "hak_can", Origin: "HAK", Destination: "CAN", DateOffsetDays: intPtr(5)},
		{Key: "zha_sha_20260227", Origin: "ZHA", Destination: "SHA", DepartureDate: strPtr("2026-02-27")},
	}}

	qs, err := ResolveQueries(routes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 3 {
		t.Fatalf("got %d queries, want 3", len(qs))
	}
	if qs[0].DateOffsetDays != DefaultDateOffsetDays || qs[0].DepartureDate != "" {
		t.Fatalf("query 0 = %+v", qs[0])
	}
	if qs[1].DateOffsetDays != 5 {
		t.Fatalf("query 1 offset = %d, want 5", qs[1].DateOffsetDays)
	}
	if qs[2].DepartureDate != "2026-02-27" {
		t.Fatalf("query 2 date = %q", qs[2].DepartureDate)
	}
}

func TestResolveQueriesRequiresFields(t *testing.T) {
	routes := config.RoutesFile{Routes: []config.RouteEntry{{Key: "k", Origin: "HAK"}}}
	if _, err := ResolveQueries(routes); err == nil {
		t.Fatal("expected error for missing destination")
	}
}

func TestDepartureDate(t *testing.T) {
	if got := DepartureDate(domain.RouteQuery{DateOffsetDays: 3}, testToday); got != "2026-02-27" {
		t.Fatalf("offset date = %q, want 2026-02-27", got)
	}
	if got := DepartureDate(domain.RouteQuery{DateOffsetDays: 5}, testToday); got != "2026-03-01" {
		t.Fatalf("offset date = %q, want 2026-03-01", got)
	}
	q := domain.RouteQuery{DepartureDate: "2026-04-01", DateOffsetDays: 3}
	if got := DepartureDate(q, testToday); got != "2026-04-01" {
		t.Fatalf("explicit date = %q", got)
	}
}

func TestFetchPricesInQueryOrder(t *testing.T) {
	provider := fares.NewMockFareProvider([]fares.MockQuote{
		{Origin: "HAK", Destination: "SHA", DepartureDate: "2026-02-27", Amount: 612.3, Currency: "CNY"},
		{Origin: "HAK", Destination: "CAN", DepartureDate: "2026-03-01", Amount: 300, Currency: "CNY"},
	})
	queries := []domain.RouteQuery{
		{Key: "k1", Origin: "HAK", Destination: "SHA", DateOffsetDays: 3},
		{Key: "k2", Origin: "HAK", Destination: "CAN", DateOffsetDays: 5},
	}

	got, err := FetchPrices(context.Background(), provider, queries, testToday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []domain.PriceResult{
		{Key: "k1", Amount: 612.3, Currency: "CNY"},
		{Key: "k2", Amount: 300, Currency: "CNY"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d results, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("result %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFetchPricesAbortsOnFirstFailure(t *testing.T) {
	provider := fares.NewMockFareProvider([]fares.MockQuote{
		{Origin: "HAK", Destination: "SHA", DepartureDate: "2026-02-27", Amount: 612.3, Currency: "CNY"},
		{Origin: "HAK", Destination: "NKG", DepartureDate: "2026-02-27", Amount: 500, Currency: "CNY"},
	})
	queries := []domain.RouteQuery{
		{Key: "k1", Origin: "HAK", Destination: "SHA", DateOffsetDays: 3},
		{Key: "k2", Origin: "HAK", Destination: "CAN", DateOffsetDays: 3},
		{Key: "k3", Origin: "HAK", Destination: "NKG", DateOffsetDays: 3},
	}

	got, err := FetchPrices(context.Background(), provider, queries, testToday)
	if got != nil {
		t.Fatalf("expected no results, got %+v", got)
	}
	var ne *fares.NoOfferError
	if !errors.As(err, &ne) || ne.Destination != "CAN" {
		t.Fatalf("error = %v, want NoOfferError for CAN", err)
	}
	if calls := provider.Calls(); len(calls) != 2 {
		t.Fatalf("expected 2 lookups before abort, got %v", calls)
	}
}

func TestFetchPricesTokenFailure(t *testing.T) {
	provider := fares.NewMockFareProvider(nil)
	provider.TokenErr = fares.ErrNoAccessToken

	_, err := FetchPrices(context.Background(), provider, []domain.RouteQuery{{Key: "k", Origin: "A", Destination: "B"}}, testToday)
	if !errors.Is(err, fares.ErrNoAccessToken) {
		t.Fatalf("error = %v, want ErrNoAccessToken", err)
	}
	if calls := provider.Calls(); len(calls) != 0 {
		t.Fatalf("expected no lookups, got %v", calls)
	}
}
