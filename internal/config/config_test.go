package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFareAPIRequiresCredentials(t *testing.T) {
	t.Setenv("AMADEUS_CLIENT_ID", "id")
	t.Setenv("AMADEUS_CLIENT_SECRET", "")

	if _, err := LoadFareAPI(); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("error = %v, want ErrMissingCredentials", err)
	}
}

func TestLoadFareAPIDefaults(t *testing.T) {
	t.Setenv("AMADEUS_CLIENT_ID", "id")
	t.Setenv("AMADEUS_CLIENT_SECRET", "secret")
	t.Setenv("AMADEUS_BASE_URL", "")
	t.Setenv("AMADEUS_TIMEOUT_SEC", "")

	cfg, err := LoadFareAPI()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != DefaultAmadeusBaseURL {
		t.Fatalf("base url = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 20*time.Second {
		t.Fatalf("timeout = %v, want 20s", cfg.Timeout)
	}
}

func TestLoadFareAPIOverrides(t *testing.T) {
	t.Setenv("AMADEUS_CLIENT_ID", "id")
	t.Setenv("AMADEUS_CLIENT_SECRET", "secret")
	t.Setenv("AMADEUS_BASE_URL", "http://localhost:9999/")
	t.Setenv("AMADEUS_TIMEOUT_SEC", "5")

	cfg, err := LoadFareAPI()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "http://localhost:9999" {
		t.Fatalf("base url = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("timeout = %v, want 5s", cfg.Timeout)
	}

	t.Setenv("AMADEUS_TIMEOUT_SEC", "soon")
	if _, err := LoadFareAPI(); err == nil {
		t.Fatal("expected error for invalid timeout")
	}
}

func TestGetFallback(t *testing.T) {
	t.Setenv("ROUTE_PLANNER_TEST_KEY", "  ")
	if got := Get("ROUTE_PLANNER_TEST_KEY", "fallback"); got != "fallback" {
		t.Fatalf("Get = %q, want fallback", got)
	}
	t.Setenv("ROUTE_PLANNER_TEST_KEY", "value")
	if got := Get("ROUTE_PLANNER_TEST_KEY", "fallback"); got != "value" {
		t.Fatalf("Get = %q, want value", got)
	}
}

func TestLoadRoutes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.json")
	body := `{"routes": [
		{"key": "hak_sha", "origin": "HAK", "destination": "SHA", "date_offset_days": 5},
		{"key": "hak_can_20260227", "origin": "HAK", "destination": "CAN", "departure_date": "2026-02-27"}
	]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	rf, err := LoadRoutes(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rf.Routes) != 2 {
		t.Fatalf("got %d routes, want 2", len(rf.Routes))
	}
	if rf.Routes[0].DateOffsetDays == nil || *rf.Routes[0].DateOffsetDays != 5 {
		t.Fatalf("offset = %v", rf.Routes[0].DateOffsetDays)
	}
	if rf.Routes[1].DepartureDate == nil || *rf.Routes[1].DepartureDate != "2026-02-27" {
		t.Fatalf("departure date = %v", rf.Routes[1].DepartureDate)
	}
}

func TestLoadRoutesMissingFile(t *testing.T) {
	if _, err := LoadRoutes(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
