package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultAmadeusBaseURL = "https://test.api.amadeus.com"

// LoadEnv reads a .env file into the process environment when one exists.
// Variables already set in the environment win.
func LoadEnv() bool {
	return godotenv.Load() == nil
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Credentials for the fare-quote service.
type FareAPI struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	Timeout      time.Duration
}

var ErrMissingCredentials = errors.New("AMADEUS_CLIENT_ID and AMADEUS_CLIENT_SECRET are required")

// LoadFareAPI reads the fare service settings. Missing credentials are an error
// so callers can stop before any network call.
func LoadFareAPI() (FareAPI, error) {
	cfg := FareAPI{
		ClientID:     strings.TrimSpace(os.Getenv("AMADEUS_CLIENT_ID")),
		ClientSecret: strings.TrimSpace(os.Getenv("AMADEUS_CLIENT_SECRET")),
		BaseURL:      strings.TrimRight(Get("AMADEUS_BASE_URL", DefaultAmadeusBaseURL), "/"),
		Timeout:      20 * time.Second,
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return FareAPI{}, ErrMissingCredentials
	}

	if v := os.Getenv("AMADEUS_TIMEOUT_SEC"); v != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v) + "s")
		if err != nil || d <= 0 {
			return FareAPI{}, fmt.Errorf("invalid AMADEUS_TIMEOUT_SEC: %q", v)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}

// Optional sinks for an update run. Empty values disable the sink.
type Sinks struct {
	// Postgres DSN; takes precedence over HistoryDBPath.
	DatabaseURL     string
	HistoryDBPath   string
	NATSURL         string
	MetricsTextfile string
}

func LoadSinks() Sinks {
	return Sinks{
		DatabaseURL:     Get("DATABASE_URL", ""),
		HistoryDBPath:   Get("FARE_HISTORY_DB", ""),
		NATSURL:         Get("NATS_URL", ""),
		MetricsTextfile: Get("METRICS_TEXTFILE", ""),
	}
}
