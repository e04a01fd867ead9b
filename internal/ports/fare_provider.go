package ports

import "context"

// Lowest one-way fare offered for a single origin/destination/date.
type Fare struct {
	Amount   float64
	Currency string
}

// Contract for the third-party fare-quote service.
// One access token is acquired per run and reused for every fare lookup.
type FareProvider interface {
	// Return a bearer token for subsequent fare lookups.
	AccessToken(ctx context.Context) (string, error)
	// Return the lowest one-way fare among the offers for the given route and date (YYYY-MM-DD).
	LowestOneWayFare(ctx context.Context, token, origin, destination, departureDate string) (Fare, error)
}
