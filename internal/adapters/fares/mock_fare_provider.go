package fares

import (
	"context"
	"errors"
	"route-fare-planner/internal/ports"
	"sync"
)

type MockQuote struct {
	Origin, Destination, DepartureDate string
	Amount                             float64
	Currency                           string
}

// MockFareProvider serves fixed quotes keyed by origin, destination and date.
// It records every lookup it receives.
type MockFareProvider struct {
	Token    string
	TokenErr error

	mu     sync.Mutex
	quotes map[string]ports.Fare
	errs   map[string]error
	calls  []string
}

func NewMockFareProvider(quotes []MockQuote) *MockFareProvider {
	m := make(map[string]ports.Fare, len(quotes))
	for _, q := range quotes {
		m[mockKey(q.Origin, q.Destination, q.DepartureDate)] = ports.Fare{Amount: q.Amount, Currency: q.Currency}
	}
	return &MockFareProvider{Token: "mock-token", quotes: m, errs: map[string]error{}}
}

// FailOn makes the lookup for the given leg return err.
func (p *MockFareProvider) FailOn(origin, destination, departureDate string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errs[mockKey(origin, destination, departureDate)] = err
}

func (p *MockFareProvider) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}

func (p *MockFareProvider) AccessToken(ctx context.Context) (string, error) {
	if p.TokenErr != nil {
		return "", p.TokenErr
	}
	return p.Token, nil
}

func (p *MockFareProvider) LowestOneWayFare(ctx context.Context, token, origin, destination, departureDate string) (ports.Fare, error) {
	if token != p.Token {
		return ports.Fare{}, errors.New("mock: unexpected token")
	}

	key := mockKey(origin, destination, departureDate)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, key)

	if err, ok := p.errs[key]; ok {
		return ports.Fare{}, err
	}
	f, ok := p.quotes[key]
	if !ok {
		return ports.Fare{}, &NoOfferError{Origin: origin, Destination: destination, DepartureDate: departureDate}
	}
	return f, nil
}

func mockKey(origin, destination, date string) string {
	return origin + "|" + destination + "|" + date
}
