package metrics

import (
	"context"
	"route-fare-planner/internal/ports"
	"time"
)

// instrumentedProvider counts and times calls to the wrapped provider.
type instrumentedProvider struct {
	next ports.FareProvider
	c    *Collector
}

func InstrumentFareProvider(next ports.FareProvider, c *Collector) ports.FareProvider {
	if c == nil {
		return next
	}
	return &instrumentedProvider{next: next, c: c}
}

func (p *instrumentedProvider) AccessToken(ctx context.Context) (string, error) {
	tok, err := p.next.AccessToken(ctx)
	p.c.TokenRequests.WithLabelValues(result(err)).Inc()
	return tok, err
}

func (p *instrumentedProvider) LowestOneWayFare(ctx context.Context, token, origin, destination, departureDate string) (ports.Fare, error) {
	start := time.Now()
	fare, err := p.next.LowestOneWayFare(ctx, token, origin, destination, departureDate)
	p.c.FareLookupTime.Observe(time.Since(start).Seconds())
	p.c.FareLookups.WithLabelValues(result(err)).Inc()
	return fare, err
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
