package publisher

import (
	"encoding/json"
	"fmt"
	"log"
	"route-fare-planner/internal/ports"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

const SubjectPrefix = "fares"

type PublisherMetrics interface {
	NATSPublishedInc()
	NATSPublishErrInc()
	PublishObserve(d time.Duration)
	NATSSetConnected(connected bool)
}

// NATSPublisher publishes each applied fare on fares.<price key>.
type NATSPublisher struct {
	nc      *nats.Conn
	metrics PublisherMetrics
}

var _ ports.FarePublisher = (*NATSPublisher)(nil)

func NewNATSPublisher(url string, m PublisherMetrics) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("route-fare-planner"),
		nats.Timeout(5*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			log.Printf("nats disconnected err=%v", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(true)
			}
			log.Printf("nats reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			log.Printf("nats closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect %q: %w", url, err)
	}
	if m != nil {
		m.NATSSetConnected(true)
	}
	return &NATSPublisher{nc: nc, metrics: m}, nil
}

// Close flushes pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	if p.nc != nil {
		if err := p.nc.Drain(); err != nil {
			log.Printf("nats drain failed: %v", err)
		}
		p.nc.Close()
	}
}

type FareMessage struct {
	RunID         string    `json:"runId"`
	Key           string    `json:"key"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	DepartureDate string    `json:"departureDate"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	FetchedAt     time.Time `json:"fetchedAt"`
}

func NewFareMessage(r ports.FareRecord) FareMessage {
	return FareMessage{
		RunID:         r.RunID,
		Key:           r.Key,
		Origin:        r.Origin,
		Destination:   r.Destination,
		DepartureDate: r.DepartureDate,
		Amount:        r.Amount,
		Currency:      r.Currency,
		FetchedAt:     r.FetchedAt.UTC(),
	}
}

func (p *NATSPublisher) PublishFare(r ports.FareRecord) error {
	subject := Subject(r.Key)
	b, err := json.Marshal(NewFareMessage(r))
	if err != nil {
		return fmt.Errorf("publish fare key=%q: marshal: %w", r.Key, err)
	}

	start := time.Now()
	err = p.nc.Publish(subject, b)
	if p.metrics != nil {
		p.metrics.PublishObserve(time.Since(start))
		if err != nil {
			p.metrics.NATSPublishErrInc()
		} else {
			p.metrics.NATSPublishedInc()
		}
	}
	if err != nil {
		return fmt.Errorf("publish fare subject=%s: %w", subject, err)
	}
	return nil
}

// Subject returns the NATS subject for a price key.
func Subject(key string) string {
	return SubjectPrefix + "." + subjectToken(key)
}

func subjectToken(s string) string {
	s = strings.TrimSpace(s)
	// NATS token cannot contain spaces, '>', '*', or '.'
	repl := strings.NewReplacer(" ", "_", ".", "_", ">", "_", "*", "_", "/", "_", "\t", "_")
	s = repl.Replace(s)
	if s == "" {
		s = "_"
	}
	return s
}
