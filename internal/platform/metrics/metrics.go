package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	FareLookups    *prometheus.CounterVec // result label: ok|error
	FareLookupTime prometheus.Histogram
	TokenRequests  *prometheus.CounterVec // result label: ok|error
	FieldsPatched  prometheus.Counter
	UpdateRuns     *prometheus.CounterVec // outcome label: ok|error|dry_run
	LastUpdateTime prometheus.Gauge
	LastFareAmount *prometheus.GaugeVec // key, currency labels

	NATSPublished   prometheus.Counter
	NATSPublishErrs prometheus.Counter
	NATSConnected   prometheus.Gauge
	PublishDuration prometheus.Histogram

	PlansServed prometheus.Counter
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		FareLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fares_lookups_total",
			Help: "Lowest-fare lookups against the fare-quote service.",
		}, []string{"result"}),
		FareLookupTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fares_lookup_duration_seconds",
			Help:    "Duration of one lowest-fare lookup.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		TokenRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fares_token_requests_total",
			Help: "Access token requests against the fare-quote service.",
		}, []string{"result"}),
		FieldsPatched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fares_dataset_fields_patched_total",
			Help: "Cost fields overwritten in the dataset.",
		}),
		UpdateRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fares_update_runs_total",
			Help: "Price update runs by outcome.",
		}, []string{"outcome"}),
		LastUpdateTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fares_last_update_timestamp_seconds",
			Help: "Unix time of the last successful price update.",
		}),
		LastFareAmount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fares_last_amount",
			Help: "Most recently fetched fare per price key.",
		}, []string{"key", "currency"}),
		NATSPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fares_nats_published_total",
			Help: "Total NATS fare messages published.",
		}),
		NATSPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fares_nats_publish_errors_total",
			Help: "Total NATS publish errors.",
		}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fares_nats_connected",
			Help: "1 if NATS connection is established, 0 otherwise.",
		}),
		PublishDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fares_publish_duration_seconds",
			Help:    "Duration to marshal and publish a NATS message.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 15),
		}),
		PlansServed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_plans_served_total",
			Help: "Ranked plan lists served over HTTP.",
		}),
	}

	reg.MustRegister(
		c.FareLookups, c.FareLookupTime, c.TokenRequests,
		c.FieldsPatched, c.UpdateRuns, c.LastUpdateTime, c.LastFareAmount,
		c.NATSPublished, c.NATSPublishErrs, c.NATSConnected, c.PublishDuration,
		c.PlansServed,
	)

	return c
}

func (c *Collector) Registry() *prometheus.Registry { return c.reg }

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// WriteTextfile dumps the registry in text exposition format, for the
// node_exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.reg); err != nil {
		return fmt.Errorf("write metrics textfile %q: %w", path, err)
	}
	return nil
}

// Satisfy publisher.PublisherMetrics.
func (c *Collector) NATSPublishedInc()              { c.NATSPublished.Inc() }
func (c *Collector) NATSPublishErrInc()             { c.NATSPublishErrs.Inc() }
func (c *Collector) PublishObserve(d time.Duration) { c.PublishDuration.Observe(d.Seconds()) }
func (c *Collector) NATSSetConnected(connected bool) {
	if connected {
		c.NATSConnected.Set(1)
	} else {
		c.NATSConnected.Set(0)
	}
}

func (c *Collector) ObserveUpdate(outcome string, patched int, at time.Time) {
	c.UpdateRuns.WithLabelValues(outcome).Inc()
	c.FieldsPatched.Add(float64(patched))
	if outcome == "ok" {
		c.LastUpdateTime.Set(float64(at.Unix()))
	}
}

func (c *Collector) ObserveFare(key, currency string, amount float64) {
	c.LastFareAmount.WithLabelValues(key, currency).Set(amount)
}
