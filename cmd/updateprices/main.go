package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"route-fare-planner/internal/adapters/fares"
	"route-fare-planner/internal/adapters/history"
	"route-fare-planner/internal/adapters/publisher"
	"route-fare-planner/internal/config"
	"route-fare-planner/internal/platform/metrics"
	"route-fare-planner/internal/platform/obs"
	"route-fare-planner/internal/services"
	"syscall"
	"time"

	"github.com/google/uuid"
)

// updateprices fetches live fares and patches them into the dataset.
func main() {
	if !config.LoadEnv() {
		log.Println("No .env file found (using environment variables)")
	}

	configPath := flag.String("config", "data/routes_config.json", "fare query configuration (JSON)")
	dataPath := flag.String("data", "data/sample_options.json", "route options dataset to update (JSON)")
	dryRun := flag.Bool("dry-run", false, "print the updated dataset instead of writing it")
	flag.Parse()

	// Credentials are checked before anything touches the network.
	apiCfg, err := config.LoadFareAPI()
	if err != nil {
		log.Fatal(err)
	}
	sinks := config.LoadSinks()

	routes, err := config.LoadRoutes(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	queries, err := services.ResolveQueries(routes)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := uuid.NewString()
	ctx = obs.WithRunID(ctx, runID)

	m := metrics.NewCollector()

	client, err := fares.NewAmadeusClient(apiCfg.ClientID, apiCfg.ClientSecret, apiCfg.BaseURL, apiCfg.Timeout)
	if err != nil {
		log.Fatal(err)
	}

	updater := &services.PriceUpdater{
		Provider: metrics.InstrumentFareProvider(client, m),
	}

	if !*dryRun {
		store, err := history.Open(ctx, sinks.DatabaseURL, sinks.HistoryDBPath)
		switch {
		case errors.Is(err, history.ErrNotConfigured):
		case err != nil:
			log.Printf("run_id=%s fare history disabled: %v", runID, err)
		default:
			defer store.Close()
			updater.History = store
		}

		if sinks.NATSURL != "" {
			pub, err := publisher.NewNATSPublisher(sinks.NATSURL, m)
			if err != nil {
				log.Printf("run_id=%s fare publishing disabled: %v", runID, err)
			} else {
				defer pub.Close()
				updater.Publisher = pub
			}
		}
	}

	res, err := updater.UpdatePrices(ctx, services.UpdatePricesRequest{
		DataPath: *dataPath,
		Queries:  queries,
		DryRun:   *dryRun,
		RunID:    runID,
	})
	if err != nil {
		m.ObserveUpdate("error", 0, time.Now())
		writeMetrics(m, sinks.MetricsTextfile)
		log.Fatalf("run_id=%s %v", runID, err)
	}

	for _, r := range res.Results {
		m.ObserveFare(r.Key, r.Currency, r.Amount)
	}

	if *dryRun {
		m.ObserveUpdate("dry_run", res.Patched, time.Now())
		writeMetrics(m, sinks.MetricsTextfile)
		if err := res.Dataset.Encode(os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}

	m.ObserveUpdate("ok", res.Patched, time.Now())
	writeMetrics(m, sinks.MetricsTextfile)
	fmt.Printf("updated %s: %d live fares fetched, %d fields written\n", *dataPath, len(res.Results), res.Patched)
}

func writeMetrics(m *metrics.Collector, path string) {
	if path == "" {
		return
	}
	if err := m.WriteTextfile(path); err != nil {
		log.Printf("metrics textfile write failed: %v", err)
	}
}
