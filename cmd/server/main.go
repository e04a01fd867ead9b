package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"route-fare-planner/internal/adapters/history"
	"route-fare-planner/internal/api"
	"route-fare-planner/internal/config"
	"route-fare-planner/internal/platform/metrics"
	"strings"
	"syscall"
	"time"
)

// main is the composition root for the read-only HTTP API.
func main() {
	if !config.LoadEnv() {
		log.Println("No .env file found (using environment variables)")
	}

	dataPath := config.Get("DATA_PATH", "data/sample_options.json")
	port := config.Get("PORT", "8080")
	sinks := config.LoadSinks()

	if _, err := os.Stat(dataPath); err != nil {
		log.Fatalf("dataset %q: %v", dataPath, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := api.RouterConfig{
		DataPath: dataPath,
		Metrics:  metrics.NewCollector(),
	}
	if origins := config.Get("CORS_ORIGINS", ""); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}

	store, err := history.Open(ctx, sinks.DatabaseURL, sinks.HistoryDBPath)
	switch {
	case errors.Is(err, history.ErrNotConfigured):
		log.Println("fare history not configured; /fares/latest disabled")
	case err != nil:
		log.Fatal(err)
	default:
		defer store.Close()
		cfg.History = store
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           api.NewRouter(cfg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown failed: %v", err)
		}
	}()

	log.Printf("Server listening addr=:%s data=%s", port, dataPath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
