package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"route-fare-planner/internal/adapters/history"
	"route-fare-planner/internal/config"
	"text/tabwriter"
	"time"
)

// dbtool prepares the fare history database and prints the latest fare per key.
func main() {
	if !config.LoadEnv() {
		log.Println("No .env file found (using environment variables)")
	}

	initOnly := flag.Bool("init", false, "only create the schema")
	flag.Parse()

	sinks := config.LoadSinks()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Println("Initializing fare history schema...")
	store, err := history.Open(ctx, sinks.DatabaseURL, sinks.HistoryDBPath)
	if err != nil {
		log.Fatalf("schema initialization failed (set DATABASE_URL or FARE_HISTORY_DB): %v", err)
	}
	defer store.Close()
	log.Printf("Schema ready. dialect=%s", store.Dialect)

	if *initOnly {
		return
	}

	records, err := store.Latest(ctx)
	if err != nil {
		log.Fatal(err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tROUTE\tDATE\tAMOUNT\tFETCHED\tRUN")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s->%s\t%s\t%.2f %s\t%s\t%s\n",
			r.Key, r.Origin, r.Destination, r.DepartureDate, r.Amount, r.Currency,
			r.FetchedAt.Format(time.RFC3339), r.RunID)
	}
	if err := tw.Flush(); err != nil {
		log.Fatal(err)
	}
}
