package main

import (
	"flag"
	"log"
	"os"
	"route-fare-planner/internal/config"
	"route-fare-planner/internal/dataset"
	"route-fare-planner/internal/report"
	"route-fare-planner/internal/services"
)

// planner prints the cheapest Haikou -> Suzhou itineraries in the dataset.
func main() {
	config.LoadEnv()

	dataPath := flag.String("data", config.Get("DATA_PATH", "data/sample_options.json"), "route options dataset (JSON)")
	top := flag.Int("top", 5, "number of plans to print")
	flag.Parse()

	if *top < 0 {
		log.Fatal("--top must be >= 0")
	}

	ds, err := dataset.Load(*dataPath)
	if err != nil {
		log.Fatal(err)
	}

	plans, err := services.BuildPlans(ds)
	if err != nil {
		log.Fatal(err)
	}

	if err := report.PrintPlans(os.Stdout, services.RankPlans(plans, *top)); err != nil {
		log.Fatal(err)
	}
}
