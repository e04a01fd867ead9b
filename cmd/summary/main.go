package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"route-fare-planner/internal/config"
	"route-fare-planner/internal/dataset"
	"route-fare-planner/internal/report"
	"route-fare-planner/internal/services"
)

// summary writes the ranked markdown table to a file and echoes it to stdout.
func main() {
	config.LoadEnv()

	dataPath := flag.String("data", config.Get("DATA_PATH", "data/sample_options.json"), "route options dataset (JSON)")
	outPath := flag.String("out", "summary.md", "markdown output file")
	top := flag.Int("top", 0, "number of rows (0 = all plans)")
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

	n := *top
	if n == 0 {
		n = len(plans)
	}
	md := report.Markdown(services.RankPlansByName(plans, n))

	fmt.Println(md)
	if err := os.WriteFile(*outPath, []byte(md), 0o644); err != nil {
		log.Fatalf("write %s: %v", *outPath, err)
	}
}
