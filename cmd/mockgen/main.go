package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"efazi/cmd/mockgen/engine"
)

func main() {
	scenario := flag.String("scenario", "mild", "Scenario to generate: mild, chaos")
	outDir := flag.String("out", "./.cache", "Output directory for mock export files")
	count := flag.Int("count", 200, "Number of orders to generate")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario: *scenario,
		Count:    *count,
		Now:      time.Now(),
	}

	fmt.Printf("Generating scenario '%s' (Count: %d) to %s...\n", cfg.Scenario, cfg.Count, *outDir)

	if err := engine.Save(*outDir, engine.Generate(cfg)); err != nil {
		fmt.Printf("Failed to save mock exports: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}
