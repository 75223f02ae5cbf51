package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"attendance-mcp/cmd/mockgen/engine"
	"attendance-mcp/internal/history"
)

func main() {
	scenario := flag.String("scenario", engine.ScenarioSteady, "Scenario to generate: steady, flaky, drift")
	outDir := flag.String("out", "./.cache", "Output directory for mock files")
	count := flag.Int("count", 52, "Number of events to generate")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	format := flag.String("format", "jsonl", "Output format: jsonl, yaml")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario: *scenario,
		Count:    *count,
		Seed:     *seed,
	}

	path := filepath.Join(*outDir, fmt.Sprintf("history-%s.%s", cfg.Scenario, *format))
	fmt.Printf("Generating scenario '%s' (Count: %d) to %s...\n", cfg.Scenario, cfg.Count, path)

	outcomes, err := engine.Generate(cfg)
	if err != nil {
		fmt.Printf("Failed to generate mock data: %v\n", err)
		os.Exit(1)
	}

	if err := history.SaveFile(path, outcomes); err != nil {
		fmt.Printf("Failed to save mock data: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}
