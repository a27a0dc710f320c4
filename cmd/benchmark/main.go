// Command benchmark runs the timing benchmark harness.
//
// Usage:
//
//	go run ./cmd/benchmark [flags]
//
// Flags:
//
//	-csv        Output results in CSV format (default: table)
//	-json       Output results in JSON format
//	-no-icache  Disable instruction cache simulation
//	-config     Path to timing configuration JSON file
//	-core       Run only the core benchmark set
//
// Example:
//
//	# Output CSV for spreadsheet comparison
//	go run ./cmd/benchmark -csv > results.csv
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/a32sim/benchmarks"
	"github.com/sarchlab/a32sim/timing/latency"
)

func main() {
	csvOutput := flag.Bool("csv", false, "Output results in CSV format")
	jsonOutput := flag.Bool("json", false, "Output results in JSON format")
	noICache := flag.Bool("no-icache", false, "Disable instruction cache simulation")
	configPath := flag.String("config", "", "Path to timing configuration JSON file")
	coreOnly := flag.Bool("core", false, "Run only the core benchmark set")
	flag.Parse()

	config := benchmarks.DefaultConfig()
	config.EnableICache = !*noICache
	config.Output = os.Stdout

	if *configPath != "" {
		timing, err := latency.LoadConfig(*configPath)
		if err != nil {
			slog.Error("failed to load timing config", "err", err)
			atexit.Exit(1)
		}
		config.Timing = timing
	}

	if err := config.Timing.Validate(); err != nil {
		slog.Error("invalid timing config", "err", err)
		atexit.Exit(1)
	}

	harness := benchmarks.NewHarness(config)
	if *coreOnly {
		harness.AddBenchmarks(benchmarks.GetCoreBenchmarks())
	} else {
		harness.AddBenchmarks(benchmarks.GetMicrobenchmarks())
	}

	results, err := harness.RunAll()
	if err != nil {
		slog.Error("benchmark failed", "err", err)
		atexit.Exit(1)
	}

	switch {
	case *jsonOutput:
		if err := harness.PrintJSON(results); err != nil {
			slog.Error("failed to write report", "err", err)
			atexit.Exit(1)
		}
	case *csvOutput:
		harness.PrintCSV(results)
	default:
		harness.PrintResults(results)
	}

	for _, r := range results {
		if !r.Valid {
			slog.Error("benchmark produced a wrong result", "name", r.Name, "r0", r.R0)
			atexit.Exit(1)
		}
	}

	atexit.Exit(0)
}
