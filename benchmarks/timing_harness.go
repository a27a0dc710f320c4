// Package benchmarks provides timing benchmark infrastructure for calibrating
// the clocked core against data-processing workloads.
package benchmarks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/a32sim/asm"
	"github.com/sarchlab/a32sim/emu"
	"github.com/sarchlab/a32sim/timing/core"
	"github.com/sarchlab/a32sim/timing/latency"
)

// BenchmarkResult holds the timing results for a single benchmark run.
type BenchmarkResult struct {
	// Name identifies the benchmark
	Name string `json:"name"`

	// Description explains what the benchmark measures
	Description string `json:"description"`

	// SimulatedCycles is the total cycle count from the timing simulator
	SimulatedCycles uint64 `json:"simulated_cycles"`

	// InstructionsRetired is the number of completed instructions
	InstructionsRetired uint64 `json:"instructions_retired"`

	// CPI is cycles per instruction
	CPI float64 `json:"cpi"`

	// StallCycles is the number of stall cycles
	StallCycles uint64 `json:"stall_cycles"`

	// SkippedInstructions is the number of instructions whose condition failed
	SkippedInstructions uint64 `json:"skipped_instructions"`

	// ICacheHits/Misses (if cache enabled)
	ICacheHits   uint64 `json:"icache_hits,omitempty"`
	ICacheMisses uint64 `json:"icache_misses,omitempty"`

	// R0 is the final value of r0
	R0 uint32 `json:"r0"`

	// Valid is true if R0 matched the expected value
	Valid bool `json:"valid"`

	// WallTime is the actual time taken to run the simulation
	WallTime time.Duration `json:"wall_time_ns"`
}

// Benchmark defines a single benchmark program.
type Benchmark struct {
	// Name identifies the benchmark
	Name string

	// Description explains what the benchmark measures
	Description string

	// Source is the assembly program. It must end with the halt word.
	Source string

	// Setup prepares the register file before the run
	Setup func(regFile *emu.RegFile)

	// ExpectedR0 is the expected final r0 (for validation)
	ExpectedR0 uint32
}

// DefaultICacheSize is the instruction cache size used when EnableICache is
// set but Timing leaves the cache disabled.
const DefaultICacheSize = 4 * 1024

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// Timing holds the latencies and clock of the core. The instruction
	// cache settings in Timing apply only when EnableICache is set.
	// NewHarness works on a copy.
	Timing *latency.TimingConfig

	// EnableICache enables instruction cache simulation
	EnableICache bool

	// Output is where to write results (default: os.Stdout)
	Output io.Writer
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		Timing:       latency.DefaultTimingConfig(),
		EnableICache: true,
		Output:       os.Stdout,
	}
}

// Harness runs timing benchmarks and reports results.
type Harness struct {
	config     HarnessConfig
	assembler  *asm.Assembler
	benchmarks []Benchmark
}

// NewHarness creates a new benchmark harness. The harness keeps the
// effective timing config: the icache size is 0 when EnableICache is clear,
// and DefaultICacheSize when EnableICache is set but the config has no cache.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	if config.Timing == nil {
		config.Timing = latency.DefaultTimingConfig()
	}

	config.Timing = config.Timing.Clone()
	if !config.EnableICache {
		config.Timing.ICacheSize = 0
	} else if !config.Timing.HasICache() {
		config.Timing.ICacheSize = DefaultICacheSize
	}

	return &Harness{
		config:     config,
		assembler:  asm.NewAssembler(),
		benchmarks: []Benchmark{},
	}
}

// AddBenchmark adds a benchmark to the harness.
func (h *Harness) AddBenchmark(b Benchmark) {
	h.benchmarks = append(h.benchmarks, b)
}

// AddBenchmarks adds multiple benchmarks to the harness.
func (h *Harness) AddBenchmarks(benchmarks []Benchmark) {
	h.benchmarks = append(h.benchmarks, benchmarks...)
}

// RunAll executes all benchmarks and returns results. It stops at the first
// benchmark that fails to assemble or run.
func (h *Harness) RunAll() ([]BenchmarkResult, error) {
	results := make([]BenchmarkResult, 0, len(h.benchmarks))

	for _, bench := range h.benchmarks {
		result, err := h.runBenchmark(bench)
		if err != nil {
			return results, fmt.Errorf("benchmark %s: %w", bench.Name, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// runBenchmark executes a single benchmark.
func (h *Harness) runBenchmark(bench Benchmark) (BenchmarkResult, error) {
	words, err := h.assembler.Assemble(strings.NewReader(bench.Source))
	if err != nil {
		return BenchmarkResult{}, err
	}

	// Create fresh state
	emulator := emu.NewEmulator()
	if err := emulator.LoadWords(0, words); err != nil {
		return BenchmarkResult{}, err
	}

	if bench.Setup != nil {
		bench.Setup(emulator.RegFile())
	}

	c := core.NewBuilder().
		WithTimingConfig(h.config.Timing).
		WithEmulator(emulator).
		Build("Core")

	// Run simulation and measure time
	start := time.Now()
	if err := c.Run(); err != nil {
		return BenchmarkResult{}, err
	}
	wallTime := time.Since(start)

	// Collect statistics
	stats := c.Stats()
	r0 := emulator.RegFile().ReadReg(0)
	result := BenchmarkResult{
		Name:                bench.Name,
		Description:         bench.Description,
		SimulatedCycles:     stats.Cycles,
		InstructionsRetired: stats.Instructions,
		CPI:                 stats.CPI(),
		StallCycles:         stats.Stalls,
		SkippedInstructions: stats.Skipped,
		R0:                  r0,
		Valid:               r0 == bench.ExpectedR0,
		WallTime:            wallTime,
	}

	if icache := c.ICache(); icache != nil {
		icStats := icache.Stats()
		result.ICacheHits = icStats.Hits
		result.ICacheMisses = icStats.Misses
	}

	return result, nil
}

// PrintResults outputs benchmark results as a table.
func (h *Harness) PrintResults(results []BenchmarkResult) {
	t := table.NewWriter()
	t.SetOutputMirror(h.config.Output)
	t.SetTitle("Timing Benchmark Results")
	t.AppendHeader(table.Row{
		"Benchmark", "Cycles", "Insts", "CPI", "Stalls", "Skipped",
		"I$ Hits", "I$ Misses", "r0", "Valid",
	})

	for _, r := range results {
		t.AppendRow(table.Row{
			r.Name,
			r.SimulatedCycles,
			r.InstructionsRetired,
			fmt.Sprintf("%.3f", r.CPI),
			r.StallCycles,
			r.SkippedInstructions,
			r.ICacheHits,
			r.ICacheMisses,
			r.R0,
			r.Valid,
		})
	}

	t.Render()
}

// PrintCSV outputs benchmark results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output,
		"name,cycles,instructions,cpi,stalls,skipped,icache_hits,icache_misses,r0,valid")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%d,%d,%.3f,%d,%d,%d,%d,%d,%t\n",
			r.Name,
			r.SimulatedCycles,
			r.InstructionsRetired,
			r.CPI,
			r.StallCycles,
			r.SkippedInstructions,
			r.ICacheHits,
			r.ICacheMisses,
			r.R0,
			r.Valid,
		)
	}
}

// BenchmarkReport is the complete output format for benchmark results.
type BenchmarkReport struct {
	// Metadata about the benchmark run
	Metadata ReportMetadata `json:"metadata"`

	// Results is the list of individual benchmark results
	Results []BenchmarkResult `json:"results"`

	// Summary contains aggregate statistics
	Summary ReportSummary `json:"summary"`
}

// ReportMetadata contains information about the benchmark run.
type ReportMetadata struct {
	// Timestamp when the benchmark was run
	Timestamp string `json:"timestamp"`

	// Timing is the timing configuration used
	Timing latency.TimingConfig `json:"timing"`

	// ICacheEnabled reports whether the instruction cache was simulated
	ICacheEnabled bool `json:"icache_enabled"`
}

// ReportSummary contains aggregate statistics across all benchmarks.
type ReportSummary struct {
	// TotalBenchmarks is the number of benchmarks run
	TotalBenchmarks int `json:"total_benchmarks"`

	// TotalCycles is the sum of all simulated cycles
	TotalCycles uint64 `json:"total_cycles"`

	// TotalInstructions is the sum of all instructions retired
	TotalInstructions uint64 `json:"total_instructions"`

	// AverageCPI is the average cycles per instruction
	AverageCPI float64 `json:"average_cpi"`

	// TotalWallTime is the total wall clock time for all benchmarks
	TotalWallTime time.Duration `json:"total_wall_time_ns"`
}

// Summarize computes aggregate statistics over results.
func Summarize(results []BenchmarkResult) ReportSummary {
	summary := ReportSummary{TotalBenchmarks: len(results)}
	for _, r := range results {
		summary.TotalCycles += r.SimulatedCycles
		summary.TotalInstructions += r.InstructionsRetired
		summary.TotalWallTime += r.WallTime
	}

	if summary.TotalInstructions > 0 {
		summary.AverageCPI = float64(summary.TotalCycles) /
			float64(summary.TotalInstructions)
	}

	return summary
}

// PrintJSON outputs benchmark results in JSON format for automated comparison.
func (h *Harness) PrintJSON(results []BenchmarkResult) error {
	report := BenchmarkReport{
		Metadata: ReportMetadata{
			Timestamp:     time.Now().UTC().Format(time.RFC3339),
			Timing:        *h.config.Timing,
			ICacheEnabled: h.config.EnableICache,
		},
		Results: results,
		Summary: Summarize(results),
	}

	encoder := json.NewEncoder(h.config.Output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
