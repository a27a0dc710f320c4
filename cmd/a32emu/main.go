// Package main provides the a32emu emulator.
// It runs a flat program image and prints the final machine state.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/a32sim/emu"
	"github.com/sarchlab/a32sim/loader"
	"github.com/sarchlab/a32sim/timing/core"
	"github.com/sarchlab/a32sim/timing/latency"
)

var (
	timing     = flag.Bool("timing", false, "Enable clocked timing mode")
	configPath = flag.String("config", "", "Path to timing configuration JSON file")
	maxInsts   = flag.Uint64("max", 0, "Maximum instructions to execute (0 = no limit)")
	memSize    = flag.Uint("mem", emu.DefaultMemorySize, "Memory size in bytes")
	verbose    = flag.Bool("v", false, "Verbose output")
	trace      = flag.Bool("trace", false, "Log every retired instruction")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: a32emu [options] <program.bin>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		atexit.Exit(1)
	}

	setupLogging()

	memBytes, err := emu.MemorySize(uint64(*memSize))
	if err != nil {
		slog.Error("bad -mem value", "err", err)
		atexit.Exit(1)
	}

	programPath := flag.Arg(0)

	prog, err := loader.Load(programPath)
	if err != nil {
		slog.Error("failed to load program", "err", err)
		atexit.Exit(1)
	}

	slog.Debug("loaded", "path", programPath,
		"entry", fmt.Sprintf("0x%X", prog.EntryPoint), "words", len(prog.Words))

	emulator := newEmulator(memBytes)
	if err := emulator.LoadWords(prog.EntryPoint, prog.Words); err != nil {
		slog.Error("failed to load program", "err", err)
		atexit.Exit(1)
	}

	var timingConfig *latency.TimingConfig
	if *timing {
		timingConfig = loadTimingConfig()
	}

	atexit.Register(func() {
		_ = emu.DumpState(os.Stdout, emulator.RegFile(), emulator.Memory())
	})

	if *timing {
		err = runTiming(emulator, timingConfig)
	} else {
		err = emulator.Run()
	}

	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func newEmulator(memBytes uint32) *emu.Emulator {
	opts := []emu.EmulatorOption{
		emu.WithMaxInstructions(*maxInsts),
		emu.WithMemorySize(memBytes),
		emu.WithLogger(slog.Default()),
	}

	if *trace {
		opts = append(opts, emu.WithTracer(emu.NewLogTracer(slog.Default())))
	}

	return emu.NewEmulator(opts...)
}

func loadTimingConfig() *latency.TimingConfig {
	timingConfig := latency.DefaultTimingConfig()
	if *configPath != "" {
		var err error
		timingConfig, err = latency.LoadConfig(*configPath)
		if err != nil {
			slog.Error("failed to load timing config", "err", err)
			atexit.Exit(1)
		}
	}

	if err := timingConfig.Validate(); err != nil {
		slog.Error("invalid timing config", "err", err)
		atexit.Exit(1)
	}

	return timingConfig
}

// runTiming runs the program in clocked timing mode.
func runTiming(emulator *emu.Emulator, timingConfig *latency.TimingConfig) error {
	c := core.NewBuilder().
		WithTimingConfig(timingConfig).
		WithEmulator(emulator).
		WithLogger(slog.Default()).
		Build("Core")

	err := c.Run()

	stats := c.Stats()
	fmt.Printf("Cycles:       %d\n", stats.Cycles)
	fmt.Printf("Instructions: %d\n", stats.Instructions)
	fmt.Printf("Skipped:      %d\n", stats.Skipped)
	fmt.Printf("Stalls:       %d\n", stats.Stalls)
	fmt.Printf("CPI:          %.3f\n", stats.CPI())
	if icache := c.ICache(); icache != nil {
		fmt.Printf("I-Cache:      %d misses, %.1f%% hit rate\n",
			stats.ICacheMisses, 100*icache.Stats().HitRate())
	}
	fmt.Printf("Time:         %.3f us\n",
		float64(stats.Cycles)/timingConfig.ClockMHz)

	return err
}

func setupLogging() {
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	if *trace {
		level = emu.LevelTrace
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
