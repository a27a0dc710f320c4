// Package main provides a profiling wrapper for the emulator and the clocked
// core to identify performance bottlenecks.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/pprof"
	"time"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/a32sim/emu"
	"github.com/sarchlab/a32sim/loader"
	"github.com/sarchlab/a32sim/timing/core"
	"github.com/sarchlab/a32sim/timing/latency"
)

var (
	timing      = flag.Bool("timing", false, "Enable clocked timing mode")
	cpuProfile  = flag.String("cpuprofile", "", "write cpu profile to file")
	memProfile  = flag.String("memprofile", "", "write memory profile to file")
	duration    = flag.Duration("duration", 30*time.Second, "max duration to run (for profiling)")
	instruction = flag.Uint64("max-instr", 1000000, "max instructions to execute (0 = unlimited)")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: profile [options] <program.bin>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		atexit.Exit(1)
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			slog.Error("failed to create CPU profile", "err", err)
			atexit.Exit(1)
		}

		if err := pprof.StartCPUProfile(f); err != nil {
			slog.Error("failed to start CPU profile", "err", err)
			atexit.Exit(1)
		}

		atexit.Register(func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		})
	}

	programPath := flag.Arg(0)

	prog, err := loader.Load(programPath)
	if err != nil {
		slog.Error("failed to load program", "err", err)
		atexit.Exit(1)
	}

	fmt.Printf("Loaded: %s\n", programPath)
	fmt.Printf("Entry point: 0x%X\n", prog.EntryPoint)

	start := time.Now()

	go func() {
		time.Sleep(*duration)
		fmt.Printf("\nTimeout reached after %v - stopping execution\n", *duration)
		atexit.Exit(2)
	}()

	emulator := emu.NewEmulator(emu.WithMaxInstructions(*instruction))
	if err := emulator.LoadWords(prog.EntryPoint, prog.Words); err != nil {
		slog.Error("failed to load program", "err", err)
		atexit.Exit(1)
	}

	if *timing {
		err = runTimingProfile(emulator)
	} else {
		err = emulator.Run()
	}

	elapsed := time.Since(start)
	instrCount := emulator.InstructionCount()

	if *memProfile != "" {
		writeHeapProfile(*memProfile)
	}

	fmt.Printf("\nProfiling Results:\n")
	if err != nil {
		fmt.Printf("Stopped: %v\n", err)
	}
	fmt.Printf("Instructions executed: %d\n", instrCount)
	fmt.Printf("Elapsed time: %v\n", elapsed)
	if instrCount > 0 {
		fmt.Printf("Instructions/second: %.0f\n", float64(instrCount)/elapsed.Seconds())
	}

	atexit.Exit(0)
}

// runTimingProfile runs the program on the clocked core.
func runTimingProfile(emulator *emu.Emulator) error {
	c := core.NewBuilder().
		WithTimingConfig(latency.DefaultTimingConfig()).
		WithEmulator(emulator).
		Build("Core")

	err := c.Run()
	fmt.Printf("Cycles: %d\n", c.Stats().Cycles)

	return err
}

func writeHeapProfile(path string) {
	f, err := os.Create(path)
	if err != nil {
		slog.Error("failed to create memory profile", "err", err)
		return
	}
	defer func() { _ = f.Close() }()

	if err := pprof.WriteHeapProfile(f); err != nil {
		slog.Error("failed to write memory profile", "err", err)
	}
}
