// Package core provides the clocked CPU core model.
// It drives the functional emulator from an akita ticking component, one
// instruction at a time, and holds each instruction for its latency.
package core

import (
	"log/slog"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/a32sim/emu"
	"github.com/sarchlab/a32sim/timing/cache"
	"github.com/sarchlab/a32sim/timing/latency"
)

// Stats holds performance statistics for the core.
type Stats struct {
	// Cycles is the total number of cycles simulated.
	Cycles uint64
	// Instructions is the number of instructions retired.
	Instructions uint64
	// Stalls is the number of cycles spent waiting on multi-cycle latencies.
	Stalls uint64
	// Skipped is the number of retired instructions whose condition failed.
	Skipped uint64
	// ICacheMisses is the number of fetches that missed the instruction
	// cache. Always 0 when the core has no instruction cache.
	ICacheMisses uint64
}

// CPI returns cycles per instruction, or 0 before any instruction retires.
func (s Stats) CPI() float64 {
	if s.Instructions == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(s.Instructions)
}

// Core represents a clocked CPU core model.
type Core struct {
	*sim.TickingComponent

	emulator *emu.Emulator
	table    *latency.Table
	icache   *cache.Cache
	logger   *slog.Logger

	stall  uint64 // cycles left on the current instruction
	halted bool
	err    error
	stats  Stats
}

// Tick advances the core by one cycle. Fetching the halt word or hitting an
// emulation error stops the core without taking a cycle.
func (c *Core) Tick() (madeProgress bool) {
	if c.halted {
		return false
	}

	if c.stall > 0 {
		c.stats.Cycles++
		c.stall--
		c.stats.Stalls++
		return true
	}

	result := c.emulator.Step()

	switch {
	case result.Err != nil:
		c.err = result.Err
		c.halted = true
		c.logger.Error("core stopped", "cycle", c.stats.Cycles, "err", result.Err)
		return false
	case result.Exited:
		c.halted = true
		c.logger.Debug("core halted", "cycle", c.stats.Cycles)
		return false
	}

	c.stats.Cycles++
	c.stats.Instructions++

	lat := c.table.GetLatency(result.Inst)
	if !result.Executed {
		c.stats.Skipped++
		lat = c.table.GetSkippedLatency()
	}

	if c.icache != nil {
		fetch := c.icache.Fetch(result.PC)
		if !fetch.Hit {
			c.stats.ICacheMisses++
		}
		lat += fetch.Penalty
	}

	if lat > 0 {
		c.stall = lat - 1
	}

	return true
}

// Run ticks the core until the program halts and returns the emulation
// error, if any.
func (c *Core) Run() error {
	c.TickNow()

	if err := c.Engine.Run(); err != nil {
		return err
	}

	return c.err
}

// Halted returns true if the core has stopped.
func (c *Core) Halted() bool {
	return c.halted
}

// Err returns the error that stopped the core.
func (c *Core) Err() error {
	return c.err
}

// Stats returns performance statistics for the core.
func (c *Core) Stats() Stats {
	return c.stats
}

// ICache returns the instruction cache, or nil when the core has none.
func (c *Core) ICache() *cache.Cache {
	return c.icache
}

// Emulator returns the functional emulator the core drives.
func (c *Core) Emulator() *emu.Emulator {
	return c.emulator
}

// RunCycles ticks the core directly, without the engine, until it halts or
// cycles ticks have passed. Returns true if still running.
func (c *Core) RunCycles(cycles uint64) bool {
	for i := uint64(0); i < cycles && !c.halted; i++ {
		c.Tick()
	}
	return !c.halted
}

// Reset clears the core statistics and resets its emulator and instruction
// cache.
func (c *Core) Reset() {
	c.emulator.Reset()
	if c.icache != nil {
		c.icache.Reset()
	}
	c.stall = 0
	c.halted = false
	c.err = nil
	c.stats = Stats{}
}
