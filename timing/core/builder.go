package core

import (
	"log/slog"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/a32sim/emu"
	"github.com/sarchlab/a32sim/timing/cache"
	"github.com/sarchlab/a32sim/timing/latency"
)

// Builder can create new cores.
type Builder struct {
	engine   sim.Engine
	freq     sim.Freq
	table    *latency.Table
	icache   *cache.Config
	emulator *emu.Emulator
	logger   *slog.Logger
}

// NewBuilder creates a builder with a serial engine, the default latency
// table and its clock.
func NewBuilder() Builder {
	table := latency.NewTable()

	return Builder{
		table: table,
		freq:  sim.Freq(table.Config().ClockMHz) * sim.MHz,
	}
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the core.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithTimingConfig sets the latency table, the clock and the instruction
// cache from config.
func (b Builder) WithTimingConfig(config *latency.TimingConfig) Builder {
	b.table = latency.NewTableWithConfig(config)
	b.freq = sim.Freq(config.ClockMHz) * sim.MHz
	b.icache = nil
	if config.HasICache() {
		icache := config.ICacheConfig()
		b.icache = &icache
	}
	return b
}

// WithICache gives the core an instruction cache.
func (b Builder) WithICache(config cache.Config) Builder {
	b.icache = &config
	return b
}

// WithEmulator sets the functional emulator the core drives.
func (b Builder) WithEmulator(emulator *emu.Emulator) Builder {
	b.emulator = emulator
	return b
}

// WithLogger sets the logger.
func (b Builder) WithLogger(logger *slog.Logger) Builder {
	b.logger = logger
	return b
}

// Build creates a core.
func (b Builder) Build(name string) *Core {
	if b.engine == nil {
		b.engine = sim.NewSerialEngine()
	}

	if b.emulator == nil {
		b.emulator = emu.NewEmulator()
	}

	if b.logger == nil {
		b.logger = slog.Default()
	}

	c := &Core{
		emulator: b.emulator,
		table:    b.table,
		logger:   b.logger.With("core", name),
	}

	if b.icache != nil {
		c.icache = cache.New(*b.icache)
	}

	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)

	return c
}
