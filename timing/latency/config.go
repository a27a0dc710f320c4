package latency

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sarchlab/a32sim/timing/cache"
)

// TimingConfig holds latency values for the clocked run mode.
type TimingConfig struct {
	// ALULatency is the execution latency of a data-processing instruction
	// whose operand 2 is an immediate or an immediate-shifted register.
	// Default: 1 cycle.
	ALULatency uint64 `json:"alu_latency"`

	// ShiftByRegisterPenalty is the extra cycles taken when the shift
	// amount comes from a register (Rm, <shift> Rs). Default: 1 cycle.
	ShiftByRegisterPenalty uint64 `json:"shift_by_register_penalty"`

	// SkippedLatency is the latency of an instruction whose condition
	// fails. Default: 1 cycle.
	SkippedLatency uint64 `json:"skipped_latency"`

	// ClockMHz is the core clock frequency. Default: 100 MHz.
	ClockMHz float64 `json:"clock_mhz"`

	// ICacheSize is the instruction cache size in bytes. Zero disables the
	// instruction cache. Default: 0.
	ICacheSize int `json:"icache_size"`

	// ICacheAssociativity is the number of ways. Default: 2.
	ICacheAssociativity int `json:"icache_associativity"`

	// ICacheBlockSize is the line size in bytes. Default: 32.
	ICacheBlockSize int `json:"icache_block_size"`

	// ICacheMissPenalty is the extra cycles taken by a fetch that misses.
	// Default: 10 cycles.
	ICacheMissPenalty uint64 `json:"icache_miss_penalty"`
}

// DefaultTimingConfig returns a TimingConfig with default values.
func DefaultTimingConfig() *TimingConfig {
	return &TimingConfig{
		ALULatency:             1,
		ShiftByRegisterPenalty: 1,
		SkippedLatency:         1,
		ClockMHz:               100,
		ICacheAssociativity:    2,
		ICacheBlockSize:        32,
		ICacheMissPenalty:      10,
	}
}

// HasICache reports whether the config enables the instruction cache.
func (c *TimingConfig) HasICache() bool {
	return c.ICacheSize > 0
}

// ICacheConfig returns the instruction cache geometry.
func (c *TimingConfig) ICacheConfig() cache.Config {
	return cache.Config{
		Size:          c.ICacheSize,
		Associativity: c.ICacheAssociativity,
		BlockSize:     c.ICacheBlockSize,
		MissPenalty:   c.ICacheMissPenalty,
	}
}

// LoadConfig loads a TimingConfig from a JSON file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*TimingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timing config file: %w", err)
	}

	config := DefaultTimingConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse timing config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a TimingConfig to a JSON file.
func (c *TimingConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize timing config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timing config file: %w", err)
	}

	return nil
}

// Validate checks that all latency values are valid (> 0) and that an
// enabled instruction cache has a usable geometry.
func (c *TimingConfig) Validate() error {
	if c.ALULatency == 0 {
		return fmt.Errorf("alu_latency must be > 0")
	}
	if c.SkippedLatency == 0 {
		return fmt.Errorf("skipped_latency must be > 0")
	}
	if c.ClockMHz <= 0 {
		return fmt.Errorf("clock_mhz must be > 0")
	}
	if c.ICacheSize < 0 {
		return fmt.Errorf("icache_size must be >= 0")
	}
	if c.HasICache() {
		if err := c.ICacheConfig().Validate(); err != nil {
			return fmt.Errorf("invalid icache: %w", err)
		}
	}
	return nil
}

// Clone returns a deep copy of the TimingConfig.
func (c *TimingConfig) Clone() *TimingConfig {
	clone := *c
	return &clone
}
