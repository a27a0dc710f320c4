// Package latency provides instruction timing for the clocked run mode.
//
// Latency values can be configured via TimingConfig.
package latency

import (
	"github.com/sarchlab/a32sim/insts"
)

// Table provides instruction latency lookups.
type Table struct {
	config *TimingConfig
}

// NewTable creates a new latency table with default timing values.
func NewTable() *Table {
	return &Table{
		config: DefaultTimingConfig(),
	}
}

// NewTableWithConfig creates a new latency table with custom timing configuration.
func NewTableWithConfig(config *TimingConfig) *Table {
	return &Table{
		config: config,
	}
}

// GetLatency returns the execution latency in cycles for the given instruction.
func (t *Table) GetLatency(inst *insts.Instruction) uint64 {
	if inst == nil || inst.Op == insts.OpUnknown {
		return 1
	}

	lat := t.config.ALULatency
	if t.IsShiftByRegister(inst) {
		lat += t.config.ShiftByRegisterPenalty
	}

	return lat
}

// GetSkippedLatency returns the latency of an instruction whose condition
// failed.
func (t *Table) GetSkippedLatency() uint64 {
	return t.config.SkippedLatency
}

// IsShiftByRegister returns true if operand 2 is shifted by a register.
func (t *Table) IsShiftByRegister(inst *insts.Instruction) bool {
	if inst == nil {
		return false
	}
	return inst.Operand2().Kind == insts.Operand2RegShiftReg
}

// Config returns the current timing configuration.
func (t *Table) Config() *TimingConfig {
	return t.config
}
