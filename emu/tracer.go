package emu

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sarchlab/a32sim/insts"
)

// LevelTrace is the log level of per-instruction trace records. It is below
// slog.LevelDebug.
const LevelTrace slog.Level = slog.LevelDebug - 4

// TraceRecord describes one retired instruction.
type TraceRecord struct {
	PC       uint32
	Word     uint32
	Inst     *insts.Instruction
	Executed bool

	// Regs is a copy of the register file after the instruction.
	Regs RegFile
}

// Tracer observes instructions as the emulator retires them.
type Tracer interface {
	Trace(rec TraceRecord)
}

// LogTracer writes trace records to a logger at LevelTrace.
type LogTracer struct {
	logger *slog.Logger
}

// NewLogTracer creates a tracer that logs to logger.
func NewLogTracer(logger *slog.Logger) *LogTracer {
	return &LogTracer{logger: logger}
}

// Trace implements Tracer.
func (t *LogTracer) Trace(rec TraceRecord) {
	t.logger.Log(context.Background(), LevelTrace, "retire",
		"pc", fmt.Sprintf("0x%04X", rec.PC),
		"word", fmt.Sprintf("0x%08X", rec.Word),
		"op", rec.Inst.Op.String(),
		"cond", rec.Inst.Cond.String(),
		"executed", rec.Executed,
		"rd", rec.Inst.Rd,
		"value", fmt.Sprintf("0x%08X", rec.Regs.R[rec.Inst.Rd]),
		"flags", rec.Regs.FlagString(),
	)
}
