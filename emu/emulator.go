package emu

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sarchlab/a32sim/insts"
)

// Emulation errors.
var (
	// ErrMaxInstructions is returned when the instruction limit is reached.
	ErrMaxInstructions = errors.New("max instructions reached")
	// ErrUnknownInstruction is returned for words outside the
	// data-processing family.
	ErrUnknownInstruction = errors.New("unknown instruction")
	// ErrPCOutOfRange is returned when the PC is unaligned or outside memory.
	ErrPCOutOfRange = errors.New("PC out of range")
)

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Exited is true if the fetched word was the all-zero halt word.
	Exited bool

	// PC is the address of the fetched instruction.
	PC uint32

	// Inst is the decoded instruction. It is nil when Exited or Err is set.
	Inst *insts.Instruction

	// Executed is false when the condition code failed and the instruction
	// was skipped.
	Executed bool

	// Err is set if an error occurred during execution.
	Err error
}

// Emulator executes A32 data-processing instructions functionally.
type Emulator struct {
	regFile *RegFile
	memory  *Memory
	decoder *insts.Decoder
	alu     *ALU

	logger *slog.Logger
	tracer Tracer

	// Execution state
	memorySize       uint32
	instructionCount uint64
	maxInstructions  uint64 // 0 means no limit
	halted           bool
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithMaxInstructions sets the maximum number of instructions to execute.
// A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// WithMemorySize sets the memory size in bytes.
func WithMemorySize(size uint32) EmulatorOption {
	return func(e *Emulator) {
		e.memorySize = size
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) EmulatorOption {
	return func(e *Emulator) {
		e.logger = logger
	}
}

// WithTracer sets a tracer that observes every retired instruction.
func WithTracer(tracer Tracer) EmulatorOption {
	return func(e *Emulator) {
		e.tracer = tracer
	}
}

// NewEmulator creates a new A32 emulator.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		decoder:    insts.NewDecoder(),
		logger:     slog.Default(),
		memorySize: DefaultMemorySize,
	}

	// Apply options first (may set the memory size)
	for _, opt := range opts {
		opt(e)
	}

	e.Reset()

	return e
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's memory.
func (e *Emulator) Memory() *Memory {
	return e.memory
}

// InstructionCount returns the number of instructions executed, including
// those skipped by their condition code.
func (e *Emulator) InstructionCount() uint64 {
	return e.instructionCount
}

// Halted reports whether the halt word has been fetched.
func (e *Emulator) Halted() bool {
	return e.halted
}

// LoadProgram loads a program into memory and sets the entry point.
func (e *Emulator) LoadProgram(entry uint32, program []byte) error {
	if err := e.memory.LoadProgram(entry, program); err != nil {
		return fmt.Errorf("failed to load program: %w", err)
	}

	e.regFile.SetPC(entry)

	return nil
}

// LoadWords loads assembled words into memory and sets the entry point.
func (e *Emulator) LoadWords(entry uint32, words []uint32) error {
	if err := e.memory.LoadWords(entry, words); err != nil {
		return fmt.Errorf("failed to load program: %w", err)
	}

	e.regFile.SetPC(entry)

	return nil
}

// Reset resets the emulator to its initial state.
func (e *Emulator) Reset() {
	e.regFile = &RegFile{}
	e.memory = NewMemory(e.memorySize)
	e.alu = NewALU(e.regFile)
	e.instructionCount = 0
	e.halted = false
}

// Step fetches, decodes and executes one instruction.
//
// While an instruction executes, R15 reads as its address plus 8. A
// data-processing instruction that writes R15 branches to the written
// value; any other instruction advances the PC by 4.
func (e *Emulator) Step() StepResult {
	if e.halted {
		return StepResult{Exited: true, PC: e.regFile.PC()}
	}

	// Check instruction limit before executing
	if e.maxInstructions > 0 && e.instructionCount >= e.maxInstructions {
		return StepResult{
			PC:  e.regFile.PC(),
			Err: fmt.Errorf("%w: %d", ErrMaxInstructions, e.maxInstructions),
		}
	}

	// 1. Fetch
	pc := e.regFile.PC()
	if pc%4 != 0 || !e.memory.Contains(pc, 4) {
		return StepResult{
			PC:  pc,
			Err: fmt.Errorf("%w: PC=0x%X", ErrPCOutOfRange, pc),
		}
	}

	word := e.memory.Read32(pc)
	if word == 0 {
		e.halted = true
		e.logger.Debug("halt", "pc", fmt.Sprintf("0x%X", pc))
		return StepResult{Exited: true, PC: pc}
	}

	// 2. Decode
	inst := e.decoder.Decode(word)
	if inst.Op == insts.OpUnknown {
		return StepResult{
			PC:  pc,
			Err: fmt.Errorf("%w 0x%08X at PC=0x%X", ErrUnknownInstruction, word, pc),
		}
	}

	// 3. Execute
	executed := e.regFile.ConditionPassed(inst.Cond)

	e.regFile.SetPC(pc + 8)
	if executed {
		e.alu.Execute(inst)
	}

	if !executed || !inst.Op.WritesResult() || inst.Rd != RegPC {
		e.regFile.SetPC(pc + 4)
	}

	e.instructionCount++

	if e.tracer != nil {
		e.tracer.Trace(TraceRecord{
			PC:       pc,
			Word:     word,
			Inst:     inst,
			Executed: executed,
			Regs:     *e.regFile,
		})
	}

	return StepResult{PC: pc, Inst: inst, Executed: executed}
}

// Run executes instructions until the halt word is fetched or an error
// occurs.
func (e *Emulator) Run() error {
	for {
		result := e.Step()
		if result.Exited {
			e.logger.Info("program halted",
				"pc", fmt.Sprintf("0x%X", result.PC),
				"instructions", e.instructionCount,
			)
			return nil
		}
		if result.Err != nil {
			e.logger.Error("emulation error", "err", result.Err)
			return result.Err
		}
	}
}
