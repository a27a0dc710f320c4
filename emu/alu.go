package emu

import (
	"fmt"

	"github.com/sarchlab/a32sim/insts"
)

// ALU executes A32 data-processing operations.
type ALU struct {
	regFile *RegFile
	shifter *Shifter
}

// NewALU creates a new ALU connected to the given register file.
func NewALU(regFile *RegFile) *ALU {
	return &ALU{
		regFile: regFile,
		shifter: NewShifter(regFile),
	}
}

// Execute runs one decoded data-processing instruction. The condition code
// is not checked here. TST, TEQ and CMP do not write Rd; flags change only
// when SetFlags is set, and V is never touched.
//
// Execute panics if inst is not a supported data-processing operation or
// names a register outside r0-r15.
func (a *ALU) Execute(inst *insts.Instruction) {
	op1 := a.regFile.ReadReg(inst.Rn)
	op2, carry := a.shifter.Operand2(inst.Operand2())

	result, carry := a.compute(inst.Op, op1, op2, carry)

	if inst.Op.WritesResult() {
		a.regFile.WriteReg(inst.Rd, result)
	}

	if inst.SetFlags {
		a.regFile.SetNZC(result>>31 != 0, result == 0, carry)
	}
}

// compute returns the result and carry-out of op. carry is the shifter
// carry, kept by the logical operations.
func (a *ALU) compute(op insts.Op, op1, op2 uint32, carry bool) (uint32, bool) {
	switch op {
	case insts.OpAND, insts.OpTST:
		return op1 & op2, carry
	case insts.OpEOR, insts.OpTEQ:
		return op1 ^ op2, carry
	case insts.OpSUB, insts.OpCMP:
		return op1 - op2, op1 >= op2
	case insts.OpRSB:
		return op2 - op1, op2 >= op1
	case insts.OpADD:
		result := op1 + op2
		return result, result < op1
	case insts.OpORR:
		return op1 | op2, carry
	case insts.OpMOV:
		return op2, carry
	default:
		panic(fmt.Sprintf("emu: ALU cannot execute %v", op))
	}
}
