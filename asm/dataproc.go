package asm

import (
	"fmt"

	"github.com/sarchlab/a32sim/insts"
)

// statement is a data-processing instruction after mnemonic rewriting. It
// names a real ALU operation; LSL and ANDEQ no longer appear.
type statement struct {
	op       insts.Op
	cond     insts.Cond
	setFlags bool
	rd       uint8
	rn       uint8
	operand2 insts.Operand2
}

// EncodeDataProcessing translates one tokenized data-processing instruction
// into its 32-bit word. The tokenized instruction is not modified.
func EncodeDataProcessing(ti *TokenizedInstruction) (uint32, error) {
	st, err := lower(ti)
	if err != nil {
		return 0, err
	}

	word, err := insts.Encode(st.fields())
	if err != nil {
		return 0, fmt.Errorf("%v: %w", ti, err)
	}

	return word, nil
}

// lower resolves the mnemonic to an operation and condition and its
// operands to register and operand 2 fields.
//
//	AND ANDEQ EOR SUB RSB ADD ORR: <op> Rd, Rn, <Operand2>
//	MOV:                           mov Rd, <Operand2>
//	TST TEQ CMP:                   <op> Rn, <Operand2>  (S = 1)
//	LSL:                           lsl Rd, [Rm,] <shift>  => mov Rd, Rm, lsl <shift>
func lower(ti *TokenizedInstruction) (statement, error) {
	m := ti.Mnemonic
	op := m.Op()
	if op == insts.OpUnknown {
		return statement{}, fmt.Errorf("%w: %v", ErrUnknownMnemonic, m)
	}

	st := statement{
		op:       op,
		cond:     m.Cond(),
		setFlags: op.IsTest(),
	}

	if m == LSL {
		return lowerLSL(st, ti)
	}

	var err error
	switch {
	case op.IsTest():
		if err = expectOperands(ti, 2); err != nil {
			return statement{}, err
		}
		st.rn, err = ParseRegister(ti.Operands[0])
		if err == nil {
			st.operand2, err = ParseOperand2(ti.Operands[1])
		}
	case op == insts.OpMOV:
		if err = expectOperands(ti, 2); err != nil {
			return statement{}, err
		}
		st.rd, err = ParseRegister(ti.Operands[0])
		if err == nil {
			st.operand2, err = ParseOperand2(ti.Operands[1])
		}
	default:
		if err = expectOperands(ti, 3); err != nil {
			return statement{}, err
		}
		st.rd, err = ParseRegister(ti.Operands[0])
		if err == nil {
			st.rn, err = ParseRegister(ti.Operands[1])
		}
		if err == nil {
			st.operand2, err = ParseOperand2(ti.Operands[2])
		}
	}

	if err != nil {
		return statement{}, fmt.Errorf("%v: %w", ti, err)
	}

	return st, nil
}

// lowerLSL rewrites "lsl Rd, <shift>" as "mov Rd, Rd, lsl <shift>" and
// "lsl Rd, Rm, <shift>" as "mov Rd, Rm, lsl <shift>". The shift is a
// "#n" amount or a register.
func lowerLSL(st statement, ti *TokenizedInstruction) (statement, error) {
	n := len(ti.Operands)
	if n != 2 && n != 3 {
		return statement{}, fmt.Errorf("%w: %v takes 2 or 3 operands, got %d",
			ErrOperandCount, ti.Mnemonic, n)
	}

	rd, err := ParseRegister(ti.Operands[0])
	if err != nil {
		return statement{}, fmt.Errorf("%v: %w", ti, err)
	}

	rm := rd
	if n == 3 {
		rm, err = ParseRegister(ti.Operands[1])
		if err != nil {
			return statement{}, fmt.Errorf("%v: %w", ti, err)
		}
	}

	operand2, err := shiftBy(rm, insts.ShiftLSL, ti.Operands[n-1])
	if err != nil {
		return statement{}, fmt.Errorf("%v: %w", ti, err)
	}

	st.rd = rd
	st.operand2 = operand2

	return st, nil
}

func expectOperands(ti *TokenizedInstruction, n int) error {
	if len(ti.Operands) != n {
		return fmt.Errorf("%w: %v takes %d operands, got %d",
			ErrOperandCount, ti.Mnemonic, n, len(ti.Operands))
	}
	return nil
}

func (st statement) fields() insts.Fields {
	return insts.Fields{
		Cond:     st.cond,
		Op:       st.op,
		SetFlags: st.setFlags,
		Rn:       st.rn,
		Rd:       st.rd,
		Operand2: st.operand2,
	}
}
