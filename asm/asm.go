// Package asm assembles data-processing mnemonics into A32 machine words.
//
// A source line is split by Tokenize into a mnemonic and its operand strings.
// EncodeDataProcessing then rewrites pseudo-instructions (LSL) and
// condition-carrying mnemonics (ANDEQ) into a plain operation, resolves the
// register and operand 2 fields, and packs them with insts.Encode.
//
// Usage:
//
//	ti, _ := asm.Tokenize("add r0, r1, r2, lsl #2")
//	word, err := asm.EncodeDataProcessing(ti) // 0xE0810102
package asm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sarchlab/a32sim/insts"
)

// Assembler errors.
var (
	// ErrMalformedOperand is returned when an operand is neither a register
	// nor a valid rotated-immediate or shifted-register operand 2.
	ErrMalformedOperand = errors.New("malformed operand")
	// ErrUnknownMnemonic is returned for mnemonics outside the supported set.
	ErrUnknownMnemonic = errors.New("unknown mnemonic")
	// ErrOperandCount is returned when a mnemonic has the wrong number of operands.
	ErrOperandCount = errors.New("wrong number of operands")
)

// Mnemonic is an assembler mnemonic of the data-processing family.
type Mnemonic uint8

// Supported mnemonics.
const (
	MnemonicUnknown Mnemonic = iota
	AND
	ANDEQ
	EOR
	SUB
	RSB
	ADD
	ORR
	MOV
	LSL
	TST
	TEQ
	CMP
)

var mnemonicNames = map[Mnemonic]string{
	AND:   "and",
	ANDEQ: "andeq",
	EOR:   "eor",
	SUB:   "sub",
	RSB:   "rsb",
	ADD:   "add",
	ORR:   "orr",
	MOV:   "mov",
	LSL:   "lsl",
	TST:   "tst",
	TEQ:   "teq",
	CMP:   "cmp",
}

// ParseMnemonic looks up a mnemonic, ignoring case.
func ParseMnemonic(s string) (Mnemonic, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for m, n := range mnemonicNames {
		if n == name {
			return m, nil
		}
	}

	return MnemonicUnknown, fmt.Errorf("%w: %q", ErrUnknownMnemonic, s)
}

func (m Mnemonic) String() string {
	if n, ok := mnemonicNames[m]; ok {
		return n
	}
	return "unknown"
}

// Op returns the ALU operation m encodes to. ANDEQ encodes as AND and LSL as
// MOV; an unknown mnemonic returns insts.OpUnknown.
func (m Mnemonic) Op() insts.Op {
	switch m {
	case AND, ANDEQ:
		return insts.OpAND
	case EOR:
		return insts.OpEOR
	case SUB:
		return insts.OpSUB
	case RSB:
		return insts.OpRSB
	case ADD:
		return insts.OpADD
	case ORR:
		return insts.OpORR
	case MOV, LSL:
		return insts.OpMOV
	case TST:
		return insts.OpTST
	case TEQ:
		return insts.OpTEQ
	case CMP:
		return insts.OpCMP
	default:
		return insts.OpUnknown
	}
}

// Cond returns the condition code m encodes to.
func (m Mnemonic) Cond() insts.Cond {
	if m == ANDEQ {
		return insts.CondEQ
	}
	return insts.CondAL
}

// operand2Index returns the position of operand 2 in the operand list, or
// -1 when the mnemonic takes no operand 2 expression (LSL).
func (m Mnemonic) operand2Index() int {
	op := m.Op()
	switch {
	case m == LSL || op == insts.OpUnknown:
		return -1
	case op.IsTest(), op == insts.OpMOV:
		return 1
	default:
		return 2
	}
}
