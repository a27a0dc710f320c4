package asm

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sarchlab/a32sim/insts"
)

var registerAliases = map[string]uint8{
	"sp": 13,
	"lr": 14,
	"pc": 15,
}

// ParseRegister resolves a register name (r0-r15, sp, lr, pc) to its index.
func ParseRegister(s string) (uint8, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if r, ok := registerAliases[name]; ok {
		return r, nil
	}

	if !strings.HasPrefix(name, "r") {
		return 0, fmt.Errorf("%w: %q is not a register", ErrMalformedOperand, s)
	}

	n, err := strconv.ParseUint(name[1:], 10, 8)
	if err != nil || n > 15 {
		return 0, fmt.Errorf("%w: %q is not a register", ErrMalformedOperand, s)
	}

	return uint8(n), nil
}

// ParseOperand2 resolves an operand 2 expression: "#imm", "Rm",
// "Rm,<shift> #n", "Rm,<shift> Rs" or "Rm,rrx".
func ParseOperand2(s string) (insts.Operand2, error) {
	text := strings.TrimSpace(s)

	if strings.HasPrefix(text, "#") {
		value, err := parseImmediate(text)
		if err != nil {
			return insts.Operand2{}, err
		}

		op, ok := insts.ImmediateFor(value)
		if !ok {
			return insts.Operand2{}, fmt.Errorf(
				"%w: %q has no rotated 8-bit encoding", ErrMalformedOperand, s)
		}

		return op, nil
	}

	reg, shift, hasShift := strings.Cut(text, ",")

	rm, err := ParseRegister(reg)
	if err != nil {
		return insts.Operand2{}, err
	}

	if !hasShift {
		return insts.Reg(rm), nil
	}

	return parseShift(rm, shift)
}

// parseShift parses "<shift> #n", "<shift> Rs" or "rrx" applied to rm.
func parseShift(rm uint8, s string) (insts.Operand2, error) {
	text := strings.ToLower(strings.TrimSpace(s))
	if text == "rrx" {
		return insts.RegShift(rm, insts.ShiftROR, 0), nil
	}

	if len(text) < 3 {
		return insts.Operand2{}, fmt.Errorf("%w: bad shift %q", ErrMalformedOperand, s)
	}

	var shiftType insts.ShiftType
	switch text[:3] {
	case "lsl", "asl":
		shiftType = insts.ShiftLSL
	case "lsr":
		shiftType = insts.ShiftLSR
	case "asr":
		shiftType = insts.ShiftASR
	case "ror":
		shiftType = insts.ShiftROR
	default:
		return insts.Operand2{}, fmt.Errorf("%w: bad shift %q", ErrMalformedOperand, s)
	}

	return shiftBy(rm, shiftType, text[3:])
}

// shiftBy builds rm shifted by amount, where amount is "#n" or a register.
func shiftBy(rm uint8, shiftType insts.ShiftType, amount string) (insts.Operand2, error) {
	amount = strings.TrimSpace(amount)

	if !strings.HasPrefix(amount, "#") {
		rs, err := ParseRegister(amount)
		if err != nil {
			return insts.Operand2{}, err
		}
		return insts.RegShiftReg(rm, shiftType, rs), nil
	}

	n, err := parseImmediate(amount)
	if err != nil {
		return insts.Operand2{}, err
	}

	encoded, err := encodeShiftAmount(shiftType, n)
	if err != nil {
		return insts.Operand2{}, fmt.Errorf("%w: %v %s", err, shiftType, amount)
	}

	if encoded == 0 && n == 0 {
		return insts.Reg(rm), nil
	}

	return insts.RegShift(rm, shiftType, encoded), nil
}

// encodeShiftAmount maps an immediate shift amount to its 5-bit field.
// LSL takes 0-31, LSR and ASR take 1-32 (32 encodes as 0), ROR takes 0-31.
// A zero amount of any type means no shift.
func encodeShiftAmount(shiftType insts.ShiftType, n uint32) (uint8, error) {
	if n == 0 {
		return 0, nil
	}

	switch shiftType {
	case insts.ShiftLSR, insts.ShiftASR:
		if n > 32 {
			return 0, fmt.Errorf("%w: shift amount %d", ErrMalformedOperand, n)
		}
		return uint8(n % 32), nil
	default:
		if n > 31 {
			return 0, fmt.Errorf("%w: shift amount %d", ErrMalformedOperand, n)
		}
		return uint8(n), nil
	}
}

// parseImmediate parses "#n" where n is decimal, 0x hex, 0b binary or 0o
// octal, optionally negative. The value must fit in 32 bits.
func parseImmediate(s string) (uint32, error) {
	text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "#"))

	neg := strings.HasPrefix(text, "-")
	if neg {
		text = text[1:]
	}

	n, err := parseNumber(text)
	if err != nil {
		return 0, fmt.Errorf("%w: bad immediate %q", ErrMalformedOperand, s)
	}

	if neg {
		if n > -math.MinInt32 {
			return 0, fmt.Errorf("%w: immediate %q out of range", ErrMalformedOperand, s)
		}
		return uint32(-int64(n)), nil
	}

	if n > math.MaxUint32 {
		return 0, fmt.Errorf("%w: immediate %q out of range", ErrMalformedOperand, s)
	}

	return uint32(n), nil
}

func parseNumber(in string) (uint64, error) {
	lower := strings.ToLower(in)
	switch {
	case strings.HasPrefix(lower, "0x"):
		return strconv.ParseUint(in[2:], 16, 64)
	case strings.HasPrefix(lower, "0b"):
		return strconv.ParseUint(in[2:], 2, 64)
	case strings.HasPrefix(lower, "0o"):
		return strconv.ParseUint(in[2:], 8, 64)
	default:
		return strconv.ParseUint(in, 10, 64)
	}
}
