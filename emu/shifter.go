package emu

import (
	"math/bits"

	"github.com/sarchlab/a32sim/insts"
)

// Shifter is the barrel shifter that produces operand 2 and the shifter
// carry-out.
type Shifter struct {
	regFile *RegFile
}

// NewShifter creates a shifter that reads register operands from regFile.
func NewShifter(regFile *RegFile) *Shifter {
	return &Shifter{regFile: regFile}
}

// Operand2 evaluates op against the current register file. The carry-out
// equals the current C flag when the operand does not shift.
func (s *Shifter) Operand2(op insts.Operand2) (uint32, bool) {
	carryIn := s.regFile.C()

	switch op.Kind {
	case insts.Operand2Imm:
		return RotateImm(op.Imm8, op.Rotate, carryIn)
	case insts.Operand2RegShiftReg:
		value := s.regFile.ReadReg(op.Rm)
		amount := s.regFile.ReadReg(op.Rs) & 0xFF
		return ShiftByRegister(value, op.ShiftType, amount, carryIn)
	default:
		value := s.regFile.ReadReg(op.Rm)
		return ShiftByImmediate(value, op.ShiftType, op.ShiftAmount, carryIn)
	}
}

// RotateImm expands a rotated immediate. With a zero rotate the carry is
// carryIn, otherwise it is bit 31 of the result.
func RotateImm(imm8, rotate uint8, carryIn bool) (uint32, bool) {
	value := bits.RotateLeft32(uint32(imm8), -2*int(rotate&0xF))
	if rotate&0xF == 0 {
		return value, carryIn
	}
	return value, value>>31 != 0
}

// ShiftByImmediate applies a shift whose amount comes from the 5-bit
// instruction field. LSR #0 and ASR #0 mean a shift by 32 and ROR #0 is RRX.
func ShiftByImmediate(
	value uint32, shiftType insts.ShiftType, amount uint8, carryIn bool,
) (uint32, bool) {
	n := uint(amount & 0x1F)

	switch shiftType {
	case insts.ShiftLSL:
		if n == 0 {
			return value, carryIn
		}
		return value << n, bit(value, 32-n)
	case insts.ShiftLSR:
		if n == 0 {
			return 0, bit(value, 31)
		}
		return value >> n, bit(value, n-1)
	case insts.ShiftASR:
		if n == 0 {
			return uint32(int32(value) >> 31), bit(value, 31)
		}
		return uint32(int32(value) >> n), bit(value, n-1)
	default: // ROR
		if n == 0 {
			result := value >> 1
			if carryIn {
				result |= 1 << 31
			}
			return result, bit(value, 0)
		}
		return bits.RotateLeft32(value, -int(n)), bit(value, n-1)
	}
}

// ShiftByRegister applies a shift whose amount is the bottom byte of a
// register. A zero amount leaves value and carry unchanged.
func ShiftByRegister(
	value uint32, shiftType insts.ShiftType, amount uint32, carryIn bool,
) (uint32, bool) {
	n := uint(amount & 0xFF)
	if n == 0 {
		return value, carryIn
	}

	switch shiftType {
	case insts.ShiftLSL:
		switch {
		case n < 32:
			return value << n, bit(value, 32-n)
		case n == 32:
			return 0, bit(value, 0)
		default:
			return 0, false
		}
	case insts.ShiftLSR:
		switch {
		case n < 32:
			return value >> n, bit(value, n-1)
		case n == 32:
			return 0, bit(value, 31)
		default:
			return 0, false
		}
	case insts.ShiftASR:
		if n >= 32 {
			return uint32(int32(value) >> 31), bit(value, 31)
		}
		return uint32(int32(value) >> n), bit(value, n-1)
	default: // ROR
		n &= 0x1F
		if n == 0 {
			return value, bit(value, 31)
		}
		return bits.RotateLeft32(value, -int(n)), bit(value, n-1)
	}
}

func bit(value uint32, n uint) bool {
	return (value>>n)&1 != 0
}
