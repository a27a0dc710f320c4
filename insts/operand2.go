package insts

import (
	"fmt"
	"math/bits"
)

// Operand2Kind selects how the 12-bit operand 2 field is laid out.
type Operand2Kind uint8

// Operand 2 layouts.
const (
	// Operand2Imm is an 8-bit value rotated right by twice a 4-bit count.
	// Layout: rotate[11:8] | imm8[7:0]
	Operand2Imm Operand2Kind = iota
	// Operand2Reg is Rm shifted by a 5-bit immediate amount.
	// Layout: amount[11:7] | type[6:5] | 0 | Rm[3:0]
	Operand2Reg
	// Operand2RegShiftReg is Rm shifted by the bottom byte of Rs.
	// Layout: Rs[11:8] | 0 | type[6:5] | 1 | Rm[3:0]
	Operand2RegShiftReg
)

// Operand2 is the second ALU input of a data-processing instruction.
type Operand2 struct {
	Kind Operand2Kind

	// Rotated immediate
	Imm8   uint8
	Rotate uint8 // value = Imm8 ROR (2 * Rotate)

	// Shifted register
	Rm          uint8
	ShiftType   ShiftType
	ShiftAmount uint8 // encoded amount; LSR/ASR #32 encode as 0, ROR #0 is RRX
	Rs          uint8
}

// Imm returns a rotated immediate operand.
func Imm(imm8, rotate uint8) Operand2 {
	return Operand2{Kind: Operand2Imm, Imm8: imm8, Rotate: rotate}
}

// ImmediateFor returns the rotated immediate representing value, choosing the
// smallest rotate count. The second result is false when no 8-bit value
// rotated by an even amount equals value.
func ImmediateFor(value uint32) (Operand2, bool) {
	for rotate := 0; rotate < 16; rotate++ {
		imm := bits.RotateLeft32(value, 2*rotate)
		if imm <= 0xFF {
			return Imm(uint8(imm), uint8(rotate)), true
		}
	}

	return Operand2{}, false
}

// Reg returns an unshifted register operand.
func Reg(rm uint8) Operand2 {
	return Operand2{Kind: Operand2Reg, Rm: rm, ShiftType: ShiftLSL}
}

// RegShift returns Rm shifted by an immediate amount.
func RegShift(rm uint8, shiftType ShiftType, amount uint8) Operand2 {
	return Operand2{
		Kind:        Operand2Reg,
		Rm:          rm,
		ShiftType:   shiftType,
		ShiftAmount: amount,
	}
}

// RegShiftReg returns Rm shifted by the bottom byte of Rs.
func RegShiftReg(rm uint8, shiftType ShiftType, rs uint8) Operand2 {
	return Operand2{
		Kind:      Operand2RegShiftReg,
		Rm:        rm,
		ShiftType: shiftType,
		Rs:        rs,
	}
}

// IsImmediate reports whether the operand sets the I bit.
func (o Operand2) IsImmediate() bool {
	return o.Kind == Operand2Imm
}

// Value returns the constant of an immediate operand.
func (o Operand2) Value() uint32 {
	return bits.RotateLeft32(uint32(o.Imm8), -2*int(o.Rotate))
}

// Bits packs the operand into the 12-bit operand 2 field.
func (o Operand2) Bits() (uint16, error) {
	switch o.Kind {
	case Operand2Imm:
		if o.Rotate > 0xF {
			return 0, fmt.Errorf("%w: rotate %d", ErrFieldRange, o.Rotate)
		}
		return uint16(o.Rotate)<<8 | uint16(o.Imm8), nil
	case Operand2Reg:
		if o.Rm > 15 || o.ShiftType > ShiftROR || o.ShiftAmount > 31 {
			return 0, fmt.Errorf("%w: shifted register r%d %v #%d",
				ErrFieldRange, o.Rm, o.ShiftType, o.ShiftAmount)
		}
		return uint16(o.ShiftAmount)<<7 | uint16(o.ShiftType)<<5 | uint16(o.Rm), nil
	case Operand2RegShiftReg:
		if o.Rm > 15 || o.Rs > 15 || o.ShiftType > ShiftROR {
			return 0, fmt.Errorf("%w: shifted register r%d %v r%d",
				ErrFieldRange, o.Rm, o.ShiftType, o.Rs)
		}
		return uint16(o.Rs)<<8 | uint16(o.ShiftType)<<5 | 1<<4 | uint16(o.Rm), nil
	default:
		return 0, fmt.Errorf("%w: operand 2 kind %d", ErrFieldRange, o.Kind)
	}
}

// DecodeOperand2 unpacks a 12-bit operand 2 field.
func DecodeOperand2(immediate bool, field uint16) Operand2 {
	if immediate {
		return Imm(uint8(field&0xFF), uint8((field>>8)&0xF))
	}

	rm := uint8(field & 0xF)                   // bits [3:0]
	shiftType := ShiftType((field >> 5) & 0x3) // bits [6:5]

	if (field>>4)&0x1 == 1 {
		return RegShiftReg(rm, shiftType, uint8((field>>8)&0xF)) // Rs, bits [11:8]
	}

	return RegShift(rm, shiftType, uint8((field>>7)&0x1F)) // amount, bits [11:7]
}

func (o Operand2) String() string {
	switch o.Kind {
	case Operand2Imm:
		return fmt.Sprintf("#%d", o.Value())
	case Operand2Reg:
		if o.ShiftType == ShiftLSL && o.ShiftAmount == 0 {
			return fmt.Sprintf("r%d", o.Rm)
		}
		if o.ShiftType == ShiftROR && o.ShiftAmount == 0 {
			return fmt.Sprintf("r%d, rrx", o.Rm)
		}
		amount := int(o.ShiftAmount)
		if amount == 0 {
			amount = 32
		}
		return fmt.Sprintf("r%d, %v #%d", o.Rm, o.ShiftType, amount)
	default:
		return fmt.Sprintf("r%d, %v r%d", o.Rm, o.ShiftType, o.Rs)
	}
}
