package insts

import (
	"errors"
	"fmt"
)

// ErrFieldRange is returned when a field does not fit its bit width.
var ErrFieldRange = errors.New("field out of range")

// Fields holds the data-processing fields before they are packed into a word.
type Fields struct {
	Cond     Cond
	Op       Op
	SetFlags bool
	Rn       uint8
	Rd       uint8
	Operand2 Operand2
}

// Encode packs the fields into a 32-bit instruction word.
// Format: cond | 00 | I | opcode | S | Rn | Rd | operand2
func Encode(f Fields) (uint32, error) {
	opcode, ok := f.Op.Code()
	if !ok {
		return 0, fmt.Errorf("%w: opcode %v", ErrFieldRange, f.Op)
	}

	if f.Cond > CondNV {
		return 0, fmt.Errorf("%w: condition %d", ErrFieldRange, f.Cond)
	}

	if f.Rn > 15 {
		return 0, fmt.Errorf("%w: Rn r%d", ErrFieldRange, f.Rn)
	}

	if f.Rd > 15 {
		return 0, fmt.Errorf("%w: Rd r%d", ErrFieldRange, f.Rd)
	}

	operand2, err := f.Operand2.Bits()
	if err != nil {
		return 0, err
	}

	word := uint32(f.Cond)                             // bits [31:28]
	word = word<<3 | boolBit(f.Operand2.IsImmediate()) // bits [27:26] = 00, bit 25
	word = word<<4 | opcode                            // bits [24:21]
	word = word<<1 | boolBit(f.SetFlags)               // bit 20
	word = word<<4 | uint32(f.Rn)                      // bits [19:16]
	word = word<<4 | uint32(f.Rd)                      // bits [15:12]
	word = word<<12 | uint32(operand2)                 // bits [11:0]

	return word, nil
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
