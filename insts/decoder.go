// Package insts provides A32 data-processing instruction definitions and decoding.
package insts

// Op represents a data-processing ALU operation.
//
// Op is an in-memory tag. The 4-bit opcode field that appears in an
// instruction word is obtained with Code and mapped back with OpFromCode.
type Op uint16

// Data-processing operations.
const (
	OpUnknown Op = iota
	OpAND
	OpEOR
	OpSUB
	OpRSB
	OpADD
	OpTST
	OpTEQ
	OpCMP
	OpORR
	OpMOV
)

// Code returns the 4-bit opcode field for op. The second result is false
// for OpUnknown and any value outside the enumeration.
func (op Op) Code() (uint32, bool) {
	switch op {
	case OpAND:
		return 0b0000, true
	case OpEOR:
		return 0b0001, true
	case OpSUB:
		return 0b0010, true
	case OpRSB:
		return 0b0011, true
	case OpADD:
		return 0b0100, true
	case OpTST:
		return 0b1000, true
	case OpTEQ:
		return 0b1001, true
	case OpCMP:
		return 0b1010, true
	case OpORR:
		return 0b1100, true
	case OpMOV:
		return 0b1101, true
	default:
		return 0, false
	}
}

// OpFromCode maps a 4-bit opcode field to its operation. Opcodes outside the
// supported family (ADC, SBC, RSC, CMN, BIC, MVN) map to OpUnknown.
func OpFromCode(code uint32) Op {
	switch code & 0xF {
	case 0b0000:
		return OpAND
	case 0b0001:
		return OpEOR
	case 0b0010:
		return OpSUB
	case 0b0011:
		return OpRSB
	case 0b0100:
		return OpADD
	case 0b1000:
		return OpTST
	case 0b1001:
		return OpTEQ
	case 0b1010:
		return OpCMP
	case 0b1100:
		return OpORR
	case 0b1101:
		return OpMOV
	default:
		return OpUnknown
	}
}

// IsTest reports whether op only updates flags (TST, TEQ, CMP).
func (op Op) IsTest() bool {
	return op == OpTST || op == OpTEQ || op == OpCMP
}

// WritesResult reports whether op writes its result to Rd.
func (op Op) WritesResult() bool {
	return op != OpUnknown && !op.IsTest()
}

func (op Op) String() string {
	switch op {
	case OpAND:
		return "AND"
	case OpEOR:
		return "EOR"
	case OpSUB:
		return "SUB"
	case OpRSB:
		return "RSB"
	case OpADD:
		return "ADD"
	case OpTST:
		return "TST"
	case OpTEQ:
		return "TEQ"
	case OpCMP:
		return "CMP"
	case OpORR:
		return "ORR"
	case OpMOV:
		return "MOV"
	default:
		return "UNKNOWN"
	}
}

// Format represents an instruction encoding format.
type Format uint8

// Instruction formats.
const (
	FormatUnknown  Format = iota
	FormatDataProc        // Data Processing (immediate or register operand 2)
)

// Cond represents an A32 condition code.
type Cond uint8

// A32 condition codes.
const (
	CondEQ Cond = 0b0000 // Equal (Z == 1)
	CondNE Cond = 0b0001 // Not Equal (Z == 0)
	CondCS Cond = 0b0010 // Carry Set / Unsigned higher or same (C == 1)
	CondCC Cond = 0b0011 // Carry Clear / Unsigned lower (C == 0)
	CondMI Cond = 0b0100 // Minus / Negative (N == 1)
	CondPL Cond = 0b0101 // Plus / Positive or zero (N == 0)
	CondVS Cond = 0b0110 // Overflow (V == 1)
	CondVC Cond = 0b0111 // No overflow (V == 0)
	CondHI Cond = 0b1000 // Unsigned higher (C == 1 && Z == 0)
	CondLS Cond = 0b1001 // Unsigned lower or same (C == 0 || Z == 1)
	CondGE Cond = 0b1010 // Signed greater than or equal (N == V)
	CondLT Cond = 0b1011 // Signed less than (N != V)
	CondGT Cond = 0b1100 // Signed greater than (Z == 0 && N == V)
	CondLE Cond = 0b1101 // Signed less than or equal (Z == 1 || N != V)
	CondAL Cond = 0b1110 // Always (unconditional)
	CondNV Cond = 0b1111 // Never (reserved)
)

var condNames = [16]string{
	"EQ", "NE", "CS", "CC", "MI", "PL", "VS", "VC",
	"HI", "LS", "GE", "LT", "GT", "LE", "AL", "NV",
}

func (c Cond) String() string {
	if int(c) < len(condNames) {
		return condNames[c]
	}
	return "??"
}

// ShiftType represents a shift type for register operands.
type ShiftType uint8

// Shift types.
const (
	ShiftLSL ShiftType = 0b00 // Logical shift left
	ShiftLSR ShiftType = 0b01 // Logical shift right
	ShiftASR ShiftType = 0b10 // Arithmetic shift right
	ShiftROR ShiftType = 0b11 // Rotate right (RRX when the amount is 0)
)

func (t ShiftType) String() string {
	switch t {
	case ShiftLSL:
		return "lsl"
	case ShiftLSR:
		return "lsr"
	case ShiftASR:
		return "asr"
	case ShiftROR:
		return "ror"
	default:
		return "?"
	}
}

// Instruction represents a decoded data-processing instruction.
type Instruction struct {
	Op     Op     // Operation
	Format Format // Encoding format

	Cond      Cond  // Condition code, bits [31:28]
	Immediate bool  // Operand 2 is a rotated immediate, bit 25
	SetFlags  bool  // Update NZCV, bit 20
	Rn        uint8 // First operand register, bits [19:16]
	Rd        uint8 // Destination register, bits [15:12]

	// Operand2Bits holds the raw 12-bit operand 2 field, bits [11:0].
	Operand2Bits uint16
}

// Operand2 unpacks Operand2Bits according to Immediate.
func (inst *Instruction) Operand2() Operand2 {
	return DecodeOperand2(inst.Immediate, inst.Operand2Bits)
}

// Decoder decodes A32 machine words into instructions.
type Decoder struct{}

// NewDecoder creates a new instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit instruction word. Words outside the supported
// data-processing family decode with Op set to OpUnknown.
func (d *Decoder) Decode(word uint32) *Instruction {
	inst := &Instruction{
		Op:     OpUnknown,
		Format: FormatUnknown,
		Cond:   Cond(word >> 28),
	}

	if d.isDataProcessing(word) {
		d.decodeDataProcessing(word, inst)
	}

	return inst
}

// isDataProcessing checks bits [27:26] == 00 and rules out the multiply,
// swap and halfword transfer encodings that share that prefix
// (I == 0, bit 7 == 1, bit 4 == 1).
func (d *Decoder) isDataProcessing(word uint32) bool {
	if (word>>26)&0x3 != 0b00 {
		return false
	}

	i := (word >> 25) & 0x1
	bit7 := (word >> 7) & 0x1
	bit4 := (word >> 4) & 0x1

	return !(i == 0 && bit7 == 1 && bit4 == 1)
}

// decodeDataProcessing unpacks the data-processing fields.
// Format: cond | 00 | I | opcode | S | Rn | Rd | operand2
func (d *Decoder) decodeDataProcessing(word uint32, inst *Instruction) {
	inst.Format = FormatDataProc

	i := (word >> 25) & 0x1          // bit 25
	opcode := (word >> 21) & 0xF     // bits [24:21]
	s := (word >> 20) & 0x1          // bit 20
	rn := (word >> 16) & 0xF         // bits [19:16]
	rd := (word >> 12) & 0xF         // bits [15:12]
	operand2 := uint16(word & 0xFFF) // bits [11:0]

	inst.Op = OpFromCode(opcode)
	inst.Immediate = i == 1
	inst.SetFlags = s == 1
	inst.Rn = uint8(rn)
	inst.Rd = uint8(rd)
	inst.Operand2Bits = operand2
}
