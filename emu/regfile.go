// Package emu provides functional A32 data-processing emulation.
package emu

import "fmt"

// NumRegs is the number of general-purpose registers.
const NumRegs = 16

// Register aliases.
const (
	RegSP uint8 = 13
	RegLR uint8 = 14
	RegPC uint8 = 15
)

// CPSR condition flags. The remaining bits are not used by the emulator and
// are preserved across flag updates.
const (
	FlagN uint32 = 1 << 31 // Negative
	FlagZ uint32 = 1 << 30 // Zero
	FlagC uint32 = 1 << 29 // Carry
	FlagV uint32 = 1 << 28 // Overflow
)

// RegFile represents the A32 register file.
// It contains 16 general-purpose registers (R0-R15, R15 is the PC) and the
// current program status register.
type RegFile struct {
	// R holds general-purpose registers R0-R15.
	R [NumRegs]uint32

	// CPSR holds the condition flags in bits 31..28.
	CPSR uint32
}

// ReadReg reads a register value. It panics if reg is not 0-15.
func (r *RegFile) ReadReg(reg uint8) uint32 {
	if reg >= NumRegs {
		panic(fmt.Sprintf("emu: read of register r%d", reg))
	}
	return r.R[reg]
}

// WriteReg writes a value to a register. It panics if reg is not 0-15.
func (r *RegFile) WriteReg(reg uint8, value uint32) {
	if reg >= NumRegs {
		panic(fmt.Sprintf("emu: write of register r%d", reg))
	}
	r.R[reg] = value
}

// PC returns the program counter.
func (r *RegFile) PC() uint32 {
	return r.R[RegPC]
}

// SetPC sets the program counter.
func (r *RegFile) SetPC(pc uint32) {
	r.R[RegPC] = pc
}

// N returns the negative flag.
func (r *RegFile) N() bool { return r.CPSR&FlagN != 0 }

// Z returns the zero flag.
func (r *RegFile) Z() bool { return r.CPSR&FlagZ != 0 }

// C returns the carry flag.
func (r *RegFile) C() bool { return r.CPSR&FlagC != 0 }

// V returns the overflow flag.
func (r *RegFile) V() bool { return r.CPSR&FlagV != 0 }

// SetFlag sets or clears one CPSR flag.
func (r *RegFile) SetFlag(flag uint32, on bool) {
	if on {
		r.CPSR |= flag
	} else {
		r.CPSR &^= flag
	}
}

// SetNZC replaces N, Z and C. V and CPSR bits 27..0 keep their values.
func (r *RegFile) SetNZC(n, z, c bool) {
	cpsr := r.CPSR & (FlagV | 0x0FFFFFFF)
	if n {
		cpsr |= FlagN
	}
	if z {
		cpsr |= FlagZ
	}
	if c {
		cpsr |= FlagC
	}
	r.CPSR = cpsr
}

// FlagString renders the condition flags as "NZCV" with clear flags shown
// as '-'.
func (r *RegFile) FlagString() string {
	b := []byte("----")
	for i, f := range []struct {
		set  bool
		name byte
	}{{r.N(), 'N'}, {r.Z(), 'Z'}, {r.C(), 'C'}, {r.V(), 'V'}} {
		if f.set {
			b[i] = f.name
		}
	}
	return string(b)
}
