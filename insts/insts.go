// Package insts provides A32 data-processing instruction definitions,
// decoding and encoding.
//
// This package owns the 32-bit bit-layout contract shared by the assembler and
// the emulator:
//
//	[31:28] cond | 00 | [25] I | [24:21] opcode | [20] S | [19:16] Rn | [15:12] Rd | [11:0] operand2
//
// It supports the AND, EOR, SUB, RSB, ADD, TST, TEQ, CMP, ORR and MOV
// operations with either a rotated 8-bit immediate or a shifted register as
// the second operand.
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0xE3A0102A) // MOV R1, #42
//	fmt.Printf("Op: %v, Rd: %d, Op2: %d\n", inst.Op, inst.Rd, inst.Operand2().Value())
package insts
