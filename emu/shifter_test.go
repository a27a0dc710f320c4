package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/a32sim/emu"
	"github.com/sarchlab/a32sim/insts"
)

var _ = Describe("Shifter", func() {
	DescribeTable("ShiftByImmediate",
		func(value uint32, t insts.ShiftType, amount uint8, carryIn bool,
			want uint32, wantCarry bool) {
			result, carry := emu.ShiftByImmediate(value, t, amount, carryIn)
			Expect(result).To(Equal(want))
			Expect(carry).To(Equal(wantCarry))
		},
		Entry("LSL #0 keeps value and carry", uint32(0x80000000), insts.ShiftLSL, uint8(0), true, uint32(0x80000000), true),
		Entry("LSL #1", uint32(0x80000001), insts.ShiftLSL, uint8(1), false, uint32(0x00000002), true),
		Entry("LSL #4", uint32(0x0F000000), insts.ShiftLSL, uint8(4), true, uint32(0xF0000000), false),
		Entry("LSR #0 means #32", uint32(0x80000000), insts.ShiftLSR, uint8(0), false, uint32(0), true),
		Entry("LSR #4", uint32(0x00000018), insts.ShiftLSR, uint8(4), false, uint32(0x00000001), true),
		Entry("ASR #0 negative", uint32(0x80000000), insts.ShiftASR, uint8(0), false, uint32(0xFFFFFFFF), true),
		Entry("ASR #0 positive", uint32(0x7FFFFFFF), insts.ShiftASR, uint8(0), true, uint32(0), false),
		Entry("ASR #4", uint32(0x80000010), insts.ShiftASR, uint8(4), true, uint32(0xF8000001), false),
		Entry("ROR #8", uint32(0x000000AB), insts.ShiftROR, uint8(8), false, uint32(0xAB000000), true),
		Entry("RRX with carry", uint32(0x00000003), insts.ShiftROR, uint8(0), true, uint32(0x80000001), true),
		Entry("RRX without carry", uint32(0x00000002), insts.ShiftROR, uint8(0), false, uint32(0x00000001), false),
	)

	DescribeTable("ShiftByRegister",
		func(value uint32, t insts.ShiftType, amount uint32, carryIn bool,
			want uint32, wantCarry bool) {
			result, carry := emu.ShiftByRegister(value, t, amount, carryIn)
			Expect(result).To(Equal(want))
			Expect(carry).To(Equal(wantCarry))
		},
		Entry("zero amount keeps value and carry", uint32(0x12345678), insts.ShiftLSR, uint32(0), true, uint32(0x12345678), true),
		Entry("only the bottom byte counts", uint32(0x12345678), insts.ShiftLSL, uint32(0x100), false, uint32(0x12345678), false),
		Entry("LSL 4", uint32(0x0000000F), insts.ShiftLSL, uint32(4), false, uint32(0x000000F0), false),
		Entry("LSL 32", uint32(0x00000001), insts.ShiftLSL, uint32(32), false, uint32(0), true),
		Entry("LSL 33", uint32(0xFFFFFFFF), insts.ShiftLSL, uint32(33), true, uint32(0), false),
		Entry("LSR 32", uint32(0x80000000), insts.ShiftLSR, uint32(32), false, uint32(0), true),
		Entry("LSR 40", uint32(0xFFFFFFFF), insts.ShiftLSR, uint32(40), true, uint32(0), false),
		Entry("ASR 200", uint32(0x80000000), insts.ShiftASR, uint32(200), false, uint32(0xFFFFFFFF), true),
		Entry("ASR 1", uint32(0x80000001), insts.ShiftASR, uint32(1), false, uint32(0xC0000000), true),
		Entry("ROR 32", uint32(0x80000000), insts.ShiftROR, uint32(32), false, uint32(0x80000000), true),
		Entry("ROR 36", uint32(0x00000018), insts.ShiftROR, uint32(36), false, uint32(0x80000001), true),
	)

	DescribeTable("RotateImm",
		func(imm8, rotate uint8, carryIn bool, want uint32, wantCarry bool) {
			result, carry := emu.RotateImm(imm8, rotate, carryIn)
			Expect(result).To(Equal(want))
			Expect(carry).To(Equal(wantCarry))
		},
		Entry("rotate 0 keeps carry set", uint8(0xFF), uint8(0), true, uint32(0xFF), true),
		Entry("rotate 0 keeps carry clear", uint8(0x80), uint8(0), false, uint32(0x80), false),
		Entry("rotate 4 sets carry from bit 31", uint8(0xFF), uint8(4), false, uint32(0xFF000000), true),
		Entry("rotate 15", uint8(0x41), uint8(15), true, uint32(0x104), false),
		Entry("rotate 1", uint8(0x01), uint8(1), true, uint32(0x40000000), false),
	)

	Describe("Operand2", func() {
		var (
			regFile *emu.RegFile
			shifter *emu.Shifter
		)

		BeforeEach(func() {
			regFile = &emu.RegFile{}
			shifter = emu.NewShifter(regFile)
		})

		It("should read a register shifted by another register", func() {
			regFile.WriteReg(3, 0x000000F0)
			regFile.WriteReg(4, 0xFFFFFF04)

			value, carry := shifter.Operand2(insts.RegShiftReg(3, insts.ShiftLSR, 4))

			Expect(value).To(Equal(uint32(0x0000000F)))
			Expect(carry).To(BeFalse())
		})

		It("should pass the C flag through an unshifted register", func() {
			regFile.WriteReg(1, 7)
			regFile.SetFlag(emu.FlagC, true)

			value, carry := shifter.Operand2(insts.Reg(1))

			Expect(value).To(Equal(uint32(7)))
			Expect(carry).To(BeTrue())
		})
	})
})
