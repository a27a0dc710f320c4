package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/a32sim/insts"
)

var _ = Describe("Operand2", func() {
	Describe("ImmediateFor", func() {
		DescribeTable("representable constants",
			func(value uint32, imm8, rotate uint8) {
				op, ok := insts.ImmediateFor(value)

				Expect(ok).To(BeTrue())
				Expect(op.Imm8).To(Equal(imm8))
				Expect(op.Rotate).To(Equal(rotate))
				Expect(op.Value()).To(Equal(value))
			},
			Entry("zero", uint32(0), uint8(0), uint8(0)),
			Entry("8-bit value", uint32(0xAB), uint8(0xAB), uint8(0)),
			Entry("top byte", uint32(0xFF000000), uint8(0xFF), uint8(4)),
			Entry("wrapped nibbles", uint32(0xF000000F), uint8(0xFF), uint8(2)),
			Entry("needs rotate 15", uint32(0x104), uint8(0x41), uint8(15)),
			Entry("prefers the smallest rotate", uint32(0x100), uint8(0x01), uint8(12)),
		)

		DescribeTable("unrepresentable constants",
			func(value uint32) {
				_, ok := insts.ImmediateFor(value)
				Expect(ok).To(BeFalse())
			},
			Entry("nine significant bits", uint32(0x101)),
			Entry("odd alignment", uint32(0x102)),
			Entry("all ones", uint32(0xFFFFFFFF)),
		)
	})

	Describe("Bits", func() {
		It("should pack an immediate", func() {
			field, err := insts.Imm(0x41, 15).Bits()

			Expect(err).NotTo(HaveOccurred())
			Expect(field).To(Equal(uint16(0xF41)))
		})

		It("should pack an immediate shift", func() {
			field, err := insts.RegShift(1, insts.ShiftLSL, 2).Bits()

			Expect(err).NotTo(HaveOccurred())
			Expect(field).To(Equal(uint16(0x101)))
		})

		It("should reject a rotate above 15", func() {
			_, err := insts.Imm(1, 16).Bits()

			Expect(err).To(MatchError(insts.ErrFieldRange))
		})

		It("should unpack what it packs", func() {
			ops := []insts.Operand2{
				insts.Imm(0x12, 7),
				insts.Reg(15),
				insts.RegShift(2, insts.ShiftROR, 0),
				insts.RegShift(3, insts.ShiftLSR, 31),
				insts.RegShiftReg(4, insts.ShiftASR, 5),
			}

			for _, op := range ops {
				field, err := op.Bits()
				Expect(err).NotTo(HaveOccurred())
				Expect(insts.DecodeOperand2(op.IsImmediate(), field)).To(Equal(op))
			}
		})
	})

	Describe("String", func() {
		It("should render each form", func() {
			Expect(insts.Imm(0xFF, 4).String()).To(Equal("#4278190080"))
			Expect(insts.Reg(3).String()).To(Equal("r3"))
			Expect(insts.RegShift(3, insts.ShiftLSR, 0).String()).To(Equal("r3, lsr #32"))
			Expect(insts.RegShift(3, insts.ShiftROR, 0).String()).To(Equal("r3, rrx"))
			Expect(insts.RegShiftReg(3, insts.ShiftASR, 4).String()).To(Equal("r3, asr r4"))
		})
	})
})
