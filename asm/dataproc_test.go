package asm_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/a32sim/asm"
	"github.com/sarchlab/a32sim/insts"
)

func encode(line string) (uint32, error) {
	ti, err := asm.Tokenize(line)
	if err != nil {
		return 0, err
	}
	return asm.EncodeDataProcessing(ti)
}

var _ = Describe("EncodeDataProcessing", func() {
	DescribeTable("encodings",
		func(line string, want uint32) {
			word, err := encode(line)
			Expect(err).NotTo(HaveOccurred())
			Expect(word).To(Equal(want), "0x%08X", word)
		},
		Entry("and", "and r0, r1, r2", uint32(0xE0010002)),
		Entry("andeq zero word", "andeq r0, r0, r0", uint32(0x00000000)),
		Entry("andeq immediate", "andeq r3, r4, #1", uint32(0x02043001)),
		Entry("eor", "eor r0, r1, r2", uint32(0xE0210002)),
		Entry("sub", "sub r0, r0, r1", uint32(0xE0400001)),
		Entry("rsb", "rsb r0, r1, #0", uint32(0xE2610000)),
		Entry("add shifted", "add r0, r1, r2, lsl #2", uint32(0xE0810102)),
		Entry("orr rotated", "orr r3, r3, #0xFF000000", uint32(0xE38334FF)),
		Entry("mov immediate", "mov r1, #42", uint32(0xE3A0102A)),
		Entry("mov rotate 15", "mov r0, #0x104", uint32(0xE3A00F41)),
		Entry("mov lsr #32", "mov r0, r1, lsr #32", uint32(0xE1A00021)),
		Entry("mov aliases", "mov sp, lr", uint32(0xE1A0D00E)),
		Entry("lsl three operands", "lsl r2, r1, #2", uint32(0xE1A02101)),
		Entry("lsl two operands", "lsl r3, #4", uint32(0xE1A03203)),
		Entry("lsl by register", "lsl r3, r5", uint32(0xE1A03513)),
		Entry("tst register shift", "tst r2, r3, lsr r4", uint32(0xE1120433)),
		Entry("teq", "teq r1, #1", uint32(0xE3310001)),
		Entry("cmp", "cmp r1, #5", uint32(0xE3510005)),
	)

	It("should encode ANDEQ with condition EQ and the AND opcode for any operands", func() {
		decoder := insts.NewDecoder()
		for _, line := range []string{
			"andeq r0, r0, r0",
			"andeq r9, r2, r3, asr #7",
			"andeq r15, r14, #0xFF",
		} {
			word, err := encode(line)
			Expect(err).NotTo(HaveOccurred())

			inst := decoder.Decode(word)
			Expect(inst.Cond).To(Equal(insts.CondEQ))
			Expect(inst.Op).To(Equal(insts.OpAND))
		}
	})

	It("should encode LSL like MOV with an LSL shift", func() {
		for _, n := range []string{"#0", "#1", "#17", "#31", "r6"} {
			lsl, err := encode("lsl r4, r5, " + n)
			Expect(err).NotTo(HaveOccurred())

			mov, err := encode("mov r4, r5, lsl " + n)
			Expect(err).NotTo(HaveOccurred())

			Expect(lsl).To(Equal(mov))
		}
	})

	It("should not modify the tokenized instruction", func() {
		ti, err := asm.Tokenize("lsl r1, #3")
		Expect(err).NotTo(HaveOccurred())

		first, err := asm.EncodeDataProcessing(ti)
		Expect(err).NotTo(HaveOccurred())
		Expect(ti.Mnemonic).To(Equal(asm.LSL))
		Expect(ti.Operands).To(Equal([]string{"r1", "#3"}))

		second, err := asm.EncodeDataProcessing(ti)
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(Equal(first))
	})

	It("should set S only for test instructions", func() {
		decoder := insts.NewDecoder()
		for line, s := range map[string]bool{
			"add r0, r1, r2": false,
			"mov r0, #1":     false,
			"lsl r0, #1":     false,
			"tst r0, r1":     true,
			"teq r0, r1":     true,
			"cmp r0, r1":     true,
		} {
			word, err := encode(line)
			Expect(err).NotTo(HaveOccurred())
			Expect(decoder.Decode(word).SetFlags).To(Equal(s), line)
		}
	})

	Describe("round trip", func() {
		DescribeTable("decode(encode(x)) keeps the fields",
			func(line string, op insts.Op, rd, rn uint8, s bool, operand2 string) {
				word, err := encode(line)
				Expect(err).NotTo(HaveOccurred())

				inst := insts.NewDecoder().Decode(word)
				Expect(inst.Op).To(Equal(op))
				Expect(inst.Rd).To(Equal(rd))
				Expect(inst.Rn).To(Equal(rn))
				Expect(inst.SetFlags).To(Equal(s))
				Expect(inst.Operand2().String()).To(Equal(operand2))
			},
			Entry(nil, "and r1, r2, #0x3FC", insts.OpAND, uint8(1), uint8(2), false, "#1020"),
			Entry(nil, "andeq r1, r2, r3", insts.OpAND, uint8(1), uint8(2), false, "r3"),
			Entry(nil, "eor r3, r4, r5, ror #8", insts.OpEOR, uint8(3), uint8(4), false, "r5, ror #8"),
			Entry(nil, "sub r6, r7, r8, asr r9", insts.OpSUB, uint8(6), uint8(7), false, "r8, asr r9"),
			Entry(nil, "rsb r10, r11, #255", insts.OpRSB, uint8(10), uint8(11), false, "#255"),
			Entry(nil, "add r12, r13, r14, lsr #32", insts.OpADD, uint8(12), uint8(13), false, "r14, lsr #32"),
			Entry(nil, "orr r0, r1, r2, rrx", insts.OpORR, uint8(0), uint8(1), false, "r2, rrx"),
			Entry(nil, "mov r2, #0xF000000F", insts.OpMOV, uint8(2), uint8(0), false, "#4026531855"),
			Entry(nil, "lsl r3, #5", insts.OpMOV, uint8(3), uint8(0), false, "r3, lsl #5"),
			Entry(nil, "tst r4, #1", insts.OpTST, uint8(0), uint8(4), true, "#1"),
			Entry(nil, "teq r5, r6", insts.OpTEQ, uint8(0), uint8(5), true, "r6"),
			Entry(nil, "cmp r7, r8, lsl r9", insts.OpCMP, uint8(0), uint8(7), true, "r8, lsl r9"),
		)
	})

	Describe("errors", func() {
		It("should report a malformed operand with its text", func() {
			_, err := encode("mov r0, #0x101")

			Expect(err).To(MatchError(asm.ErrMalformedOperand))
			Expect(err.Error()).To(ContainSubstring("#0x101"))
		})

		It("should reject a bad destination register", func() {
			_, err := encode("add r16, r1, r2")

			Expect(err).To(MatchError(asm.ErrMalformedOperand))
		})

		It("should reject a missing operand", func() {
			_, err := encode("add r0, r1")
			Expect(err).To(MatchError(asm.ErrOperandCount))

			_, err = encode("cmp r0")
			Expect(err).To(MatchError(asm.ErrOperandCount))

			_, err = encode("lsl r0")
			Expect(err).To(MatchError(asm.ErrOperandCount))
		})

		It("should reject an LSL amount out of range", func() {
			_, err := encode("lsl r0, #32")

			Expect(err).To(MatchError(asm.ErrMalformedOperand))
		})

		It("should reject an unknown mnemonic", func() {
			_, err := asm.EncodeDataProcessing(&asm.TokenizedInstruction{
				Mnemonic: asm.MnemonicUnknown,
			})

			Expect(err).To(MatchError(asm.ErrUnknownMnemonic))
		})
	})
})
