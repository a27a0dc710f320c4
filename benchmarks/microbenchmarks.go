package benchmarks

import (
	"fmt"
	"strings"

	"github.com/sarchlab/a32sim/emu"
)

// halt is the all-zero word that stops the emulator.
const halt = "andeq r0, r0, r0"

// GetMicrobenchmarks returns the standard set of microbenchmarks.
// Each benchmark targets a specific core characteristic.
func GetMicrobenchmarks() []Benchmark {
	return []Benchmark{
		arithmeticSequential(),
		dependencyChain(),
		registerShift(),
		conditionalSkip(),
		countedLoop(),
		mixedOperations(),
	}
}

// GetCoreBenchmarks returns a minimal set of benchmarks for quick validation.
func GetCoreBenchmarks() []Benchmark {
	return []Benchmark{
		countedLoop(),
		registerShift(),
		conditionalSkip(),
	}
}

// 1. Arithmetic Sequential - independent operations across five registers
func arithmeticSequential() Benchmark {
	var b strings.Builder
	for i := 0; i < 20; i++ {
		r := i % 5
		fmt.Fprintf(&b, "add r%d, r%d, #1\n", r, r)
	}
	b.WriteString(halt + "\n")

	return Benchmark{
		Name:        "arithmetic_sequential",
		Description: "20 independent ADD operations - measures ALU throughput",
		Source:      b.String(),
		ExpectedR0:  4,
	}
}

// 2. Dependency Chain - every instruction reads the previous result
func dependencyChain() Benchmark {
	return Benchmark{
		Name:        "dependency_chain",
		Description: "20 dependent ADDs (r0 = r0 + 1) - measures back-to-back latency",
		Source:      repeat("add r0, r0, #1", 20) + halt + "\n",
		ExpectedR0:  20,
	}
}

// 3. Register Shift - shift amounts read from a register
func registerShift() Benchmark {
	return Benchmark{
		Name:        "register_shift",
		Description: "8 ADDs with a register-specified shift - measures the shift penalty",
		Setup: func(regFile *emu.RegFile) {
			regFile.WriteReg(1, 1)
			regFile.WriteReg(2, 3)
		},
		Source:     repeat("add r0, r0, r1, lsl r2", 8) + halt + "\n",
		ExpectedR0: 64,
	}
}

// 4. Conditional Skip - condition-failed instructions still occupy the core
func conditionalSkip() Benchmark {
	return Benchmark{
		Name:        "conditional_skip",
		Description: "8 ANDEQs after a failing compare - measures skipped latency",
		Source: "mov r0, #7\n" +
			"cmp r0, #1\n" +
			repeat("andeq r0, r2, #0", 8) +
			halt + "\n",
		ExpectedR0: 7,
	}
}

// 5. Counted Loop - a backward branch through PC, exited by a conditional
// write to PC
func countedLoop() Benchmark {
	return Benchmark{
		Name:        "counted_loop",
		Description: "10 iterations of a 6-instruction loop - measures loop overhead",
		Source: `
			mov r1, #10
			mov r0, #0
			mov r3, #0xFF
			add r0, r0, #3        ; 0x0C: loop body
			sub r1, r1, #1
			cmp r1, #0
			mov r4, #0x24
			andeq pc, r4, r3      ; exit to 0x24
			sub pc, pc, #0x1C     ; back to 0x0C
			andeq r0, r0, r0      ; 0x24
		`,
		ExpectedR0: 30,
	}
}

// 6. Mixed Operations - every operation of the data-processing family
func mixedOperations() Benchmark {
	return Benchmark{
		Name:        "mixed_operations",
		Description: "Logical, arithmetic, test and shift operations interleaved",
		Source: `
			mov r1, #0xF0
			mov r2, #0x0F
			orr r0, r1, r2        ; 0xFF
			eor r0, r0, #0x0F     ; 0xF0
			rsb r3, r2, #0x20     ; 0x11
			add r0, r0, r3        ; 0x101
			sub r0, r0, #0        ; 0x101
			tst r0, #1
			teq r0, r0
			andeq r0, r0, #0xFF   ; 0x01
			lsl r0, r0, #4        ; 0x10
			mov r0, r0, lsr #1    ; 0x08
			andeq r0, r0, r0
		`,
		ExpectedR0: 8,
	}
}

func repeat(line string, n int) string {
	return strings.Repeat(line+"\n", n)
}
