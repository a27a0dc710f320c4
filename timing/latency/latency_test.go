package latency_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/a32sim/insts"
	"github.com/sarchlab/a32sim/timing/latency"
)

var _ = Describe("Latency", func() {
	var (
		table   *latency.Table
		decoder *insts.Decoder
	)

	BeforeEach(func() {
		table = latency.NewTable()
		decoder = insts.NewDecoder()
	})

	Describe("Default Timing Values", func() {
		It("should have correct ALU latency", func() {
			Expect(table.Config().ALULatency).To(Equal(uint64(1)))
		})

		It("should have correct shift-by-register penalty", func() {
			Expect(table.Config().ShiftByRegisterPenalty).To(Equal(uint64(1)))
		})

		It("should have correct clock", func() {
			Expect(table.Config().ClockMHz).To(Equal(100.0))
		})
	})

	Describe("Data Processing Latencies", func() {
		It("should return 1 cycle for MOV immediate", func() {
			// MOV R1, #42
			inst := decoder.Decode(0xE3A0102A)
			Expect(table.GetLatency(inst)).To(Equal(uint64(1)))
		})

		It("should return 1 cycle for an immediate shift", func() {
			// MOV R2, R1, LSL #2
			inst := decoder.Decode(0xE1A02101)
			Expect(table.IsShiftByRegister(inst)).To(BeFalse())
			Expect(table.GetLatency(inst)).To(Equal(uint64(1)))
		})

		It("should add the penalty for a register shift", func() {
			// TST R2, R3, LSR R4
			inst := decoder.Decode(0xE1120433)
			Expect(table.IsShiftByRegister(inst)).To(BeTrue())
			Expect(table.GetLatency(inst)).To(Equal(uint64(2)))
		})

		It("should return the skipped latency", func() {
			Expect(table.GetSkippedLatency()).To(Equal(uint64(1)))
		})
	})

	Describe("Nil Instruction Handling", func() {
		It("should return 1 for nil instruction", func() {
			Expect(table.GetLatency(nil)).To(Equal(uint64(1)))
			Expect(table.IsShiftByRegister(nil)).To(BeFalse())
		})

		It("should return 1 for unknown instructions", func() {
			Expect(table.GetLatency(decoder.Decode(0xEA000000))).To(Equal(uint64(1)))
		})
	})

	Describe("Custom Configuration", func() {
		It("should use custom config values", func() {
			config := &latency.TimingConfig{
				ALULatency:             2,
				ShiftByRegisterPenalty: 3,
				SkippedLatency:         1,
				ClockMHz:               50,
			}
			customTable := latency.NewTableWithConfig(config)

			mov := decoder.Decode(0xE3A0102A)
			tst := decoder.Decode(0xE1120433)

			Expect(customTable.GetLatency(mov)).To(Equal(uint64(2)))
			Expect(customTable.GetLatency(tst)).To(Equal(uint64(5)))
		})
	})
})

var _ = Describe("TimingConfig", func() {
	Describe("Default Config", func() {
		It("should create valid default config", func() {
			config := latency.DefaultTimingConfig()
			Expect(config.Validate()).To(Succeed())
		})
	})

	Describe("Validation", func() {
		It("should reject zero ALU latency", func() {
			config := latency.DefaultTimingConfig()
			config.ALULatency = 0
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should reject zero skipped latency", func() {
			config := latency.DefaultTimingConfig()
			config.SkippedLatency = 0
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should reject a non-positive clock", func() {
			config := latency.DefaultTimingConfig()
			config.ClockMHz = 0
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should accept a zero shift penalty", func() {
			config := latency.DefaultTimingConfig()
			config.ShiftByRegisterPenalty = 0
			Expect(config.Validate()).To(Succeed())
		})

		It("should disable the icache by default", func() {
			config := latency.DefaultTimingConfig()
			Expect(config.HasICache()).To(BeFalse())
		})

		It("should accept a whole-set icache", func() {
			config := latency.DefaultTimingConfig()
			config.ICacheSize = 1024
			Expect(config.HasICache()).To(BeTrue())
			Expect(config.Validate()).To(Succeed())
			Expect(config.ICacheConfig().MissPenalty).To(Equal(uint64(10)))
		})

		It("should reject a ragged icache size", func() {
			config := latency.DefaultTimingConfig()
			config.ICacheSize = 1000
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should reject a negative icache size", func() {
			config := latency.DefaultTimingConfig()
			config.ICacheSize = -1
			Expect(config.Validate()).To(HaveOccurred())
		})
	})

	Describe("Clone", func() {
		It("should create independent copy", func() {
			original := latency.DefaultTimingConfig()
			clone := original.Clone()

			clone.ALULatency = 100

			Expect(original.ALULatency).To(Equal(uint64(1)))
			Expect(clone.ALULatency).To(Equal(uint64(100)))
		})
	})

	Describe("File Operations", func() {
		var tempDir string

		BeforeEach(func() {
			var err error
			tempDir, err = os.MkdirTemp("", "latency-test")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			_ = os.RemoveAll(tempDir)
		})

		It("should save and load config", func() {
			original := latency.DefaultTimingConfig()
			original.ALULatency = 5
			original.ClockMHz = 12.5

			path := filepath.Join(tempDir, "timing.json")
			Expect(original.SaveConfig(path)).To(Succeed())

			loaded, err := latency.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.ALULatency).To(Equal(uint64(5)))
			Expect(loaded.ClockMHz).To(Equal(12.5))
		})

		It("should keep defaults for missing fields", func() {
			path := filepath.Join(tempDir, "partial.json")
			err := os.WriteFile(path, []byte(`{"shift_by_register_penalty": 4}`), 0644)
			Expect(err).NotTo(HaveOccurred())

			loaded, err := latency.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.ShiftByRegisterPenalty).To(Equal(uint64(4)))
			Expect(loaded.ALULatency).To(Equal(uint64(1)))
		})

		It("should return error for non-existent file", func() {
			_, err := latency.LoadConfig("/nonexistent/path/timing.json")
			Expect(err).To(HaveOccurred())
		})

		It("should return error for invalid JSON", func() {
			path := filepath.Join(tempDir, "invalid.json")
			err := os.WriteFile(path, []byte("not valid json"), 0644)
			Expect(err).NotTo(HaveOccurred())

			_, err = latency.LoadConfig(path)
			Expect(err).To(HaveOccurred())
		})
	})
})
