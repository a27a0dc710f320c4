package emu

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// DumpState writes the register file and every non-zero memory word to w as
// tables.
func DumpState(w io.Writer, regFile *RegFile, memory *Memory) error {
	regTable := table.NewWriter()
	regTable.SetTitle("Registers")
	regTable.AppendHeader(table.Row{"Reg", "Hex", "Signed", "Reg", "Hex", "Signed"})

	for i := 0; i < NumRegs/2; i++ {
		lo, hi := uint8(i), uint8(i+NumRegs/2)
		regTable.AppendRow(table.Row{
			regName(lo), fmt.Sprintf("0x%08X", regFile.R[lo]), int32(regFile.R[lo]),
			regName(hi), fmt.Sprintf("0x%08X", regFile.R[hi]), int32(regFile.R[hi]),
		})
	}

	regTable.AppendSeparator()
	regTable.AppendRow(table.Row{
		"CPSR", fmt.Sprintf("0x%08X", regFile.CPSR), regFile.FlagString(),
		"", "", "",
	})

	if _, err := fmt.Fprintln(w, regTable.Render()); err != nil {
		return err
	}

	words := memory.NonZeroWords()
	if len(words) == 0 {
		_, err := fmt.Fprintln(w, "Memory: all zero")
		return err
	}

	memTable := table.NewWriter()
	memTable.SetTitle("Non-zero memory")
	memTable.AppendHeader(table.Row{"Address", "Value"})
	for _, word := range words {
		memTable.AppendRow(table.Row{
			fmt.Sprintf("0x%08X", word.Addr),
			fmt.Sprintf("0x%08X", word.Value),
		})
	}

	_, err := fmt.Fprintln(w, memTable.Render())

	return err
}

func regName(r uint8) string {
	switch r {
	case RegSP:
		return "sp"
	case RegLR:
		return "lr"
	case RegPC:
		return "pc"
	default:
		return fmt.Sprintf("r%d", r)
	}
}
