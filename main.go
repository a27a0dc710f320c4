// Package main provides the entry point for A32Sim.
// A32Sim is an assembler and emulator for the A32 data-processing
// instructions, with a clocked mode built on Akita.
//
// For the full CLIs, use: go run ./cmd/a32asm and go run ./cmd/a32emu
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("A32Sim - A32 data-processing assembler and emulator")
	fmt.Println("Built on Akita simulation framework")
	fmt.Println("")
	fmt.Println("Usage: a32asm [options] <program.s>")
	fmt.Println("  -o         Output image path")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Usage: a32emu [options] <program.bin>")
	fmt.Println("  -timing    Enable clocked timing mode")
	fmt.Println("  -config    Path to timing configuration JSON file")
	fmt.Println("  -max       Maximum instructions to execute")
	fmt.Println("  -mem       Memory size in bytes")
	fmt.Println("  -v         Verbose output")
	fmt.Println("  -trace     Log every retired instruction")
	fmt.Println("")
	fmt.Println("Usage: benchmark [-csv|-json] [-no-icache] [-config file]")
	fmt.Println("Usage: profile [-timing] [-cpuprofile file] <program.bin>")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/a32asm' or 'go run ./cmd/a32emu' for the full CLIs.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use the commands under ./cmd instead.")
	}
}
