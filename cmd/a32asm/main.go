// Package main provides the a32asm assembler.
// It translates data-processing assembly into a flat little-endian image.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/a32sim/asm"
	"github.com/sarchlab/a32sim/loader"
)

var (
	outPath = flag.String("o", "", "Output image path (default: input with .bin extension)")
	verbose = flag.Bool("v", false, "Verbose output (log every assembled word)")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: a32asm [options] <program.s>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		atexit.Exit(1)
	}

	setupLogging()

	srcPath := flag.Arg(0)
	dstPath := *outPath
	if dstPath == "" {
		dstPath = strings.TrimSuffix(srcPath, filepath.Ext(srcPath)) + ".bin"
	}

	if err := assemble(srcPath, dstPath); err != nil {
		slog.Error("assembly failed", "src", srcPath, "err", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func assemble(srcPath, dstPath string) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	atexit.Register(func() { _ = f.Close() })

	words, err := asm.NewAssembler(asm.WithLogger(slog.Default())).Assemble(f)
	if err != nil {
		return err
	}

	if err := loader.Save(dstPath, words); err != nil {
		return err
	}

	slog.Info("assembled", "src", srcPath, "out", dstPath, "words", len(words))

	return nil
}

func setupLogging() {
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
