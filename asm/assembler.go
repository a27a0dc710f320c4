package asm

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LineError reports a failure to assemble one source line.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Assembler translates assembly source into machine words.
type Assembler struct {
	logger *slog.Logger
}

// AssemblerOption is a functional option for configuring the Assembler.
type AssemblerOption func(*Assembler)

// WithLogger sets the logger used for per-line diagnostics.
func WithLogger(logger *slog.Logger) AssemblerOption {
	return func(a *Assembler) {
		a.logger = logger
	}
}

// NewAssembler creates a new Assembler.
func NewAssembler(opts ...AssemblerOption) *Assembler {
	a := &Assembler{logger: slog.Default()}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Assemble reads source from r, one statement per line, and returns the
// assembled words in program order. Comments start with ';', '@' or "//".
// Assembly stops at the first bad line.
func (a *Assembler) Assemble(r io.Reader) ([]uint32, error) {
	var words []uint32

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		text := stripComment(scanner.Text())
		if text == "" {
			continue
		}

		word, err := a.AssembleLine(text)
		if err != nil {
			return nil, &LineError{Line: lineno, Text: text, Err: err}
		}

		a.logger.Debug("assembled",
			"line", lineno,
			"addr", fmt.Sprintf("0x%04X", 4*len(words)),
			"word", fmt.Sprintf("0x%08X", word),
			"src", text,
		)

		words = append(words, word)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	return words, nil
}

// AssembleLine assembles a single comment-free statement.
func (a *Assembler) AssembleLine(text string) (uint32, error) {
	ti, err := Tokenize(text)
	if err != nil {
		return 0, err
	}

	return EncodeDataProcessing(ti)
}

func stripComment(line string) string {
	for _, marker := range []string{";", "@", "//"} {
		if i := strings.Index(line, marker); i >= 0 {
			line = line[:i]
		}
	}
	return strings.TrimSpace(line)
}
