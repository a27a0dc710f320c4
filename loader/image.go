// Package loader reads and writes flat program images.
//
// An image is a sequence of 32-bit little-endian instruction words with no
// header. The first word is loaded at address 0, which is also the entry
// point.
package loader

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrMisaligned is returned when an image length is not a multiple of 4.
var ErrMisaligned = errors.New("image length is not a multiple of 4")

// Program represents a loaded image ready for execution.
type Program struct {
	// EntryPoint is the address where execution should begin.
	EntryPoint uint32
	// Words holds the instruction words in address order.
	Words []uint32
}

// Bytes returns the image bytes of the program.
func (p *Program) Bytes() []byte {
	buf := make([]byte, 4*len(p.Words))
	for i, w := range p.Words {
		binary.LittleEndian.PutUint32(buf[4*i:], w)
	}
	return buf
}

// Load reads the image file at path.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	prog, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	return prog, nil
}

// Read reads an image from r.
func Read(r io.Reader) (*Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrMisaligned, len(data))
	}

	prog := &Program{Words: make([]uint32, len(data)/4)}
	for i := range prog.Words {
		prog.Words[i] = binary.LittleEndian.Uint32(data[4*i:])
	}

	return prog, nil
}

// Write writes words to w as an image.
func Write(w io.Writer, words []uint32) error {
	prog := &Program{Words: words}
	if _, err := w.Write(prog.Bytes()); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}

// Save writes words to the image file at path, replacing it if it exists.
func Save(path string, words []uint32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}

	if err := Write(f, words); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close image: %w", err)
	}

	return nil
}
