package emu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// DefaultMemorySize is the size of the emulator's memory when no size is
// configured.
const DefaultMemorySize = 64 * 1024

// ErrMemorySize is returned for a memory size that is zero or does not fit
// the 32-bit address space.
var ErrMemorySize = errors.New("invalid memory size")

// MemorySize checks a requested memory size in bytes and narrows it to the
// 32-bit size NewMemory takes.
func MemorySize(n uint64) (uint32, error) {
	if n == 0 || n > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d bytes (want 1..%d)", ErrMemorySize, n, uint64(math.MaxUint32))
	}
	return uint32(n), nil
}

// Memory is a flat, byte-addressed, little-endian memory.
type Memory struct {
	data []byte
}

// NewMemory creates a zero-filled memory of size bytes.
func NewMemory(size uint32) *Memory {
	return &Memory{data: make([]byte, size)}
}

// Size returns the memory size in bytes.
func (m *Memory) Size() uint32 {
	return uint32(len(m.data))
}

// Contains reports whether the n bytes starting at addr are inside memory.
func (m *Memory) Contains(addr, n uint32) bool {
	return uint64(addr)+uint64(n) <= uint64(len(m.data))
}

// Read8 reads a byte. It panics if addr is outside memory.
func (m *Memory) Read8(addr uint32) byte {
	m.check(addr, 1)
	return m.data[addr]
}

// Write8 writes a byte. It panics if addr is outside memory.
func (m *Memory) Write8(addr uint32, value byte) {
	m.check(addr, 1)
	m.data[addr] = value
}

// Read32 reads a little-endian word. It panics if the word is outside
// memory.
func (m *Memory) Read32(addr uint32) uint32 {
	m.check(addr, 4)
	return binary.LittleEndian.Uint32(m.data[addr:])
}

// Write32 writes a little-endian word. It panics if the word is outside
// memory.
func (m *Memory) Write32(addr uint32, value uint32) {
	m.check(addr, 4)
	binary.LittleEndian.PutUint32(m.data[addr:], value)
}

// LoadProgram copies program into memory starting at addr.
func (m *Memory) LoadProgram(addr uint32, program []byte) error {
	if !m.Contains(addr, uint32(len(program))) {
		return fmt.Errorf("program of %d bytes at 0x%X does not fit in %d bytes of memory",
			len(program), addr, len(m.data))
	}

	copy(m.data[addr:], program)

	return nil
}

// LoadWords stores words in consecutive little-endian slots starting at addr.
func (m *Memory) LoadWords(addr uint32, words []uint32) error {
	if !m.Contains(addr, 4*uint32(len(words))) {
		return fmt.Errorf("%d words at 0x%X do not fit in %d bytes of memory",
			len(words), addr, len(m.data))
	}

	for i, w := range words {
		m.Write32(addr+4*uint32(i), w)
	}

	return nil
}

// Word is an address and the word stored there.
type Word struct {
	Addr  uint32
	Value uint32
}

// NonZeroWords returns every aligned word whose value is not zero, in
// address order.
func (m *Memory) NonZeroWords() []Word {
	var words []Word
	for addr := uint32(0); m.Contains(addr, 4); addr += 4 {
		if v := m.Read32(addr); v != 0 {
			words = append(words, Word{Addr: addr, Value: v})
		}
	}
	return words
}

func (m *Memory) check(addr, n uint32) {
	if !m.Contains(addr, n) {
		panic(fmt.Sprintf("emu: access of %d bytes at 0x%X outside %d bytes of memory",
			n, addr, len(m.data)))
	}
}
