package x86

import (
	"fmt"
	"io"

	"github.com/retroenv/sim8086/log"
)

// Memory is the fixed 1 MiB byte-addressed flat memory the execution engine
// reads and writes. Segmented addressing (segment:offset translation) is a
// non-goal — every address here is already a flat unsigned offset.
type Memory struct {
	data       []uint8
	logger     *log.Logger
	loadedHigh uint32 // one past the highest offset written by LoadData
}

// Size is the fixed memory size mandated by the specification.
const Size = 1024 * 1024

// NewMemory creates a zero-initialised 1 MiB memory.
func NewMemory(logger *log.Logger) *Memory {
	return &Memory{
		data:   make([]uint8, Size),
		logger: logger,
	}
}

// Data returns a copy of the full memory contents.
func (m *Memory) Data() []uint8 {
	data := make([]uint8, len(m.data))
	copy(data, m.data)
	return data
}

// Bytes returns a slice view of memory starting at addr and running to the
// end of the most recently loaded program, for use as a Cursor's backing
// data during simulation decoding. It aliases the underlying array; callers
// must not retain it across a write. Bounding it to the loaded program
// rather than the full 1 MiB buffer ensures a cursor that runs off the end
// of the program sees an exhausted cursor instead of zero-filled memory.
func (m *Memory) Bytes(addr uint32) []byte {
	if addr >= m.loadedHigh {
		return nil
	}
	return m.data[addr:m.loadedHigh]
}

// Read8 reads a byte from addr.
func (m *Memory) Read8(addr uint32) uint8 {
	if addr >= uint32(len(m.data)) {
		if m.logger != nil {
			m.logger.Debug("memory read beyond bounds", log.String("address", fmt.Sprintf("0x%06X", addr)))
		}
		return 0
	}
	return m.data[addr]
}

// Read16 reads a little-endian word from addr.
func (m *Memory) Read16(addr uint32) uint16 {
	low := uint16(m.Read8(addr))
	high := uint16(m.Read8(addr + 1))
	return high<<8 | low
}

// Write8 writes a byte to addr.
func (m *Memory) Write8(addr uint32, value uint8) {
	if addr >= uint32(len(m.data)) {
		if m.logger != nil {
			m.logger.Debug("memory write beyond bounds", log.String("address", fmt.Sprintf("0x%06X", addr)))
		}
		return
	}
	m.data[addr] = value
}

// Write16 writes a little-endian word to addr.
func (m *Memory) Write16(addr uint32, value uint16) {
	m.Write8(addr, uint8(value))
	m.Write8(addr+1, uint8(value>>8))
}

// LoadData copies data into memory starting at addr.
func (m *Memory) LoadData(addr uint32, data []uint8) error {
	if uint64(addr)+uint64(len(data)) > uint64(len(m.data)) {
		return fmt.Errorf("load data exceeds memory bounds: addr=0x%06X, len=%d", addr, len(data))
	}
	copy(m.data[addr:], data)
	if high := addr + uint32(len(data)); high > m.loadedHigh {
		m.loadedHigh = high
	}
	if m.logger != nil {
		m.logger.Debug("loaded data into memory", log.String("address", fmt.Sprintf("0x%06X", addr)), log.Int("size", len(data)))
	}
	return nil
}

// WriteRaw writes the full memory image to w as raw bytes, used for the
// simulator's sibling `.data` dump.
func (m *Memory) WriteRaw(w io.Writer) error {
	_, err := w.Write(m.data)
	return err
}
