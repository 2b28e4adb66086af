package x86

import (
	"testing"

	"github.com/retroenv/sim8086/assert"
)

func TestExpandPattern_AllConcreteBits(t *testing.T) {
	bytes := expandPattern("1000_1000")
	assert.Len(t, bytes, 1)
	assert.Equal(t, byte(0x88), bytes[0])
}

func TestExpandPattern_OnePlaceholder(t *testing.T) {
	bytes := expandPattern("1000_100w")
	assert.Len(t, bytes, 2)

	seen := map[byte]bool{}
	for _, b := range bytes {
		seen[b] = true
	}
	assert.True(t, seen[0x88])
	assert.True(t, seen[0x89])
}

func TestExpandPattern_MultiplePlaceholders(t *testing.T) {
	// "00xx_x0dw" has 5 placeholders -> 32 concrete bytes.
	bytes := expandPattern("00xx_x0dw")
	assert.Len(t, bytes, 32)
}

func TestOpcodeTable_RegistrationOrderDoesNotMatter(t *testing.T) {
	d1 := func(byte, *Cursor) (Instruction, error) { return Instruction{Kind: KindMovToFromRegMem}, nil }
	d2 := func(byte, *Cursor) (Instruction, error) { return Instruction{Kind: KindImmediateMovReg}, nil }

	a := NewOpcodeTable()
	a.Register("1000_10dw", d1)
	a.Register("1011_wreg", d2)

	b := NewOpcodeTable()
	b.Register("1011_wreg", d2)
	b.Register("1000_10dw", d1)

	for opcode := 0; opcode < 256; opcode++ {
		da, oka := a.Lookup(byte(opcode))
		db, okb := b.Lookup(byte(opcode))
		assert.Equal(t, oka, okb)
		if oka {
			insA, _ := da(byte(opcode), NewCursor(nil))
			insB, _ := db(byte(opcode), NewCursor(nil))
			assert.Equal(t, insA.Kind, insB.Kind)
		}
	}
}

func TestOpcodeTable_LookupMiss(t *testing.T) {
	table := NewOpcodeTable()
	_, ok := table.Lookup(0xF4)
	assert.False(t, ok)
}

func TestOpcodeTable_ConflictingRegistrationPanics(t *testing.T) {
	table := NewOpcodeTable()
	table.Register("1000_1000", func(byte, *Cursor) (Instruction, error) { return Instruction{}, nil })

	assert.Panics(t, func() {
		table.Register("1000_10d0", func(byte, *Cursor) (Instruction, error) { return Instruction{}, nil })
	})
}
