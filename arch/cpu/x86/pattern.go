package x86

import "fmt"

// Decoder consumes bytes from a cursor, given the already-consumed leading
// opcode byte, and produces an Instruction.
type Decoder func(opcode byte, c *Cursor) (Instruction, error)

// OpcodeTable maps every possible leading byte to the Decoder responsible
// for it, built by expanding wildcard bit-patterns at registration time
// (hoisted to table construction rather than expanded on every lookup).
type OpcodeTable struct {
	decoders [256]Decoder
}

// NewOpcodeTable builds an empty table.
func NewOpcodeTable() *OpcodeTable {
	return &OpcodeTable{}
}

// Register expands pattern (e.g. "1000_10dw") to every concrete byte it
// matches and registers d for each. pattern characters are '0', '1', '_'
// (ignored, purely for readability) or any other letter, treated as a
// don't-care placeholder. Panics if any concrete byte the pattern expands
// to already has a decoder registered — that is a programming error in the
// table, not a runtime condition.
func (t *OpcodeTable) Register(pattern string, d Decoder) {
	for _, b := range expandPattern(pattern) {
		if t.decoders[b] != nil {
			panic(fmt.Sprintf("x86: opcode table conflict registering pattern %q at byte 0x%02X", pattern, b))
		}
		t.decoders[b] = d
	}
}

// Lookup returns the decoder registered for opcode, if any.
func (t *OpcodeTable) Lookup(opcode byte) (Decoder, bool) {
	d := t.decoders[opcode]
	return d, d != nil
}

// expandPattern substitutes 0 and 1 for every placeholder character in
// pattern and returns every resulting concrete byte value.
func expandPattern(pattern string) []byte {
	bits := make([]byte, 0, 8)
	for _, r := range pattern {
		switch r {
		case '_':
			continue
		case '0', '1':
			bits = append(bits, byte(r-'0'))
		default:
			bits = append(bits, 0xFF) // placeholder marker
		}
	}
	if len(bits) != 8 {
		panic(fmt.Sprintf("x86: opcode pattern %q does not describe exactly 8 bits", pattern))
	}

	results := []byte{0}
	for _, bit := range bits {
		next := make([]byte, 0, len(results)*2)
		for _, partial := range results {
			partial <<= 1
			if bit == 0xFF {
				next = append(next, partial, partial|1)
			} else {
				next = append(next, partial|bit)
			}
		}
		results = next
	}
	return results
}
