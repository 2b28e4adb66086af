package x86

// Cursor is a forward-only byte iterator shared by the file-based
// disassembly driver and the memory-based simulation driver: decoding a
// stream or decoding at IP are both just "consume bytes from a []byte view"
// to every decoder in this package.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor wraps data for decoding starting at its first byte.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Pos returns the number of bytes consumed so far.
func (c *Cursor) Pos() int {
	return c.pos
}

// Next consumes and returns the next byte, or reports exhaustion.
func (c *Cursor) Next() (byte, bool) {
	if c.pos >= len(c.data) {
		return 0, false
	}
	b := c.data[c.pos]
	c.pos++
	return b, true
}

// Exhausted reports whether the cursor has no more bytes.
func (c *Cursor) Exhausted() bool {
	return c.pos >= len(c.data)
}

// modRM is the decoded form of a ModR/M byte: mode selects the addressing
// form, reg is the register/op-extension field, rm is the r/m field.
type modRMMode uint8

const (
	modMemoryNoDisp modRMMode = iota
	modMemoryDisp8
	modMemoryDisp16
	modRegister
)

type modRM struct {
	mode modRMMode
	reg  uint8
	rm   uint8
}

func decodeModRM(b byte) modRM {
	return modRM{
		mode: modRMMode(b >> 6),
		reg:  (b >> 3) & 0b111,
		rm:   b & 0b111,
	}
}

// next reads the next byte from the cursor or returns a decode error
// describing what it was trying to read.
func next(c *Cursor, what string) (byte, error) {
	b, ok := c.Next()
	if !ok {
		return 0, newDecodeError(ErrCursorExhausted, "%s: cursor exhausted at byte %d", what, c.pos)
	}
	return b, nil
}

// nextWord reads a little-endian 16-bit word.
func nextWord(c *Cursor, what string) (int16, error) {
	lo, err := next(c, what)
	if err != nil {
		return 0, err
	}
	hi, err := next(c, what)
	if err != nil {
		return 0, err
	}
	return int16(uint16(hi)<<8 | uint16(lo)), nil
}

// decodeRegOrMem decodes the r/m operand of a ModR/M byte for a given
// operand width, consuming any displacement or direct-address bytes that
// follow.
func decodeRegOrMem(c *Cursor, m modRM, width Width) (RegOrMem, error) {
	if m.mode == modRegister {
		return regOperand(decodeReg(m.rm, width)), nil
	}

	if m.mode == modMemoryNoDisp && m.rm == 0b110 {
		disp, err := nextWord(c, "direct address")
		if err != nil {
			return RegOrMem{}, err
		}
		return memOperand(EffectiveAddress{Base: BaseDirect, Displacement: disp}), nil
	}

	base := effectiveAddressBases[m.rm]

	var disp int16
	switch m.mode {
	case modMemoryNoDisp:
		disp = 0
	case modMemoryDisp8:
		b, err := next(c, "8-bit displacement")
		if err != nil {
			return RegOrMem{}, err
		}
		disp = signExtendByte(b)
	case modMemoryDisp16:
		w, err := nextWord(c, "16-bit displacement")
		if err != nil {
			return RegOrMem{}, err
		}
		disp = w
	}

	return memOperand(EffectiveAddress{Base: base, Displacement: disp}), nil
}
