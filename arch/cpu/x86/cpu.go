package x86

// CPU is the register file and status word driving the execution engine.
// Segment registers are carried for completeness but, per the
// specification's non-goals, never participate in address calculation —
// addressing is flat over a 1 MiB Memory.
type CPU struct {
	AX, BX, CX, DX uint16
	SP, BP, SI, DI uint16

	ES, CS, SS, DS uint16

	Flags Flags

	// IP is an unsigned offset into Memory, not a 16-bit register relative
	// to CS — the flat-addressing model this package implements has no
	// segment:offset instruction pointer.
	IP uint32

	opts   Options
	memory *Memory
	trace  *trace // non-nil only during Step, collects register/flag deltas
}

// New creates a CPU over memory with every register zeroed except those
// overridden by options, matching the "CPU state is created zeroed"
// lifecycle rule.
func New(memory *Memory, options ...Option) (*CPU, error) {
	if memory == nil {
		return nil, ErrNilMemory
	}

	opts := NewOptions(options...)
	c := &CPU{
		CS:     opts.initialCS,
		DS:     opts.initialDS,
		ES:     opts.initialES,
		SS:     opts.initialSS,
		SP:     opts.initialSP,
		IP:     opts.initialIP,
		opts:   opts,
		memory: memory,
	}
	return c, nil
}

// Memory returns the CPU's memory.
func (c *CPU) Memory() *Memory {
	return c.memory
}

// generalRegister returns a pointer to the 16-bit backing store for reg,
// used by ReadRegister/WriteRegister to implement half-byte preservation.
func (c *CPU) generalRegister(reg Register) *uint16 {
	switch reg {
	case RegA:
		return &c.AX
	case RegB:
		return &c.BX
	case RegC:
		return &c.CX
	case RegD:
		return &c.DX
	case RegSP:
		return &c.SP
	case RegBP:
		return &c.BP
	case RegSI:
		return &c.SI
	case RegDI:
		return &c.DI
	default:
		panic("x86: unknown register")
	}
}

// ReadRegister returns the value a RegisterAccess denotes.
func (c *CPU) ReadRegister(ra RegisterAccess) uint16 {
	v := *c.generalRegister(ra.Reg)
	if ra.Width == Word {
		return v
	}
	if ra.Offset == 0 {
		return v & 0x00FF
	}
	return v >> 8
}

// WriteRegister stores value into the register/half a RegisterAccess
// denotes. Byte writes to A/B/C/D preserve the complementary half: writing
// the high byte is (orig & 0x00FF) | (value << 8), writing the low byte is
// (orig & 0xFF00) | (value & 0x00FF).
func (c *CPU) WriteRegister(ra RegisterAccess, value uint16) {
	p := c.generalRegister(ra.Reg)
	orig := *p

	var next uint16
	switch {
	case ra.Width == Word:
		next = value
	case ra.Offset == 0:
		next = (orig & 0xFF00) | (value & 0x00FF)
	default:
		next = (orig & 0x00FF) | (value << 8)
	}

	*p = next
	if c.trace != nil && next != orig {
		c.trace.writeRegister(ra.Reg, orig, next)
	}
}

// ReadSegment returns the value of a segment register.
func (c *CPU) ReadSegment(seg SegmentRegister) uint16 {
	switch seg {
	case SegES:
		return c.ES
	case SegCS:
		return c.CS
	case SegSS:
		return c.SS
	default:
		return c.DS
	}
}

// WriteSegment stores value into a segment register.
func (c *CPU) WriteSegment(seg SegmentRegister, value uint16) {
	orig := c.ReadSegment(seg)
	switch seg {
	case SegES:
		c.ES = value
	case SegCS:
		c.CS = value
	case SegSS:
		c.SS = value
	default:
		c.DS = value
	}
	if c.trace != nil && value != orig {
		c.trace.writeSegment(seg, orig, value)
	}
}

// EffectiveAddr computes the linear memory offset an EffectiveAddress
// denotes: for Direct, the displacement itself; otherwise the sum of the
// selected base registers plus the displacement, wrapping as a 16-bit
// signed computation before being treated as an unsigned offset.
func (c *CPU) EffectiveAddr(ea EffectiveAddress) uint32 {
	if ea.Base == BaseDirect {
		return uint32(uint16(ea.Displacement))
	}

	var base uint16
	switch ea.Base {
	case BaseBxSi:
		base = c.BX + c.SI
	case BaseBxDi:
		base = c.BX + c.DI
	case BaseBpSi:
		base = c.BP + c.SI
	case BaseBpDi:
		base = c.BP + c.DI
	case BaseSi:
		base = c.SI
	case BaseDi:
		base = c.DI
	case BaseBp:
		base = c.BP
	case BaseBx:
		base = c.BX
	}
	return uint32(base + uint16(ea.Displacement))
}
