package x86

import "fmt"

// Register identifies an 8086 general purpose register.
type Register uint8

// Supported general purpose registers.
const (
	RegA Register = iota
	RegB
	RegC
	RegD
	RegSP
	RegBP
	RegSI
	RegDI
)

func (r Register) String() string {
	switch r {
	case RegA:
		return "a"
	case RegB:
		return "b"
	case RegC:
		return "c"
	case RegD:
		return "d"
	case RegSP:
		return "sp"
	case RegBP:
		return "bp"
	case RegSI:
		return "si"
	case RegDI:
		return "di"
	default:
		return "?"
	}
}

// Width is the operand size of a register access or memory transfer.
type Width uint8

const (
	Byte Width = iota
	Word
)

func (w Width) String() string {
	if w == Byte {
		return "byte"
	}
	return "word"
}

// RegisterAccess is the (reg, width, offset) triple described in §3 of the
// specification. For SP/BP/SI/DI, Width is always Word and Offset is 0. For
// A/B/C/D, a byte access with Offset 0 selects the low half, Offset 1 the
// high half.
type RegisterAccess struct {
	Reg    Register
	Width  Width
	Offset uint8
}

func (r RegisterAccess) String() string {
	switch r.Reg {
	case RegA, RegB, RegC, RegD:
		letter := r.Reg.String()
		if r.Width == Word {
			return letter + "x"
		}
		if r.Offset == 0 {
			return letter + "l"
		}
		return letter + "h"
	default:
		return r.Reg.String()
	}
}

// decodeReg maps a 3-bit ModR/M register field to a RegisterAccess, following
// the standard 8086 encoding order (not alphabetical, not enum-declaration
// order): byte 0..7 -> al cl dl bl ah ch dh bh, word 0..7 -> ax cx dx bx sp bp
// si di.
func decodeReg(idx uint8, width Width) RegisterAccess {
	if width == Word {
		regs := [8]Register{RegA, RegC, RegD, RegB, RegSP, RegBP, RegSI, RegDI}
		return RegisterAccess{Reg: regs[idx&7], Width: Word}
	}
	regs := [8]Register{RegA, RegC, RegD, RegB, RegA, RegC, RegD, RegB}
	offsets := [8]uint8{0, 0, 0, 0, 1, 1, 1, 1}
	return RegisterAccess{Reg: regs[idx&7], Width: Byte, Offset: offsets[idx&7]}
}

// EffectiveAddressBase selects the registers summed to form an effective
// address, or Direct for a bare 16-bit displacement.
type EffectiveAddressBase uint8

const (
	BaseDirect EffectiveAddressBase = iota
	BaseBxSi
	BaseBxDi
	BaseBpSi
	BaseBpDi
	BaseSi
	BaseDi
	BaseBp
	BaseBx
)

func (b EffectiveAddressBase) String() string {
	switch b {
	case BaseBxSi:
		return "bx + si"
	case BaseBxDi:
		return "bx + di"
	case BaseBpSi:
		return "bp + si"
	case BaseBpDi:
		return "bp + di"
	case BaseSi:
		return "si"
	case BaseDi:
		return "di"
	case BaseBp:
		return "bp"
	case BaseBx:
		return "bx"
	default:
		return "?"
	}
}

// effectiveAddressBases maps a ModR/M r/m field (0..7, mod != register) to
// its base selector.
var effectiveAddressBases = [8]EffectiveAddressBase{
	BaseBxSi, BaseBxDi, BaseBpSi, BaseBpDi, BaseSi, BaseDi, BaseBp, BaseBx,
}

// EffectiveAddress is a base selector plus a signed displacement. For
// BaseDirect, Displacement is the absolute offset and no base register
// participates.
type EffectiveAddress struct {
	Base         EffectiveAddressBase
	Displacement int16
}

func (e EffectiveAddress) String() string {
	if e.Base == BaseDirect {
		return fmt.Sprintf("[%d]", e.Displacement)
	}
	switch {
	case e.Displacement == 0:
		return fmt.Sprintf("[%s]", e.Base)
	case e.Displacement == -256:
		return fmt.Sprintf("[%s - 256]", e.Base)
	case e.Displacement > 0:
		return fmt.Sprintf("[%s + %d]", e.Base, e.Displacement)
	default:
		return fmt.Sprintf("[%s - %d]", e.Base, -e.Displacement)
	}
}

// RegOrMem is the discriminated union of a register access and an effective
// address, matching the 8086 ModR/M r/m field's two interpretations.
type RegOrMem struct {
	IsMemory bool
	Reg      RegisterAccess
	Mem      EffectiveAddress
}

func regOperand(r RegisterAccess) RegOrMem { return RegOrMem{Reg: r} }
func memOperand(m EffectiveAddress) RegOrMem {
	return RegOrMem{IsMemory: true, Mem: m}
}

func (r RegOrMem) String() string {
	if r.IsMemory {
		return r.Mem.String()
	}
	return r.Reg.String()
}

// Direction indicates which side of a (reg, r/m) operand pair is the
// destination.
type Direction uint8

const (
	ToRegister Direction = iota
	FromRegister
)

// SegmentRegister identifies one of the four 8086 segment registers. Segment
// registers are carried by decoded instructions and CPU state but never
// participate in address calculation (flat 20-bit addressing, per the
// specification's non-goals).
type SegmentRegister uint8

const (
	SegES SegmentRegister = iota
	SegCS
	SegSS
	SegDS
)

func (s SegmentRegister) String() string {
	switch s {
	case SegES:
		return "es"
	case SegCS:
		return "cs"
	case SegSS:
		return "ss"
	case SegDS:
		return "ds"
	default:
		return "?"
	}
}

// ArithmeticOp is one of the five arithmetic instruction families sharing a
// decoding and flag-calculation shape.
type ArithmeticOp uint8

const (
	Add ArithmeticOp = iota
	Adc
	Sub
	Sbb
	Cmp
)

func (op ArithmeticOp) String() string {
	switch op {
	case Add:
		return "add"
	case Adc:
		return "adc"
	case Sub:
		return "sub"
	case Sbb:
		return "sbb"
	case Cmp:
		return "cmp"
	default:
		return "?"
	}
}

// arithmeticOps maps a ModR/M reg-field-derived 3-bit op selector to an
// ArithmeticOp. The unmapped slots (001=or, 100=and, 110=xor) are logical
// rather than arithmetic operations and are out of scope (§7 error kind iv).
var arithmeticOps = map[uint8]ArithmeticOp{
	0b000: Add,
	0b010: Adc,
	0b011: Sbb,
	0b101: Sub,
	0b111: Cmp,
}

// signExtendByte widens a signed byte to a signed word by replicating the
// top bit.
func signExtendByte(b uint8) int16 {
	return int16(int8(b))
}
