package x86

import "math/bits"

// Step decodes and executes the instruction at c.IP, advancing IP past it
// (or to its jump target) and returning the disassembled text plus the
// register/flag trace fragments the instruction produced.
func (c *CPU) Step() (StepResult, error) {
	cursor := NewCursor(c.memory.Bytes(c.IP))
	ins, err := Decode(cursor)
	if err != nil {
		return StepResult{}, err
	}
	c.IP += uint32(ins.Size)

	c.trace = &trace{}
	c.execute(ins)
	result := StepResult{
		Text:  Encode(ins, RawLabelFormatter),
		Trace: c.trace.String(),
	}
	c.trace = nil
	return result, nil
}

func (c *CPU) execute(ins Instruction) {
	switch ins.Kind {
	case KindMovToFromRegMem:
		c.executeMov(ins.Dir, ins.Reg, ins.RegOrMem, ins.Reg.Width)

	case KindImmediateMovRegMem:
		c.writeRegOrMem(ins.RegOrMem, ins.Width, uint16(ins.Data))

	case KindImmediateMovReg:
		c.WriteRegister(ins.Reg, uint16(ins.Data))

	case KindAccumulatorMove:
		addr := uint32(uint16(ins.Data))
		if ins.Dir == FromRegister {
			c.memory.Write16(addr, c.AX)
		} else {
			c.WriteRegister(RegisterAccess{Reg: RegA, Width: Word}, c.memory.Read16(addr))
		}

	case KindSegmentRegisterMove:
		if ins.Dir == FromRegister {
			c.writeRegOrMem(ins.RegOrMem, Word, c.ReadSegment(ins.SegReg))
		} else {
			c.WriteSegment(ins.SegReg, c.readRegOrMem(ins.RegOrMem, Word))
		}

	case KindArithmeticFromToRegMem:
		c.executeArithmeticRegMem(ins)

	case KindArithmeticImmediateToRegMem:
		a := c.readRegOrMem(ins.RegOrMem, ins.Width)
		result, flags := evaluate(ins.Op, ins.Width, a, uint16(ins.Data), c.Flags)
		c.applyFlags(flags)
		if ins.Op != Cmp {
			c.writeRegOrMem(ins.RegOrMem, ins.Width, result)
		}

	case KindArithmeticImmediateToAccumulator:
		reg := RegisterAccess{Reg: RegA, Width: ins.Width}
		a := c.ReadRegister(reg)
		result, flags := evaluate(ins.Op, ins.Width, a, uint16(ins.Data), c.Flags)
		c.applyFlags(flags)
		if ins.Op != Cmp {
			c.WriteRegister(reg, result)
		}

	case KindJump:
		c.executeJump(ins.JumpOp, ins.JumpDisp)
	}
}

func (c *CPU) executeMov(dir Direction, reg RegisterAccess, rm RegOrMem, width Width) {
	if dir == FromRegister {
		c.writeRegOrMem(rm, width, c.ReadRegister(reg))
	} else {
		c.WriteRegister(reg, c.readRegOrMem(rm, width))
	}
}

func (c *CPU) executeArithmeticRegMem(ins Instruction) {
	if ins.Dir == FromRegister {
		a := c.readRegOrMem(ins.RegOrMem, ins.Width)
		b := c.ReadRegister(ins.Reg)
		result, flags := evaluate(ins.Op, ins.Width, a, b, c.Flags)
		c.applyFlags(flags)
		if ins.Op != Cmp {
			c.writeRegOrMem(ins.RegOrMem, ins.Width, result)
		}
		return
	}

	a := c.ReadRegister(ins.Reg)
	b := c.readRegOrMem(ins.RegOrMem, ins.Width)
	result, flags := evaluate(ins.Op, ins.Width, a, b, c.Flags)
	c.applyFlags(flags)
	if ins.Op != Cmp {
		c.WriteRegister(ins.Reg, result)
	}
}

func (c *CPU) applyFlags(f Flags) {
	old := c.Flags
	c.Flags = f
	if c.trace != nil && old != f {
		c.trace.writeFlags(old, f)
	}
}

func (c *CPU) readRegOrMem(rm RegOrMem, width Width) uint16 {
	if !rm.IsMemory {
		return c.ReadRegister(rm.Reg)
	}
	addr := c.EffectiveAddr(rm.Mem)
	if width == Byte {
		return uint16(c.memory.Read8(addr))
	}
	return c.memory.Read16(addr)
}

func (c *CPU) writeRegOrMem(rm RegOrMem, width Width, value uint16) {
	if !rm.IsMemory {
		c.WriteRegister(RegisterAccess{Reg: rm.Reg.Reg, Width: width, Offset: rm.Reg.Offset}, value)
		return
	}
	addr := c.EffectiveAddr(rm.Mem)
	if width == Byte {
		c.memory.Write8(addr, uint8(value))
	} else {
		c.memory.Write16(addr, value)
	}
}

func (c *CPU) executeJump(op JumpOp, disp int8) {
	branch := false
	switch op {
	case JE:
		branch = c.Flags.GetZero()
	case JNE:
		branch = !c.Flags.GetZero()
	case JS:
		branch = c.Flags.GetSign()
	case JNS:
		branch = !c.Flags.GetSign()
	case JB:
		branch = c.Flags.GetCarry()
	case JNB:
		branch = !c.Flags.GetCarry()
	case JBE:
		branch = c.Flags.GetCarry() || c.Flags.GetZero()
	case JA:
		branch = !c.Flags.GetCarry() && !c.Flags.GetZero()
	case JL:
		branch = c.Flags.GetSign() != c.Flags.GetOverflow()
	case JNL:
		branch = c.Flags.GetSign() == c.Flags.GetOverflow()
	case JLE:
		branch = c.Flags.GetZero() || (c.Flags.GetSign() != c.Flags.GetOverflow())
	case JG:
		branch = !c.Flags.GetZero() && (c.Flags.GetSign() == c.Flags.GetOverflow())
	case JP:
		branch = c.Flags.GetParity()
	case JNP:
		branch = !c.Flags.GetParity()
	case JO:
		branch = c.Flags.GetOverflow()
	case JNO:
		branch = !c.Flags.GetOverflow()
	case JCXZ:
		branch = c.CX == 0
	}

	if loopFamily.Contains(op) {
		c.CX--
		switch op {
		case LOOP:
			branch = c.CX != 0
		case LOOPE:
			branch = c.CX != 0 && c.Flags.GetZero()
		case LOOPNE:
			branch = c.CX != 0 && !c.Flags.GetZero()
		}
	}

	if branch {
		c.IP = uint32(int64(c.IP) + int64(disp))
	}
}

// evaluate computes an arithmetic result and the resulting flag word,
// without mutating cpu state. Adc/Sbb execute identically to Add/Sub —
// carry-in is not modeled, per the Open Question decision recorded in
// DESIGN.md.
func evaluate(op ArithmeticOp, width Width, a, b uint16, flags Flags) (uint16, Flags) {
	switch op {
	case Add, Adc:
		return evaluateAdd(width, a, b, flags)
	default: // Sub, Sbb, Cmp
		return evaluateSub(width, a, b, flags)
	}
}

func evaluateAdd(width Width, a, b uint16, flags Flags) (uint16, Flags) {
	if width == Byte {
		av, bv := uint8(a), uint8(b)
		full := uint16(av) + uint16(bv)
		result := uint8(full)
		carry := full > 0xFF
		aux := (av&0xF)+(bv&0xF) >= 0x10
		overflow := (int8(av) >= 0) == (int8(bv) >= 0) && (int8(av) >= 0) != (int8(result) >= 0)
		return uint16(result), flagsFromResult(flags, uint16(result), 8, carry, aux, overflow)
	}

	full := uint32(a) + uint32(b)
	result := uint16(full)
	carry := full > 0xFFFF
	aux := (a&0xF)+(b&0xF) >= 0x10
	overflow := (int16(a) >= 0) == (int16(b) >= 0) && (int16(a) >= 0) != (int16(result) >= 0)
	return result, flagsFromResult(flags, result, 16, carry, aux, overflow)
}

func evaluateSub(width Width, a, b uint16, flags Flags) (uint16, Flags) {
	if width == Byte {
		av, bv := uint8(a), uint8(b)
		result := av - bv
		carry := bv > av
		aux := (av & 0xF) < (bv & 0xF)
		overflow := (int8(av) >= 0) != (int8(bv) >= 0) && (int8(av) >= 0) != (int8(result) >= 0)
		return uint16(result), flagsFromResult(flags, uint16(result), 8, carry, aux, overflow)
	}

	result := a - b
	carry := b > a
	aux := (a & 0xF) < (b & 0xF)
	overflow := (int16(a) >= 0) != (int16(b) >= 0) && (int16(a) >= 0) != (int16(result) >= 0)
	return result, flagsFromResult(flags, result, 16, carry, aux, overflow)
}

// flagsFromResult computes Zero/Sign/Parity from result (resultBits wide)
// and combines them with the already-computed Carry/AuxCarry/Overflow.
func flagsFromResult(base Flags, result uint16, resultBits int, carry, aux, overflow bool) Flags {
	var signBit uint16 = 1 << (resultBits - 1)
	zero := result == 0
	sign := result&signBit != 0
	parity := bits.OnesCount8(uint8(result))%2 == 0

	f := base
	f = f.SetCarry(carry)
	f = f.SetAuxCarry(aux)
	f = f.SetOverflow(overflow)
	f = f.SetZero(zero)
	f = f.SetSign(sign)
	f = f.SetParity(parity)
	return f
}
