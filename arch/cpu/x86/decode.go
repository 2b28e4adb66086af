package x86

// table is the package-level opcode dispatch table, built once from the
// decoder families in §4.D of the specification.
var table = buildOpcodeTable()

// Decode reads one instruction from c, returning the decoded Instruction
// with Size set to the number of bytes consumed (including the leading
// opcode byte).
func Decode(c *Cursor) (Instruction, error) {
	start := c.Pos()
	opcode, err := next(c, "opcode")
	if err != nil {
		return Instruction{}, err
	}

	d, ok := table.Lookup(opcode)
	if !ok {
		return Instruction{}, newDecodeError(ErrUnknownOpcode, "no decoder for opcode %#08b at byte %d", opcode, start)
	}

	ins, err := d(opcode, c)
	if err != nil {
		return Instruction{}, err
	}
	ins.Size = c.Pos() - start
	return ins, nil
}

func buildOpcodeTable() *OpcodeTable {
	t := NewOpcodeTable()

	t.Register("1000_10dw", decodeMovToFromRegMem)
	t.Register("1100_011w", decodeImmediateMovRegMem)
	t.Register("1011_wreg", decodeImmediateMovReg)
	t.Register("1010_00dw", decodeAccumulatorMove)
	t.Register("1000_11d0", decodeSegmentRegisterMove)

	t.Register("00xx_x0dw", decodeArithmeticFromToRegMem)
	t.Register("1000_00sw", decodeArithmeticImmediateToRegMem)
	t.Register("00xx_x1dw", decodeArithmeticImmediateToAccumulator)

	registerJump(t, "0111_0100", JE)
	registerJump(t, "0111_1100", JL)
	registerJump(t, "0111_1110", JLE)
	registerJump(t, "0111_0010", JB)
	registerJump(t, "0111_0110", JBE)
	registerJump(t, "0111_1010", JP)
	registerJump(t, "0111_0000", JO)
	registerJump(t, "0111_1000", JS)
	registerJump(t, "0111_0101", JNE)
	registerJump(t, "0111_1101", JNL)
	registerJump(t, "0111_1111", JG)
	registerJump(t, "0111_0011", JNB)
	registerJump(t, "0111_0111", JA)
	registerJump(t, "0111_1011", JNP)
	registerJump(t, "0111_0001", JNO)
	registerJump(t, "0111_1001", JNS)
	registerJump(t, "1110_0010", LOOP)
	registerJump(t, "1110_0001", LOOPE)
	registerJump(t, "1110_0000", LOOPNE)
	registerJump(t, "1110_0011", JCXZ)

	return t
}

func registerJump(t *OpcodeTable, pattern string, op JumpOp) {
	t.Register(pattern, func(_ byte, c *Cursor) (Instruction, error) {
		b, err := next(c, "jump displacement")
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Kind: KindJump, JumpOp: op, JumpDisp: int8(b)}, nil
	})
}

// decodeMovToFromRegMem handles `1000_10dw`: MOV r/m <-> reg.
func decodeMovToFromRegMem(opcode byte, c *Cursor) (Instruction, error) {
	d := (opcode >> 1) & 1
	w := widthFromBit(opcode & 1)

	modByte, err := next(c, "ModR/M")
	if err != nil {
		return Instruction{}, err
	}
	m := decodeModRM(modByte)
	reg := decodeReg(m.reg, w)
	rm, err := decodeRegOrMem(c, m, w)
	if err != nil {
		return Instruction{}, err
	}

	dir := ToRegister
	if d == 0 {
		dir = FromRegister
	}
	return Instruction{Kind: KindMovToFromRegMem, Dir: dir, Reg: reg, RegOrMem: rm}, nil
}

// decodeImmediateMovRegMem handles `1100_011w`: MOV immediate -> r/m.
func decodeImmediateMovRegMem(opcode byte, c *Cursor) (Instruction, error) {
	w := widthFromBit(opcode & 1)

	modByte, err := next(c, "ModR/M")
	if err != nil {
		return Instruction{}, err
	}
	m := decodeModRM(modByte)
	rm, err := decodeRegOrMem(c, m, w)
	if err != nil {
		return Instruction{}, err
	}

	data, err := decodeImmediate(c, w)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Kind: KindImmediateMovRegMem, Width: w, RegOrMem: rm, Data: data}, nil
}

// decodeImmediateMovReg handles `1011_wreg`: MOV immediate -> register.
func decodeImmediateMovReg(opcode byte, c *Cursor) (Instruction, error) {
	w := widthFromBit((opcode >> 3) & 1)
	reg := decodeReg(opcode&0b111, w)

	data, err := decodeImmediate(c, w)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Kind: KindImmediateMovReg, Reg: reg, Data: data}, nil
}

// decodeAccumulatorMove handles `1010_00dw`: MOV ax <-> [addr]. Note that for
// this family d is inverted relative to the standard convention: d=0 means
// "to accumulator" (load), d=1 "from accumulator" (store) — see the Open
// Question resolution in DESIGN.md.
func decodeAccumulatorMove(opcode byte, c *Cursor) (Instruction, error) {
	d := (opcode >> 1) & 1
	addr, err := nextWord(c, "accumulator address")
	if err != nil {
		return Instruction{}, err
	}

	dir := ToRegister
	if d != 0 {
		dir = FromRegister
	}
	return Instruction{Kind: KindAccumulatorMove, Dir: dir, Data: addr}, nil
}

// decodeSegmentRegisterMove handles `1000_11d0`: MOV seg-reg <-> r/m.
func decodeSegmentRegisterMove(opcode byte, c *Cursor) (Instruction, error) {
	d := (opcode >> 1) & 1

	modByte, err := next(c, "ModR/M")
	if err != nil {
		return Instruction{}, err
	}
	m := decodeModRM(modByte)
	seg := SegmentRegister(m.reg & 0b11)
	rm, err := decodeRegOrMem(c, m, Word)
	if err != nil {
		return Instruction{}, err
	}

	dir := ToRegister
	if d == 0 {
		dir = FromRegister
	}
	return Instruction{Kind: KindSegmentRegisterMove, Dir: dir, SegReg: seg, RegOrMem: rm}, nil
}

// decodeArithmeticFromToRegMem handles `00xx_x0dw`: arithmetic r/m <-> reg.
func decodeArithmeticFromToRegMem(opcode byte, c *Cursor) (Instruction, error) {
	opSelector := (opcode >> 3) & 0b111
	op, ok := arithmeticOps[opSelector]
	if !ok {
		return Instruction{}, newDecodeError(ErrUnimplementedOp, "arithmetic op slot %03b is not Add/Adc/Sub/Sbb/Cmp", opSelector)
	}

	d := (opcode >> 1) & 1
	w := widthFromBit(opcode & 1)

	modByte, err := next(c, "ModR/M")
	if err != nil {
		return Instruction{}, err
	}
	m := decodeModRM(modByte)
	reg := decodeReg(m.reg, w)
	rm, err := decodeRegOrMem(c, m, w)
	if err != nil {
		return Instruction{}, err
	}

	dir := ToRegister
	if d == 0 {
		dir = FromRegister
	}
	return Instruction{Kind: KindArithmeticFromToRegMem, Op: op, Dir: dir, Width: w, Reg: reg, RegOrMem: rm}, nil
}

// decodeArithmeticImmediateToRegMem handles `1000_00sw`: arithmetic
// immediate -> r/m, with the op selected by the ModR/M reg field.
func decodeArithmeticImmediateToRegMem(opcode byte, c *Cursor) (Instruction, error) {
	s := (opcode >> 1) & 1
	w := widthFromBit(opcode & 1)

	modByte, err := next(c, "ModR/M")
	if err != nil {
		return Instruction{}, err
	}
	m := decodeModRM(modByte)
	op, ok := arithmeticOps[m.reg]
	if !ok {
		return Instruction{}, newDecodeError(ErrUnimplementedOp, "arithmetic op slot %03b is not Add/Adc/Sub/Sbb/Cmp", m.reg)
	}
	rm, err := decodeRegOrMem(c, m, w)
	if err != nil {
		return Instruction{}, err
	}

	var data int16
	if s == 1 {
		b, err := next(c, "sign-extended immediate")
		if err != nil {
			return Instruction{}, err
		}
		data = signExtendByte(b)
	} else {
		data, err = decodeImmediate(c, w)
		if err != nil {
			return Instruction{}, err
		}
	}

	return Instruction{Kind: KindArithmeticImmediateToRegMem, Op: op, Width: w, RegOrMem: rm, Data: data}, nil
}

// decodeArithmeticImmediateToAccumulator handles `00xx_x1dw`: arithmetic
// immediate -> accumulator.
func decodeArithmeticImmediateToAccumulator(opcode byte, c *Cursor) (Instruction, error) {
	opSelector := (opcode >> 3) & 0b111
	op, ok := arithmeticOps[opSelector]
	if !ok {
		return Instruction{}, newDecodeError(ErrUnimplementedOp, "arithmetic op slot %03b is not Add/Adc/Sub/Sbb/Cmp", opSelector)
	}

	w := widthFromBit(opcode & 1)
	data, err := decodeImmediate(c, w)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Kind: KindArithmeticImmediateToAccumulator, Op: op, Width: w, Data: data}, nil
}

func decodeImmediate(c *Cursor, w Width) (int16, error) {
	if w == Byte {
		b, err := next(c, "immediate")
		if err != nil {
			return 0, err
		}
		return signExtendByte(b), nil
	}
	return nextWord(c, "immediate")
}

func widthFromBit(bit byte) Width {
	if bit == 0 {
		return Byte
	}
	return Word
}
