package x86

// Kind discriminates the variants of Instruction. Go has no tagged union, so
// Instruction is a flat struct carrying every variant's fields and Kind says
// which subset is meaningful — the same shape the teacher's own opcode table
// used for its wider 585-instruction set, just scoped down.
type Kind uint8

const (
	KindMovToFromRegMem Kind = iota
	KindImmediateMovRegMem
	KindImmediateMovReg
	KindAccumulatorMove
	KindSegmentRegisterMove
	KindArithmeticFromToRegMem
	KindArithmeticImmediateToRegMem
	KindArithmeticImmediateToAccumulator
	KindJump
)

// JumpOp identifies one of the 20 single-byte-displacement jump/loop forms.
type JumpOp uint8

const (
	JE JumpOp = iota
	JL
	JLE
	JB
	JBE
	JP
	JO
	JS
	JNE
	JNL
	JG
	JNB
	JA
	JNP
	JNO
	JNS
	LOOP
	LOOPE
	LOOPNE
	JCXZ
)

var jumpMnemonics = map[JumpOp]string{
	JE:     "je",
	JL:     "jl",
	JLE:    "jle",
	JB:     "jb",
	JBE:    "jbe",
	JP:     "jp",
	JO:     "jo",
	JS:     "js",
	JNE:    "jne",
	JNL:    "jnl",
	JG:     "jg",
	JNB:    "jnb",
	JA:     "jnbe",
	JNP:    "jnp",
	JNO:    "jno",
	JNS:    "jns",
	LOOP:   "loop",
	LOOPE:  "loope",
	LOOPNE: "loopne",
	JCXZ:   "jcxz",
}

func (j JumpOp) String() string {
	if m, ok := jumpMnemonics[j]; ok {
		return m
	}
	return "?"
}

// Instruction is the decoded intermediate representation shared by the
// encoder and the execution engine. Fields are populated according to Kind;
// fields irrelevant to a given Kind are left zero.
type Instruction struct {
	Kind Kind

	Dir      Direction
	Width    Width
	Op       ArithmeticOp
	Reg      RegisterAccess
	RegOrMem RegOrMem
	SegReg   SegmentRegister
	Data     int16 // immediate value, or AccumulatorMove's absolute address

	JumpOp   JumpOp
	JumpDisp int8

	// Size is the number of bytes this instruction occupied in the stream
	// it was decoded from. Populated by Decode, not by callers constructing
	// an Instruction directly.
	Size int
}
