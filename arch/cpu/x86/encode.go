package x86

import "fmt"

// LabelFormatter maps a jump's signed displacement to the text that should
// appear in its operand position. A disassembler driver passes a closure
// that resolves displacements to symbolic labels; a simulator trace passes
// one that renders the raw signed number.
type LabelFormatter func(disp int8) string

// RawLabelFormatter is a LabelFormatter that renders the displacement as a
// plain signed decimal number, suitable for single-step simulation traces.
func RawLabelFormatter(disp int8) string {
	return fmt.Sprintf("%d", disp)
}

// Encode renders ins as a line of NASM-compatible assembly text. label is
// consulted only for Kind == KindJump.
func Encode(ins Instruction, label LabelFormatter) string {
	switch ins.Kind {
	case KindMovToFromRegMem:
		if ins.Dir == FromRegister {
			return fmt.Sprintf("mov %s, %s", ins.RegOrMem, ins.Reg)
		}
		return fmt.Sprintf("mov %s, %s", ins.Reg, ins.RegOrMem)

	case KindImmediateMovRegMem:
		return fmt.Sprintf("mov %s, %s %d", ins.RegOrMem, ins.Width, ins.Data)

	case KindImmediateMovReg:
		return fmt.Sprintf("mov %s, %d", ins.Reg, ins.Data)

	case KindAccumulatorMove:
		if ins.Dir == FromRegister {
			return fmt.Sprintf("mov [%d], ax", ins.Data)
		}
		return fmt.Sprintf("mov ax, [%d]", ins.Data)

	case KindSegmentRegisterMove:
		if ins.Dir == FromRegister {
			return fmt.Sprintf("mov %s, %s", ins.RegOrMem, ins.SegReg)
		}
		return fmt.Sprintf("mov %s, %s", ins.SegReg, ins.RegOrMem)

	case KindArithmeticFromToRegMem:
		if ins.Dir == FromRegister {
			return fmt.Sprintf("%s %s, %s", ins.Op, ins.RegOrMem, ins.Reg)
		}
		return fmt.Sprintf("%s %s, %s", ins.Op, ins.Reg, ins.RegOrMem)

	case KindArithmeticImmediateToRegMem:
		return fmt.Sprintf("%s %s, %s %d", ins.Op, ins.RegOrMem, ins.Width, ins.Data)

	case KindArithmeticImmediateToAccumulator:
		accumulator := "ax"
		if ins.Width == Byte {
			accumulator = "al"
		}
		return fmt.Sprintf("%s %s, %d", ins.Op, accumulator, ins.Data)

	case KindJump:
		return fmt.Sprintf("%s %s", ins.JumpOp, label(ins.JumpDisp))

	default:
		return fmt.Sprintf("<unknown instruction kind %d>", ins.Kind)
	}
}
