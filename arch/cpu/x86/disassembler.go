package x86

import (
	"fmt"
	"sort"
	"strings"
)

// decoded pairs a decoded instruction with the byte offsets it spanned.
type decoded struct {
	offsetBefore int
	offsetAfter  int
	ins          Instruction
}

// Disassemble decodes every instruction in data and renders it as NASM text,
// preceded by "bits 16". Jump/loop targets are rendered as labels assigned
// in a first pass over the whole program, per §4.E's two-pass scheme.
func Disassemble(data []byte) (string, error) {
	c := NewCursor(data)

	var instructions []decoded
	for !c.Exhausted() {
		before := c.Pos()
		ins, err := Decode(c)
		if err != nil {
			return "", err
		}
		instructions = append(instructions, decoded{offsetBefore: before, offsetAfter: c.Pos(), ins: ins})
	}

	targets := make(map[int]bool)
	for _, d := range instructions {
		if d.ins.Kind == KindJump {
			targets[d.offsetAfter+int(d.ins.JumpDisp)] = true
		}
	}

	labels := assignLabels(targets)

	var out strings.Builder
	out.WriteString("bits 16\n")
	for _, d := range instructions {
		if name, ok := labels[d.offsetBefore]; ok {
			out.WriteString(name)
			out.WriteString(":\n")
		}

		formatter := func(disp int8) string {
			target := d.offsetAfter + int(disp)
			if name, ok := labels[target]; ok {
				return name
			}
			return fmt.Sprintf("%d", disp)
		}
		out.WriteString(Encode(d.ins, formatter))
		out.WriteString("\n")
	}

	return out.String(), nil
}

// assignLabels gives every unique jump target a stable name, in ascending
// order of target offset.
func assignLabels(targets map[int]bool) map[int]string {
	offsets := make([]int, 0, len(targets))
	for t := range targets {
		offsets = append(offsets, t)
	}
	sort.Ints(offsets)

	labels := make(map[int]string, len(offsets))
	for i, offset := range offsets {
		labels[offset] = fmt.Sprintf("label_%d", i)
	}
	return labels
}
