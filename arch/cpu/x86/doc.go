// Package x86 decodes, renders and executes a subset of the 16-bit 8086
// instruction set: the MOV, segment-register-MOV and arithmetic
// (add/adc/sub/sbb/cmp) families, plus the conditional jump and loop group.
//
// Decoding turns a byte stream into an Instruction value (see instruction.go).
// The same value can be rendered back to NASM-compatible text (encode.go) or
// executed against a CPU and Memory (emulation.go).
package x86
