package x86

import "github.com/retroenv/sim8086/set"

// loopFamily is the subset of JumpOp that decrements CX as part of its
// branch test, mirroring the teacher's own category-set style
// (arch/cpu/x86/categories.go's BranchingInstructions) scaled down to the
// one classification this engine's control flow actually needs.
var loopFamily = set.NewFromSlice([]JumpOp{LOOP, LOOPE, LOOPNE})
