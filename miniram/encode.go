package miniram

import "github.com/vocdoni/miniram-zk/ring"

// opcode/dst/arg0 occupy the top three bytes of the high word; the low
// word doubles as both the arg1 register index (its low 4 bits) and,
// for instructions that take an immediate, the full 32-bit literal.
// Mirrors circuit/builder's DecodeInstruction field layout exactly.
const (
	encOpcodeShift = 24
	encDstShift    = 16
	encArg0Shift   = 8
)

// EncodeInstr packs a single instruction into the two constant words the
// transition circuit embeds via SELECT_CONST, one pair per program
// instruction.
func EncodeInstr(i Inst) (hi, lo ring.R32) {
	hi = ring.ShlR32(ring.R32(i.Op), encOpcodeShift) |
		ring.ShlR32(ring.R32(i.Dst), encDstShift) |
		ring.ShlR32(ring.R32(i.Arg0), encArg0Shift)

	switch i.Op {
	case OpB, OpBZ, OpMovConst, OpRetConst, OpShr, OpRotr:
		lo = i.Arg1Word
	default:
		lo = ring.R32(i.Arg1Reg)
	}
	return hi, lo
}

// EncodeProgram encodes every instruction in prog, in order.
func EncodeProgram(prog Prog) (his, los []ring.R32) {
	his = make([]ring.R32, len(prog))
	los = make([]ring.R32, len(prog))
	for idx, inst := range prog {
		his[idx], los[idx] = EncodeInstr(inst)
	}
	return his, los
}
