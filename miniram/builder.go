package miniram

import "github.com/vocdoni/miniram-zk/ring"

// ProgramBuilder is a small fluent DSL for assembling MiniRAM programs,
// in the style of the original prototype's frontend/src/miniram/builder.rs
// (there: add/sub/mov_r/mov_c/b_z/b/ldr/ret_r/ret_c), extended with the
// restored AND/XOR/SHR/ROTR/STR/PRINT instructions. Branch targets are
// plain instruction indices; callers compute them from PC() since the
// builder does not resolve symbolic labels.
type ProgramBuilder struct {
	insts []Inst
}

// NewProgramBuilder starts an empty program.
func NewProgramBuilder() *ProgramBuilder {
	return &ProgramBuilder{}
}

// PC returns the index the next appended instruction will occupy.
func (pb *ProgramBuilder) PC() ring.R32 {
	return ring.R32(len(pb.insts))
}

func (pb *ProgramBuilder) push(i Inst) *ProgramBuilder {
	pb.insts = append(pb.insts, i)
	return pb
}

func (pb *ProgramBuilder) Add(dst, a, bReg Reg) *ProgramBuilder  { return pb.push(add(dst, a, bReg)) }
func (pb *ProgramBuilder) Sub(dst, a, bReg Reg) *ProgramBuilder  { return pb.push(sub(dst, a, bReg)) }
func (pb *ProgramBuilder) And(dst, a, bReg Reg) *ProgramBuilder  { return pb.push(and(dst, a, bReg)) }
func (pb *ProgramBuilder) Xor(dst, a, bReg Reg) *ProgramBuilder  { return pb.push(xorI(dst, a, bReg)) }
func (pb *ProgramBuilder) MovReg(dst, src Reg) *ProgramBuilder   { return pb.push(movReg(dst, src)) }
func (pb *ProgramBuilder) MovConst(dst Reg, c ring.R32) *ProgramBuilder {
	return pb.push(movConst(dst, c))
}
func (pb *ProgramBuilder) Ldr(dst, addr Reg) *ProgramBuilder { return pb.push(ldr(dst, addr)) }
func (pb *ProgramBuilder) Str(src, addr Reg) *ProgramBuilder { return pb.push(str(src, addr)) }
func (pb *ProgramBuilder) B(target ring.R32) *ProgramBuilder { return pb.push(b(target)) }
func (pb *ProgramBuilder) BZ(target ring.R32) *ProgramBuilder {
	return pb.push(bz(target))
}
func (pb *ProgramBuilder) RetReg(src Reg) *ProgramBuilder { return pb.push(retReg(src)) }
func (pb *ProgramBuilder) RetConst(v ring.R32) *ProgramBuilder {
	return pb.push(retConst(v))
}
func (pb *ProgramBuilder) Shr(dst, a Reg, n ring.R32) *ProgramBuilder {
	return pb.push(shr(dst, a, n))
}
func (pb *ProgramBuilder) Rotr(dst, a Reg, n ring.R32) *ProgramBuilder {
	return pb.push(rotr(dst, a, n))
}
func (pb *ProgramBuilder) Print(src Reg) *ProgramBuilder { return pb.push(print(src)) }

// Build freezes the instruction sequence into a Prog.
func (pb *ProgramBuilder) Build() Prog {
	return append(Prog{}, pb.insts...)
}

// Scratch registers used by the preset programs below, named for
// readability beyond the PC/R1..R6 constants.
const (
	rA     Reg = 1 // R1
	rB     Reg = 2 // R2
	rAcc   Reg = 3 // R3
	rOne   Reg = 4 // R4
	rC     Reg = 5 // R5 (expected product / scratch)
	rAddr  Reg = 6 // R6 (address / scratch)
)

// MulEqProgram builds a program that loads three words from memory
// addresses 0, 1, 2 (a, b, c) and returns (a*b - c), computed by
// repeated addition of b, a times -- MiniRAM has no native MUL, so
// multiplication is built from the ADD/SUB/BZ/B primitives the ISA
// actually provides.
func MulEqProgram() Prog {
	pb := NewProgramBuilder()
	pb.MovConst(rAddr, 0).Ldr(rA, rAddr) // rA = mem[0] = a (also loop counter)
	pb.MovConst(rAddr, 1).Ldr(rB, rAddr) // rB = mem[1] = b
	pb.MovConst(rAddr, 2).Ldr(rC, rAddr) // rC = mem[2] = c
	pb.MovConst(rAcc, 0)                // acc = 0
	pb.MovConst(rOne, 1)

	loopPC := pb.PC()
	pb.Add(rAcc, rAcc, rB) // acc += b
	pb.Sub(rA, rA, rOne)   // counter -= 1 (sets Z)
	bzIdx := pb.PC()
	pb.BZ(0) // patched below: goto done
	pb.B(loopPC)
	donePC := pb.PC()
	pb.Sub(rAddr, rAcc, rC) // rAddr = acc - c
	pb.RetReg(rAddr)

	insts := pb.insts
	insts[bzIdx] = bz(donePC)
	return append(Prog{}, insts...)
}
