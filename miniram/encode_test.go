package miniram_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/vocdoni/miniram-zk/miniram"
	"github.com/vocdoni/miniram-zk/ring"
)

func TestEncodeInstrRegisterForm(t *testing.T) {
	c := qt.New(t)
	prog := miniram.NewProgramBuilder().Add(3, 1, 2).Build()

	hi, lo := miniram.EncodeInstr(prog[0])
	c.Assert(hi, qt.Equals, ring.R32(0)<<24|ring.R32(3)<<16|ring.R32(1)<<8)
	c.Assert(lo, qt.Equals, ring.R32(2))
}

func TestEncodeInstrImmediateForm(t *testing.T) {
	c := qt.New(t)
	prog := miniram.NewProgramBuilder().MovConst(5, 0xCAFE).Build()

	hi, lo := miniram.EncodeInstr(prog[0])
	c.Assert(hi, qt.Equals, ring.R32(miniram.OpMovConst)<<24|ring.R32(5)<<16)
	c.Assert(lo, qt.Equals, ring.R32(0xCAFE))
}

func TestEncodeProgramLength(t *testing.T) {
	c := qt.New(t)
	prog := miniram.MulEqProgram()

	his, los := miniram.EncodeProgram(prog)
	c.Assert(len(his), qt.Equals, len(prog))
	c.Assert(len(los), qt.Equals, len(prog))
}
