package miniram_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/vocdoni/miniram-zk/miniram"
	"github.com/vocdoni/miniram-zk/ring"
	"github.com/vocdoni/miniram-zk/zkerrors"
)

func TestMulEqProgramComputesZeroOnMatchingProduct(t *testing.T) {
	c := qt.New(t)
	prog := miniram.MulEqProgram()

	trace, err := miniram.Interpret(prog, []ring.R32{2, 17, 34}, 22)
	c.Assert(err, qt.IsNil)
	c.Assert(len(trace) <= 22, qt.IsTrue)

	last := trace[len(trace)-1]
	c.Assert(last.Registers[miniram.R1], qt.Equals, ring.R32(0))
}

func TestMulEqProgramNonZeroOnMismatch(t *testing.T) {
	c := qt.New(t)
	prog := miniram.MulEqProgram()

	trace, err := miniram.Interpret(prog, []ring.R32{2, 17, 35}, 22)
	c.Assert(err, qt.IsNil)
	last := trace[len(trace)-1]
	c.Assert(last.Registers[miniram.R1], qt.Not(qt.Equals), ring.R32(0))
}

func TestInterpretTimeBoundExceeded(t *testing.T) {
	c := qt.New(t)
	pb := miniram.NewProgramBuilder()
	loop := pb.PC()
	pb.B(loop)
	prog := pb.Build()

	_, err := miniram.Interpret(prog, nil, 5)
	c.Assert(err, qt.ErrorIs, zkerrors.ErrTimeBoundExceeded)
}

func TestInterpretExecutionStuck(t *testing.T) {
	c := qt.New(t)
	prog := miniram.Prog{}

	_, err := miniram.Interpret(prog, nil, 5)
	c.Assert(err, qt.ErrorIs, zkerrors.ErrExecutionStuck)
}
