package reduction_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/vocdoni/miniram-zk/circuit"
	"github.com/vocdoni/miniram-zk/miniram"
	"github.com/vocdoni/miniram-zk/miniram/reduction"
	"github.com/vocdoni/miniram-zk/miniram/witness"
	"github.com/vocdoni/miniram-zk/ring"
)

func TestMulEqProgramReducesToAllZero(t *testing.T) {
	c := qt.New(t)

	prog := miniram.MulEqProgram()
	const T = 22

	trace, err := miniram.Interpret(prog, []ring.R32{2, 17, 34}, T)
	c.Assert(err, qt.IsNil)
	c.Assert(trace[len(trace)-1].Registers[miniram.R1], qt.Equals, ring.R32(0))

	w, err := witness.Encode(trace, T)
	c.Assert(err, qt.IsNil)

	circ, err := reduction.GenerateCircuit(prog, T)
	c.Assert(err, qt.IsNil)
	c.Assert(circ.NIn, qt.Equals, len(w))

	out, err := circuit.Eval(circ, w)
	c.Assert(err, qt.IsNil)
	for i, v := range out {
		c.Assert(v, qt.Equals, ring.R32(0), qt.Commentf("output %d nonzero", i))
	}
}

func TestMulEqProgramRejectsTamperedWitness(t *testing.T) {
	c := qt.New(t)

	prog := miniram.MulEqProgram()
	const T = 22

	trace, err := miniram.Interpret(prog, []ring.R32{2, 17, 34}, T)
	c.Assert(err, qt.IsNil)

	w, err := witness.Encode(trace, T)
	c.Assert(err, qt.IsNil)

	circ, err := reduction.GenerateCircuit(prog, T)
	c.Assert(err, qt.IsNil)

	w[0] ^= 1 // flip a bit in the first step's PC-out slot

	out, err := circuit.Eval(circ, w)
	c.Assert(err, qt.IsNil)

	nonzero := false
	for _, v := range out {
		if v != 0 {
			nonzero = true
		}
	}
	c.Assert(nonzero, qt.IsTrue)
}

func TestGenerateCircuitRejectsEmptyProgram(t *testing.T) {
	c := qt.New(t)
	_, err := reduction.GenerateCircuit(nil, 10)
	c.Assert(err, qt.Not(qt.IsNil))
}
