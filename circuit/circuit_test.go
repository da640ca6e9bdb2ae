package circuit_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/vocdoni/miniram-zk/circuit"
	"github.com/vocdoni/miniram-zk/circuit/builder"
	"github.com/vocdoni/miniram-zk/ring"
)

func addEq42() *circuit.Circuit {
	b := builder.New(2)
	a, c := b.Input(0), b.Input(1)
	b.Out(b.Sub(b.Add(a, c), b.Const(42)))
	return b.Build()
}

func TestAddEq42(t *testing.T) {
	c := qt.New(t)
	circ := addEq42()

	out, err := circuit.Eval(circ, []ring.R32{21, 21})
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.DeepEquals, []ring.R32{0})
}

func mulEq() *circuit.Circuit {
	b := builder.New(3)
	x, y, z := b.Input(0), b.Input(1), b.Input(2)
	b.Out(b.Sub(b.Mul(x, y), z))
	return b.Build()
}

func TestMulEqSimple(t *testing.T) {
	c := qt.New(t)
	circ := mulEq()

	out, err := circuit.Eval(circ, []ring.R32{2, 2, 4})
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.DeepEquals, []ring.R32{0})
}

func TestMulEqLargerOperands(t *testing.T) {
	c := qt.New(t)
	circ := mulEq()

	out, err := circuit.Eval(circ, []ring.R32{31, 65, 31 * 65})
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.DeepEquals, []ring.R32{0})

	out, err = circuit.Eval(circ, []ring.R32{31, 65, 31*65 + 1})
	c.Assert(err, qt.IsNil)
	c.Assert(out[0], qt.Not(qt.Equals), ring.R32(0))
}

func selectEq() *circuit.Circuit {
	b := builder.New(3)
	idx, w0, w1 := b.Input(0), b.Input(1), b.Input(2)
	sel := b.Select(idx, w0, w1)
	b.Out(b.Sub(sel, b.Const(0)))
	return b.Build()
}

func TestSelectEq(t *testing.T) {
	c := qt.New(t)
	circ := selectEq()

	out, err := circuit.Eval(circ, []ring.R32{0, 0, 1})
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.DeepEquals, []ring.R32{0})

	out, err = circuit.Eval(circ, []ring.R32{1, 0, 1})
	c.Assert(err, qt.IsNil)
	c.Assert(out[0], qt.Equals, ring.R32(1))
}

func decode32Wraparound() *circuit.Circuit {
	b := builder.New(2)
	a, bb := b.Input(0), b.Input(1)
	bits := b.Decode32(a)
	reenc := b.Encode(bits...)
	b.Out(b.Add(reenc, bb))
	return b.Build()
}

func TestDecode32Wraparound(t *testing.T) {
	c := qt.New(t)
	circ := decode32Wraparound()

	out, err := circuit.Eval(circ, []ring.R32{1 << 31, 1 << 31})
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.DeepEquals, []ring.R32{0})
}

func TestCheckAllEqButOne(t *testing.T) {
	c := qt.New(t)

	b := builder.New(5)
	idx := b.Input(0)
	x0, y0 := b.Input(1), b.Input(2)
	x1, y1 := b.Input(3), b.Input(4)
	b.CheckAllEqButOne(idx, []builder.Pair{{x0, y0}, {x1, y1}})
	circ := b.Build()

	out, err := circuit.Eval(circ, []ring.R32{0, 5, 9, 7, 7})
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.DeepEquals, []ring.R32{0})

	out, err = circuit.Eval(circ, []ring.R32{0, 5, 9, 7, 8})
	c.Assert(err, qt.IsNil)
	c.Assert(out[0], qt.Not(qt.Equals), ring.R32(0))
}

func TestEvalRejectsWrongInputCount(t *testing.T) {
	c := qt.New(t)
	circ := addEq42()

	_, err := circuit.Eval(circ, []ring.R32{1})
	c.Assert(err, qt.Not(qt.IsNil))
}
