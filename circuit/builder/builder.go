// Package builder provides a programmatic API for constructing circuit
// gate streams while maintaining the wire-id and counter bookkeeping the
// evaluator's invariants require. Ported in spirit from the original
// MiniRAM prototype's Builder<T> (utils/src/circuit/builder.rs), which
// tracked a monotone cursor over gates and constants; generalized here to
// the fuller opcode set and gadget library the transition circuit needs.
package builder

import (
	"github.com/vocdoni/miniram-zk/circuit"
	"github.com/vocdoni/miniram-zk/ring"
)

// Wire is a reference into the unified (input | constant-loaded |
// gate-output) wire space, already biased by circuit.ArgZero.
type Wire uint32

// Builder accumulates a gate stream and constants table, allocating wire
// ids strictly monotonically as gates are appended.
type Builder struct {
	gates  []uint32
	consts []ring.R32
	nIn    int
	cursor uint32

	nGates, nOut, nMul            int
	nSelect, nSelectConst         int
	nDecode32, nCheckAllEqButOne  int
	nSelectAlt, nSelectConstAlt   int
	nCheckAllEqPairs              int
}

// New starts a builder for a circuit with nIn input wires.
func New(nIn int) *Builder {
	return &Builder{
		nIn:    nIn,
		cursor: circuit.ArgZero + uint32(nIn),
	}
}

// Input returns the wire for input index i.
func (b *Builder) Input(i int) Wire {
	return Wire(circuit.ArgZero + uint32(i))
}

func (b *Builder) alloc() Wire {
	w := Wire(b.cursor)
	b.cursor++
	return w
}

func (b *Builder) allocN(n int) []Wire {
	ws := make([]Wire, n)
	for i := range ws {
		ws[i] = b.alloc()
	}
	return ws
}

func (b *Builder) pushConst(v ring.R32) uint32 {
	idx := uint32(len(b.consts))
	b.consts = append(b.consts, v)
	return idx
}

// Const loads a literal value into a fresh wire via a CONST gate.
func (b *Builder) Const(v ring.R32) Wire {
	idx := b.pushConst(v)
	b.gates = append(b.gates, uint32(circuit.OpConst), idx)
	b.nGates++
	return b.alloc()
}

// Add returns the sum of ws.
func (b *Builder) Add(ws ...Wire) Wire {
	b.gates = append(b.gates, uint32(circuit.OpAdd), uint32(len(ws)))
	for _, w := range ws {
		b.gates = append(b.gates, uint32(w))
	}
	b.nGates++
	return b.alloc()
}

// Sub returns x-y.
func (b *Builder) Sub(x, y Wire) Wire {
	b.gates = append(b.gates, uint32(circuit.OpSub), uint32(x), uint32(y))
	b.nGates++
	return b.alloc()
}

// Mul returns x*y.
func (b *Builder) Mul(x, y Wire) Wire {
	b.gates = append(b.gates, uint32(circuit.OpMul), uint32(x), uint32(y))
	b.nGates++
	b.nMul++
	return b.alloc()
}

// MulConst returns c*w for a literal c.
func (b *Builder) MulConst(c ring.R32, w Wire) Wire {
	idx := b.pushConst(c)
	b.gates = append(b.gates, uint32(circuit.OpMulConst), idx, uint32(w))
	b.nGates++
	return b.alloc()
}

// Select returns ws[idx] for a wire-valued index idx.
func (b *Builder) Select(idx Wire, ws ...Wire) Wire {
	b.gates = append(b.gates, uint32(circuit.OpSelect), uint32(idx), uint32(len(ws)))
	for _, w := range ws {
		b.gates = append(b.gates, uint32(w))
	}
	b.nGates++
	b.nSelect++
	b.nSelectAlt += len(ws)
	return b.alloc()
}

// SelectConst returns vals[idx] for a wire-valued index idx and a table
// of literal values.
func (b *Builder) SelectConst(idx Wire, vals ...ring.R32) Wire {
	idxs := make([]uint32, len(vals))
	for i, v := range vals {
		idxs[i] = b.pushConst(v)
	}
	b.gates = append(b.gates, uint32(circuit.OpSelectConst), uint32(idx), uint32(len(idxs)))
	b.gates = append(b.gates, idxs...)
	b.nGates++
	b.nSelectConst++
	b.nSelectConstAlt += len(vals)
	return b.alloc()
}

// Decode32 expands w into 32 bit-valued wires, LSB first.
func (b *Builder) Decode32(w Wire) []Wire {
	b.gates = append(b.gates, uint32(circuit.OpDecode32), uint32(w))
	b.nGates++
	b.nDecode32++
	return b.allocN(32)
}

// Encode sums 2^k*bits[k] (wrapping) into a single wire. len(bits) must
// be 4, 5, 8, or 32.
func (b *Builder) Encode(bits ...Wire) Wire {
	var op circuit.Op
	switch len(bits) {
	case 4:
		op = circuit.OpEncode4
	case 5:
		op = circuit.OpEncode5
	case 8:
		op = circuit.OpEncode8
	case 32:
		op = circuit.OpEncode32
	default:
		panic("builder: Encode width must be 4, 5, 8, or 32")
	}
	b.gates = append(b.gates, uint32(op))
	for _, w := range bits {
		b.gates = append(b.gates, uint32(w))
	}
	b.nGates++
	return b.alloc()
}

// Out declares w as a circuit output.
func (b *Builder) Out(w Wire) {
	b.gates = append(b.gates, uint32(circuit.OpOut), uint32(w))
	b.nGates++
	b.nOut++
}

// Pair is an (x,y) operand pair for CheckAllEqButOne.
type Pair struct{ X, Y Wire }

// CheckAllEqButOne asserts every pair is equal except the one selected by
// idx, emitting a check-value output that is zero on success.
func (b *Builder) CheckAllEqButOne(idx Wire, pairs []Pair) {
	b.gates = append(b.gates, uint32(circuit.OpCheckAllEqButOne), uint32(idx), uint32(len(pairs)))
	for _, p := range pairs {
		b.gates = append(b.gates, uint32(p.X), uint32(p.Y))
	}
	b.nGates++
	b.nCheckAllEqButOne++
	b.nCheckAllEqPairs += len(pairs)
}

// Build finalizes the circuit, freezing the gate stream and counters.
func (b *Builder) Build() *circuit.Circuit {
	return &circuit.Circuit{
		Gates:             append([]uint32{}, b.gates...),
		Consts:            append([]ring.R32{}, b.consts...),
		NIn:               b.nIn,
		NGates:            b.nGates,
		NOut:              b.nOut,
		NMul:              b.nMul,
		NSelect:           b.nSelect,
		NSelectConst:      b.nSelectConst,
		NDecode32:         b.nDecode32,
		NCheckAllEqButOne: b.nCheckAllEqButOne,
		NSelectAlt:        b.nSelectAlt,
		NSelectConstAlt:   b.nSelectConstAlt,
		NCheckAllEqPairs:  b.nCheckAllEqPairs,
	}
}
