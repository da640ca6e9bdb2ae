package builder

import (
	"github.com/vocdoni/miniram-zk/ring"
)

// one and zero lazily materialize shared literal wires; callers that need
// many bit gadgets in sequence can reuse them instead of emitting a fresh
// CONST gate per call.
type bitConsts struct {
	b    *Builder
	zero *Wire
	one  *Wire
}

func (bc *bitConsts) Zero() Wire {
	if bc.zero == nil {
		w := bc.b.Const(0)
		bc.zero = &w
	}
	return *bc.zero
}

func (bc *bitConsts) One() Wire {
	if bc.one == nil {
		w := bc.b.Const(1)
		bc.one = &w
	}
	return *bc.one
}

// AndBit returns a*b, assuming a, b are bit-valued wires (0 or 1).
func (b *Builder) AndBit(a, bw Wire) Wire {
	return b.Mul(a, bw)
}

// OrBit returns a+b-a*b, assuming a, b are bit-valued wires.
func (b *Builder) OrBit(a, bw Wire) Wire {
	return b.Sub(b.Add(a, bw), b.Mul(a, bw))
}

// XorBit returns a+b-2*a*b, assuming a, b are bit-valued wires. Compiled
// as a multiplication since the underlying ring has no native XOR.
func (b *Builder) XorBit(a, bw Wire) Wire {
	ab := b.Mul(a, bw)
	return b.Sub(b.Add(a, bw), b.MulConst(2, ab))
}

// NotBit returns 1-a for a bit-valued wire a.
func (b *Builder) NotBit(a Wire, bc *bitConsts) Wire {
	return b.Sub(bc.One(), a)
}

// FullAdder returns (sum, carry-out) for bit-valued a, b, carry-in cin.
func (b *Builder) FullAdder(a, bw, cin Wire) (sum, cout Wire) {
	axb := b.XorBit(a, bw)
	sum = b.XorBit(axb, cin)
	cout = b.OrBit(b.AndBit(a, bw), b.AndBit(cin, axb))
	return sum, cout
}

// RippleAdder adds two equal-length bit vectors (LSB first), returning
// the sum bits and the final carry-out.
func (b *Builder) RippleAdder(xs, ys []Wire, bc *bitConsts) (sum []Wire, cout Wire) {
	carry := bc.Zero()
	sum = make([]Wire, len(xs))
	for i := range xs {
		sum[i], carry = b.FullAdder(xs[i], ys[i], carry)
	}
	return sum, carry
}

// CompareBits compares two equal-length bit vectors given MSB first,
// returning (lt, eq): lt is 1 iff xs < ys as unsigned integers.
func (b *Builder) CompareBits(xs, ys []Wire, bc *bitConsts) (lt, eq Wire) {
	lt = bc.Zero()
	eq = bc.One()
	for i := range xs {
		notXi := b.NotBit(xs[i], bc)
		bitLess := b.AndBit(notXi, ys[i])
		lt = b.Add(lt, b.Mul(eq, bitLess))
		eqBit := b.NotBit(b.XorBit(xs[i], ys[i]), bc)
		eq = b.Mul(eq, eqBit)
	}
	return lt, eq
}

// Switch implements a 2-input mux on config bit sw: when sw=0 passes
// (x,y) through unchanged; when sw=1 swaps them.
func (b *Builder) Switch(x, y, sw Wire, bc *bitConsts) (out0, out1 Wire) {
	notSw := b.NotBit(sw, bc)
	out0 = b.Add(b.Mul(x, notSw), b.Mul(y, sw))
	out1 = b.Add(b.Mul(x, sw), b.Mul(y, notSw))
	return out0, out1
}

// WaksmanLayout routes ws through an AS-Waksman network of size len(ws),
// consuming exactly waksman.ConfLen(len(ws)) config-bit wires from conf
// (in the same order waksman.Route emits them), mirroring the recursive
// structure of waksman.Apply but building gates instead of evaluating
// directly.
func (b *Builder) WaksmanLayout(ws []Wire, conf []Wire, bc *bitConsts) []Wire {
	cur := 0
	return b.waksmanLayout(ws, conf, &cur, bc)
}

func (b *Builder) waksmanLayout(ws []Wire, conf []Wire, cur *int, bc *bitConsts) []Wire {
	n := len(ws)
	if n == 1 {
		return []Wire{ws[0]}
	}
	if n == 2 {
		sw := conf[*cur]
		*cur++
		o0, o1 := b.Switch(ws[0], ws[1], sw, bc)
		return []Wire{o0, o1}
	}

	even := n%2 == 0
	var lower, upper []Wire
	start := 0
	if !even {
		lower = append(lower, ws[0])
		start = 1
	}
	for i := start; i+1 < n; i += 2 {
		sw := conf[*cur]
		*cur++
		o0, o1 := b.Switch(ws[i], ws[i+1], sw, bc)
		lower = append(lower, o0)
		upper = append(upper, o1)
	}

	lowerOut := b.waksmanLayout(lower, conf, cur, bc)
	upperOut := b.waksmanLayout(upper, conf, cur, bc)

	out := make([]Wire, n)
	var li, ui, oi int
	if even {
		out[0], out[1] = lowerOut[0], upperOut[0]
		li, ui, oi = 1, 1, 2
	} else {
		out[0] = lowerOut[0]
		li, oi = 1, 1
	}
	for oi+1 < n {
		sw := conf[*cur]
		*cur++
		o0, o1 := b.Switch(lowerOut[li], upperOut[ui], sw, bc)
		out[oi], out[oi+1] = o0, o1
		li, ui = li+1, ui+1
		oi += 2
	}
	return out
}

// NewBitConsts starts a shared zero/one literal cache for gadget helpers.
func NewBitConsts(b *Builder) *bitConsts {
	return &bitConsts{b: b}
}

// DecodedInstruction is the result of decoding a 64-bit MiniRAM
// instruction (split into two 32-bit constant halves) into its fields,
// via SELECT_CONST tables keyed by opcode -- the "giant multiplexer"
// dispatch style the ALU itself also uses.
type DecodedInstruction struct {
	Opcode   Wire
	Dst      Wire
	Arg0     Wire
	Arg1Reg  Wire
	Arg1Word Wire
	IsMem    Wire
	IsLoad   Wire
	IsRet    Wire
	IsStr    Wire
}

// opcode field layout within the high/low 32-bit halves, matching
// miniram/encode.go's encodeInstrWord.
const (
	opcodeShift = 24
	dstShift    = 16
	arg0Shift   = 8
)

// DecodeInstruction splits hi (opcode:dst:arg0 packed in byte fields) and
// lo (arg1 as both a register index in its low 4 bits and a full word)
// into named fields, and derives the is_mem/is_load/is_ret/is_str flags
// via per-opcode lookup tables.
func (b *Builder) DecodeInstruction(hi, lo Wire) DecodedInstruction {
	hiBits := b.Decode32(hi)
	opcodeBits := hiBits[opcodeShift : opcodeShift+8]
	dstBits := hiBits[dstShift : dstShift+8]
	arg0Bits := hiBits[arg0Shift : arg0Shift+8]

	opcode := b.Encode(opcodeBits...)
	dst := b.Encode(dstBits...)
	arg0 := b.Encode(arg0Bits...)

	loBits := b.Decode32(lo)
	arg1Reg := b.Encode(loBits[0:4]...)

	isMem := b.SelectConst(opcode, miniramIsMemTable()...)
	isLoad := b.SelectConst(opcode, miniramIsLoadTable()...)
	isRet := b.SelectConst(opcode, miniramIsRetTable()...)
	isStr := b.SelectConst(opcode, miniramIsStrTable()...)

	return DecodedInstruction{
		Opcode:   opcode,
		Dst:      dst,
		Arg0:     arg0,
		Arg1Reg:  arg1Reg,
		Arg1Word: lo,
		IsMem:    isMem,
		IsLoad:   isLoad,
		IsRet:    isRet,
		IsStr:    isStr,
	}
}

// The four lookup tables below are indexed by the opcode numbering in
// miniram.Inst's Opcode method (0=ADD ... 14=PRINT).
func miniramIsMemTable() []ring.R32 {
	return []ring.R32{0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0}
}

func miniramIsLoadTable() []ring.R32 {
	return []ring.R32{0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
}

func miniramIsRetTable() []ring.R32 {
	return []ring.R32{0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0}
}

func miniramIsStrTable() []ring.R32 {
	return []ring.R32{0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0}
}
