// Package circuit implements the IR gate stream and its deterministic
// clear-text evaluator: a compact opcode stream over a monotonically
// allocated wire space, generalized from the small fixed opcode set of
// the original MiniRAM prototype's circuit evaluator (utils/src/circuit.rs)
// to the full operation set this system's transition circuit needs.
package circuit

import (
	"fmt"

	"github.com/vocdoni/miniram-zk/ring"
	"github.com/vocdoni/miniram-zk/zkerrors"
)

// Op identifies a gate's operation.
type Op uint32

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpMulConst
	OpSelect
	OpSelectConst
	OpDecode32
	OpEncode4
	OpEncode5
	OpEncode8
	OpEncode32
	OpConst
	OpOut
	OpCheckAllEqButOne
	opCount
)

// ArgZero is the sentinel marking the start of the operand space: a gate
// stream word below ArgZero is an opcode tag, at or above it is a wire
// reference (operand_value = word - ArgZero). Fixed comfortably above the
// highest opcode tag (opCount-1 = 13).
const ArgZero uint32 = 16

// Circuit is the opaque gate-stream-plus-constants object produced by the
// builder and consumed by Eval and by the QuickSilver prover/verifier.
type Circuit struct {
	Gates  []uint32
	Consts []ring.R32
	NIn    int

	NGates            int
	NOut              int
	NMul              int
	NSelect           int
	NSelectConst      int
	NDecode32         int
	NCheckAllEqButOne int

	// Alternative counts: aggregate operand widths, used to pre-size
	// VOLE correlations for the quadratic-gadget commit schemes.
	NSelectAlt       int
	NSelectConstAlt  int
	NCheckAllEqPairs int
}

func encodeWidth(op Op) int {
	switch op {
	case OpEncode4:
		return 4
	case OpEncode5:
		return 5
	case OpEncode8:
		return 8
	case OpEncode32:
		return 32
	default:
		return 0
	}
}

func assertionf(format string, args ...any) error {
	return zkerrors.New(zkerrors.AssertionFailure, fmt.Sprintf(format, args...))
}

// Eval walks the gate stream against input, returning the circuit's
// declared outputs (OUT and CHECK_ALL_EQ_BUT_ONE values) in stream order.
// It never panics on a well-formed stream; any invariant violation (a
// malformed operand, an out-of-range index) is returned as an
// AssertionFailure, never silently tolerated.
func Eval(c *Circuit, input []ring.R32) ([]ring.R32, error) {
	if len(input) != c.NIn {
		return nil, assertionf("circuit: expected %d inputs, got %d", c.NIn, len(input))
	}

	wires := make([]ring.R32, len(input), len(input)+len(c.Gates))
	copy(wires, input)

	gates := c.Gates
	i := 0

	readWord := func() (uint32, error) {
		if i >= len(gates) {
			return 0, assertionf("circuit: truncated gate stream")
		}
		w := gates[i]
		i++
		return w, nil
	}

	wireAt := func(id uint32) (ring.R32, error) {
		if id < ArgZero || int(id-ArgZero) >= len(wires) {
			return 0, assertionf("circuit: operand %d out of range (have %d wires)", id, len(wires))
		}
		return wires[id-ArgZero], nil
	}

	constAt := func(idx uint32) (ring.R32, error) {
		if int(idx) >= len(c.Consts) {
			return 0, assertionf("circuit: const index %d out of range (have %d consts)", idx, len(c.Consts))
		}
		return c.Consts[idx], nil
	}

	readWires := func(n int) ([]ring.R32, error) {
		vs := make([]ring.R32, n)
		for k := 0; k < n; k++ {
			id, err := readWord()
			if err != nil {
				return nil, err
			}
			v, err := wireAt(id)
			if err != nil {
				return nil, err
			}
			vs[k] = v
		}
		return vs, nil
	}

	var outputs []ring.R32
	nGates, nOut, nMul := 0, 0, 0
	nSelect, nSelectAlt := 0, 0
	nSelectConst, nSelectConstAlt := 0, 0
	nDecode32 := 0
	nCheck, nCheckPairs := 0, 0

	for i < len(gates) {
		opWord, err := readWord()
		if err != nil {
			return nil, err
		}
		if opWord >= uint32(opCount) {
			return nil, assertionf("circuit: unknown opcode tag %d", opWord)
		}
		op := Op(opWord)
		nGates++

		switch op {
		case OpAdd:
			count, err := readWord()
			if err != nil {
				return nil, err
			}
			vs, err := readWires(int(count))
			if err != nil {
				return nil, err
			}
			var sum ring.R32
			for _, v := range vs {
				sum = ring.AddR32(sum, v)
			}
			wires = append(wires, sum)

		case OpSub:
			vs, err := readWires(2)
			if err != nil {
				return nil, err
			}
			wires = append(wires, ring.SubR32(vs[0], vs[1]))

		case OpMul:
			vs, err := readWires(2)
			if err != nil {
				return nil, err
			}
			nMul++
			wires = append(wires, ring.MulR32(vs[0], vs[1]))

		case OpMulConst:
			constIdx, err := readWord()
			if err != nil {
				return nil, err
			}
			cv, err := constAt(constIdx)
			if err != nil {
				return nil, err
			}
			vs, err := readWires(1)
			if err != nil {
				return nil, err
			}
			wires = append(wires, ring.MulR32(cv, vs[0]))

		case OpSelect:
			idxID, err := readWord()
			if err != nil {
				return nil, err
			}
			idxVal, err := wireAt(idxID)
			if err != nil {
				return nil, err
			}
			count, err := readWord()
			if err != nil {
				return nil, err
			}
			vs, err := readWires(int(count))
			if err != nil {
				return nil, err
			}
			nSelect++
			nSelectAlt += int(count)
			if int(idxVal) >= len(vs) {
				return nil, assertionf("circuit: select index %d out of range (width %d)", idxVal, len(vs))
			}
			wires = append(wires, vs[idxVal])

		case OpSelectConst:
			idxID, err := readWord()
			if err != nil {
				return nil, err
			}
			idxVal, err := wireAt(idxID)
			if err != nil {
				return nil, err
			}
			count, err := readWord()
			if err != nil {
				return nil, err
			}
			constIdxs := make([]uint32, count)
			for k := range constIdxs {
				constIdxs[k], err = readWord()
				if err != nil {
					return nil, err
				}
			}
			nSelectConst++
			nSelectConstAlt += int(count)
			if int(idxVal) >= len(constIdxs) {
				return nil, assertionf("circuit: select_const index %d out of range (width %d)", idxVal, len(constIdxs))
			}
			cv, err := constAt(constIdxs[idxVal])
			if err != nil {
				return nil, err
			}
			wires = append(wires, cv)

		case OpDecode32:
			vs, err := readWires(1)
			if err != nil {
				return nil, err
			}
			nDecode32++
			for _, b := range ring.Bits(vs[0]) {
				var bv ring.R32
				if b {
					bv = 1
				}
				wires = append(wires, bv)
			}

		case OpEncode4, OpEncode5, OpEncode8, OpEncode32:
			width := encodeWidth(op)
			vs, err := readWires(width)
			if err != nil {
				return nil, err
			}
			var acc ring.R32
			for k, v := range vs {
				acc = ring.AddR32(acc, ring.ShlR32(v, uint(k)))
			}
			wires = append(wires, acc)

		case OpConst:
			constIdx, err := readWord()
			if err != nil {
				return nil, err
			}
			cv, err := constAt(constIdx)
			if err != nil {
				return nil, err
			}
			wires = append(wires, cv)

		case OpOut:
			vs, err := readWires(1)
			if err != nil {
				return nil, err
			}
			nOut++
			outputs = append(outputs, vs[0])

		case OpCheckAllEqButOne:
			idxID, err := readWord()
			if err != nil {
				return nil, err
			}
			idxVal, err := wireAt(idxID)
			if err != nil {
				return nil, err
			}
			count, err := readWord()
			if err != nil {
				return nil, err
			}
			nCheck++
			nCheckPairs += int(count)
			var violations ring.R32
			for k := 0; k < int(count); k++ {
				pair, err := readWires(2)
				if err != nil {
					return nil, err
				}
				if uint32(k) == idxVal {
					continue
				}
				if pair[0] != pair[1] {
					violations = ring.AddR32(violations, 1)
				}
			}
			outputs = append(outputs, violations)

		default:
			return nil, assertionf("circuit: unhandled opcode %d", op)
		}
	}

	if nGates != c.NGates || nOut != c.NOut || nMul != c.NMul ||
		nSelect != c.NSelect || nSelectConst != c.NSelectConst ||
		nDecode32 != c.NDecode32 || nCheck != c.NCheckAllEqButOne ||
		nSelectAlt != c.NSelectAlt || nSelectConstAlt != c.NSelectConstAlt ||
		nCheckPairs != c.NCheckAllEqPairs {
		return nil, assertionf("circuit: declared counters do not match gate stream contents")
	}

	return outputs, nil
}
