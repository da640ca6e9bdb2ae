// Package quicksilver implements the interactive QuickSilver-style
// argument, split into a Prove side and a Verify side, that evaluates a
// circuit.Circuit twice
// in lockstep -- once on VOLE-committed witness values, once on VOLE
// keys -- and checks the accumulated multiplication relation against a
// single random challenge. Ported in spirit from
// original_source/backend/src/quicksilver/{prove,verify}.rs, whose
// per-gate commit/open/accumulate structure this package completes.
package quicksilver

import (
	"github.com/vocdoni/miniram-zk/circuit"
	"github.com/vocdoni/miniram-zk/vole"
)

// SegmentsFor computes the exact VOLE batch sizes a proof of c requires,
// per spec §3's four correlation pools (witness inputs, multiplication
// outputs, openings, one multiplication-check slot).
//
// The "multiplication outputs" pool covers every value the Prover must
// freshly commit because it is a *quadratic* function of already-
// committed values: literal MUL products, SELECT's indicator bits and
// their products with the selected wire, SELECT_CONST's indicator bits
// (its products with constants are linear and need no extra commit),
// DECODE32's 32 output bits per gate, and CHECK_ALL_EQ_BUT_ONE's
// indicator bits (one per pair, including the exempted pair).
//
// The "openings" pool covers every value the Prover must reveal-and-
// prove-correct via the masked (z, tz) opening trick: the circuit's own
// declared OUT values, plus the one internal correctness opening each
// quadratic gadget needs (SELECT's and SELECT_CONST's "sum of
// indicators = 1", DECODE32's "sum of weighted bits = original value",
// CHECK_ALL_EQ_BUT_ONE's "sum of indicators = n-1"). CHECK_ALL_EQ_BUT_ONE
// produces no wire of its own -- see circuit.Eval -- so it contributes
// only that one opening, not a second "declared output" opening.
func SegmentsFor(c *circuit.Circuit) vole.Segments {
	nMul := c.NMul +
		2*c.NSelectAlt +
		c.NSelectConstAlt +
		32*c.NDecode32 +
		c.NCheckAllEqPairs

	nOut := c.NOut +
		c.NSelect + // "sum of indicators = 1"
		c.NSelectConst +
		c.NDecode32 + // "sum of weighted bits = x"
		c.NCheckAllEqButOne // "sum of indicators = n-1"

	return vole.Segments{
		NIn:       c.NIn,
		NMul:      nMul,
		NOut:      nOut,
		NMulCheck: 1,
	}
}
