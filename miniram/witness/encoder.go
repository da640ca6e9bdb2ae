// Package witness turns an interpreted MiniRAM execution trace into the
// flat witness vector the transition circuit (package miniram/reduction)
// takes as input: T padded per-step states followed by the AS-Waksman
// configuration bits of the memory-sorting permutation. Grounded on
// original_source/frontend/src/miniram/reduction.rs's encode_witness for
// the padding step; the sort and routing step it never reached is
// completed here per spec.
package witness

import (
	"sort"

	"github.com/vocdoni/miniram-zk/miniram"
	"github.com/vocdoni/miniram-zk/ring"
	"github.com/vocdoni/miniram-zk/waksman"
	"github.com/vocdoni/miniram-zk/zkerrors"
)

// StateWidth is the per-step witness width: 16 registers plus the Z flag.
const StateWidth = miniram.NRegs + 1

// Vector is the flattened witness the transition circuit consumes.
type Vector []ring.R32

// MemTap is one step's contribution to the memory-consistency network, in
// time order (timestamp = step+1, matching spec's 1,2,...,T sequence).
type MemTap struct {
	Timestamp ring.R32
	Addr      ring.R32
	Val       ring.R32
	IsLoad    bool
}

// Len returns the witness vector length for a given step bound T:
// T*(16+1) + conf_len(T).
func Len(t int) int {
	return t*StateWidth + waksman.ConfLen(t)
}

// Pad repeats the final trace entry until the trace has exactly T
// entries. The trace must have at least one entry.
func Pad(trace []miniram.LocalState, t int) ([]miniram.LocalState, error) {
	if len(trace) == 0 {
		return nil, zkerrors.New(zkerrors.AssertionFailure, "witness: empty trace")
	}
	if len(trace) > t {
		return nil, zkerrors.New(zkerrors.AssertionFailure, "witness: trace longer than T")
	}
	padded := make([]miniram.LocalState, t)
	copy(padded, trace)
	last := trace[len(trace)-1]
	for i := len(trace); i < t; i++ {
		padded[i] = last
	}
	return padded, nil
}

// SortPermutation computes sigma (the argsort: sigma[i] is the original
// step index landing at sorted position i) and its inverse over a padded
// trace, under the key (touches-memory, address, step), non-memory steps
// sorting first and ties on address broken by step index. The sort is
// stable.
func SortPermutation(padded []miniram.LocalState) (sigma, inverse waksman.Permutation) {
	n := len(padded)
	sigma = make(waksman.Permutation, n)
	for i := range sigma {
		sigma[i] = i
	}
	sort.SliceStable(sigma, func(a, b int) bool {
		sa, sb := padded[sigma[a]], padded[sigma[b]]
		ma, mb := sa.Mem.Kind != miniram.MemNone, sb.Mem.Kind != miniram.MemNone
		if ma != mb {
			return !ma
		}
		if sa.Mem.Addr != sb.Mem.Addr {
			return sa.Mem.Addr < sb.Mem.Addr
		}
		return sigma[a] < sigma[b]
	})

	inverse = waksman.Inverse(sigma)
	return sigma, inverse
}

// MemTaps extracts the (timestamp, addr, val, is_load) vectors in time
// order, using the same address encoding miniram/reduction's transition
// circuit does: addr is the raw address plus one, zeroed on steps with
// no memory access, so address 0 is never ambiguous with a real access
// to address 0.
func MemTaps(padded []miniram.LocalState) []MemTap {
	taps := make([]MemTap, len(padded))
	for i, s := range padded {
		var addr ring.R32
		if s.Mem.Kind != miniram.MemNone {
			addr = ring.AddR32(s.Mem.Addr, 1)
		}
		taps[i] = MemTap{
			Timestamp: ring.R32(i + 1),
			Addr:      addr,
			Val:       s.Mem.Val,
			IsLoad:    s.Mem.Kind == miniram.MemRead,
		}
	}
	return taps
}

// validateMemoryOrder mirrors the two per-adjacent-pair checks
// miniram/reduction's transition circuit performs on the Waksman-sorted
// memory taps -- sorted by (addr, timestamp), and every read seeing the
// value of the most recent write to the same address -- so a malformed
// trace fails fast here instead of producing an opaque proof-rejection
// downstream.
func validateMemoryOrder(taps []MemTap, sigma waksman.Permutation) error {
	for i := 0; i+1 < len(sigma); i++ {
		a, b := taps[sigma[i]], taps[sigma[i+1]]
		if a.Addr > b.Addr || (a.Addr == b.Addr && a.Timestamp > b.Timestamp) {
			return zkerrors.New(zkerrors.AssertionFailure, "witness: memory taps not sorted by (addr, timestamp)")
		}
		if a.Addr == b.Addr && b.IsLoad && a.Val != b.Val {
			return zkerrors.New(zkerrors.AssertionFailure, "witness: read does not see the most recent write")
		}
	}
	return nil
}

// Encode runs the full encoding pipeline: pad the trace to T steps, compute the
// sorting permutation, and flatten states plus routing config bits into
// the witness vector consumed by miniram/reduction.GenerateCircuit.
func Encode(trace []miniram.LocalState, t int) (Vector, error) {
	padded, err := Pad(trace, t)
	if err != nil {
		return nil, err
	}

	sigma, inverse := SortPermutation(padded)
	if err := validateMemoryOrder(MemTaps(padded), sigma); err != nil {
		return nil, err
	}
	conf := waksman.Route(inverse)

	v := make(Vector, 0, Len(t))
	for _, s := range padded {
		v = append(v, s.Registers[:]...)
		if s.Z {
			v = append(v, 1)
		} else {
			v = append(v, 0)
		}
	}
	for _, bit := range conf {
		if bit {
			v = append(v, 1)
		} else {
			v = append(v, 0)
		}
	}
	return v, nil
}
