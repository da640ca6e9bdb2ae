package witness_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/vocdoni/miniram-zk/miniram"
	"github.com/vocdoni/miniram-zk/miniram/witness"
	"github.com/vocdoni/miniram-zk/ring"
)

func TestEncodeLengthMatchesTraceLengthInvariance(t *testing.T) {
	c := qt.New(t)
	prog := miniram.MulEqProgram()

	trace, err := miniram.Interpret(prog, []ring.R32{2, 17, 34}, 22)
	c.Assert(err, qt.IsNil)

	v, err := witness.Encode(trace, 22)
	c.Assert(err, qt.IsNil)
	c.Assert(len(v), qt.Equals, witness.Len(22))
}

func TestEncodeRejectsEmptyTrace(t *testing.T) {
	c := qt.New(t)
	_, err := witness.Encode(nil, 4)
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestSortPermutationPutsNonMemoryStepsFirst(t *testing.T) {
	c := qt.New(t)
	trace := []miniram.LocalState{
		{Mem: miniram.MemAccess{Kind: miniram.MemWrite, Addr: 5}},
		{Mem: miniram.MemAccess{Kind: miniram.MemNone}},
		{Mem: miniram.MemAccess{Kind: miniram.MemRead, Addr: 2}},
	}
	sigma, inverse := witness.SortPermutation(trace)
	c.Assert(sigma[0], qt.Equals, 1)
	c.Assert(sigma[1], qt.Equals, 2)
	c.Assert(sigma[2], qt.Equals, 0)

	for i, s := range sigma {
		c.Assert(inverse[s], qt.Equals, i)
	}
}

func TestMemTapsShiftsAddrAndZeroesNonMemory(t *testing.T) {
	c := qt.New(t)
	padded := []miniram.LocalState{
		{Mem: miniram.MemAccess{Kind: miniram.MemWrite, Addr: 5, Val: 9}},
		{Mem: miniram.MemAccess{Kind: miniram.MemNone}},
		{Mem: miniram.MemAccess{Kind: miniram.MemRead, Addr: 5, Val: 9}},
	}
	taps := witness.MemTaps(padded)
	c.Assert(taps[0].Addr, qt.Equals, ring.R32(6))
	c.Assert(taps[0].IsLoad, qt.Equals, false)
	c.Assert(taps[1].Addr, qt.Equals, ring.R32(0))
	c.Assert(taps[2].Addr, qt.Equals, ring.R32(6))
	c.Assert(taps[2].IsLoad, qt.Equals, true)
	for i, tap := range taps {
		c.Assert(tap.Timestamp, qt.Equals, ring.R32(i+1))
	}
}

func TestEncodeRejectsReadNotSeeingMostRecentWrite(t *testing.T) {
	c := qt.New(t)
	trace := []miniram.LocalState{
		{Mem: miniram.MemAccess{Kind: miniram.MemWrite, Addr: 5, Val: 9}},
		{Mem: miniram.MemAccess{Kind: miniram.MemRead, Addr: 5, Val: 99}}, // forged: should read 9
	}
	_, err := witness.Encode(trace, 2)
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestEncodeAcceptsConsistentMemoryTrace(t *testing.T) {
	c := qt.New(t)
	prog := miniram.MulEqProgram()
	trace, err := miniram.Interpret(prog, []ring.R32{2, 17, 34}, 22)
	c.Assert(err, qt.IsNil)

	_, err = witness.Encode(trace, 22)
	c.Assert(err, qt.IsNil)
}

func TestPadRepeatsFinalState(t *testing.T) {
	c := qt.New(t)
	prog := miniram.MulEqProgram()
	trace, err := miniram.Interpret(prog, []ring.R32{2, 17, 34}, 22)
	c.Assert(err, qt.IsNil)

	padded, err := witness.Pad(trace, 22)
	c.Assert(err, qt.IsNil)
	c.Assert(len(padded), qt.Equals, 22)
	c.Assert(padded[len(padded)-1], qt.DeepEquals, padded[len(trace)-1])
}
