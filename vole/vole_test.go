package vole_test

import (
	"bytes"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/vocdoni/miniram-zk/ring"
	"github.com/vocdoni/miniram-zk/vole"
)

func TestDealSegmentSizes(t *testing.T) {
	c := qt.New(t)
	seg := vole.Segments{NIn: 3, NMul: 5, NOut: 2, NMulCheck: 1}
	c.Assert(seg.Size(), qt.Equals, 11)

	_, shares, keys, err := vole.Deal(seg, fixedEntropy())
	c.Assert(err, qt.IsNil)
	c.Assert(shares.RIn, qt.HasLen, 3)
	c.Assert(shares.RMul, qt.HasLen, 5)
	c.Assert(shares.ROut, qt.HasLen, 2)
	c.Assert(shares.RMulCheck, qt.HasLen, 1)
	c.Assert(keys.KIn, qt.HasLen, 3)
	c.Assert(keys.KMul, qt.HasLen, 5)
	c.Assert(keys.KOut, qt.HasLen, 2)
	c.Assert(keys.KMulCheck, qt.HasLen, 1)
}

func TestDealCorrelationHolds(t *testing.T) {
	c := qt.New(t)
	seg := vole.Segments{NIn: 4, NMul: 4, NOut: 4, NMulCheck: 1}

	delta, shares, keys, err := vole.Deal(seg, fixedEntropy())
	c.Assert(err, qt.IsNil)

	for i := range shares.RIn {
		got := ring.AddR128(ring.MulR128(delta, shares.RIn[i]), keys.KIn[i])
		c.Assert(got, qt.DeepEquals, shares.MIn[i])
	}
	for i := range shares.RMul {
		got := ring.AddR128(ring.MulR128(delta, shares.RMul[i]), keys.KMul[i])
		c.Assert(got, qt.DeepEquals, shares.MMul[i])
	}
}

func TestDealRejectsNegativeSegment(t *testing.T) {
	c := qt.New(t)
	_, _, _, err := vole.Deal(vole.Segments{NIn: -1}, fixedEntropy())
	c.Assert(err, qt.Not(qt.IsNil))
}

// fixedEntropy returns a deterministic, sufficiently long byte stream
// so tests don't depend on crypto/rand.
func fixedEntropy() *bytes.Reader {
	buf := make([]byte, 1<<16)
	for i := range buf {
		buf[i] = byte(i*2654435761 + 17)
	}
	return bytes.NewReader(buf)
}
