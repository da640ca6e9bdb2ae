package ring_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/vocdoni/miniram-zk/ring"
)

func TestBitsRoundTrip(t *testing.T) {
	c := qt.New(t)

	vs := []ring.R32{0, 1, 42, 1 << 31, 0xffffffff, 0x80000001}
	for _, v := range vs {
		c.Assert(ring.BitsToR32(ring.Bits(v)), qt.Equals, v)
	}
}

func TestWrappingArithmetic(t *testing.T) {
	c := qt.New(t)

	c.Assert(ring.AddR32(0xffffffff, 1), qt.Equals, ring.R32(0))
	c.Assert(ring.SubR32(0, 1), qt.Equals, ring.R32(0xffffffff))
	c.Assert(ring.MulR32(1<<16, 1<<16), qt.Equals, ring.R32(0))
}

func TestR128AddSubRoundTrip(t *testing.T) {
	c := qt.New(t)

	x := ring.R128{Hi: 1, Lo: 2}
	y := ring.R128{Hi: 3, Lo: 4}

	sum := ring.AddR128(x, y)
	c.Assert(ring.SubR128(sum, y), qt.Equals, x)
}

func TestR128AddOverflowsLoIntoHi(t *testing.T) {
	c := qt.New(t)

	x := ring.R128{Hi: 0, Lo: ^uint64(0)}
	y := ring.FromUint64(1)

	c.Assert(ring.AddR128(x, y), qt.Equals, ring.R128{Hi: 1, Lo: 0})
}

func TestR128MulMatchesSmallProducts(t *testing.T) {
	c := qt.New(t)

	x := ring.FromUint64(31)
	y := ring.FromUint64(65)
	c.Assert(ring.MulR128(x, y), qt.Equals, ring.FromUint64(31*65))
}

func TestR128ShiftByOneDoublesAndHalves(t *testing.T) {
	c := qt.New(t)

	x := ring.FromUint64(1)
	shl64 := ring.ShlR128(x, 64)
	c.Assert(shl64, qt.Equals, ring.R128{Hi: 1, Lo: 0})
	c.Assert(ring.ShrR128(shl64, 64), qt.Equals, x)
}

func TestR128BytesRoundTrip(t *testing.T) {
	c := qt.New(t)

	x := ring.R128{Hi: 0x0102030405060708, Lo: 0x1112131415161718}
	c.Assert(ring.R128FromBytes(x.Bytes()), qt.Equals, x)
}
