package ring

import "math/bits"

// R128 is an element of Z/2^128, used for MACs/keys/Δ. Represented as
// two 64-bit limbs (Hi, Lo), value = Hi*2^64 + Lo (mod 2^128).
type R128 struct {
	Hi, Lo uint64
}

// FromR32 zero-extends a ring element into R128.
func FromR32(v R32) R128 {
	return R128{Hi: 0, Lo: uint64(v)}
}

// FromUint64 zero-extends a uint64 into R128.
func FromUint64(v uint64) R128 {
	return R128{Hi: 0, Lo: v}
}

// AddR128 returns x+y mod 2^128.
func AddR128(x, y R128) R128 {
	lo, carry := bits.Add64(x.Lo, y.Lo, 0)
	hi, _ := bits.Add64(x.Hi, y.Hi, carry)
	return R128{Hi: hi, Lo: lo}
}

// SubR128 returns x-y mod 2^128.
func SubR128(x, y R128) R128 {
	lo, borrow := bits.Sub64(x.Lo, y.Lo, 0)
	hi, _ := bits.Sub64(x.Hi, y.Hi, borrow)
	return R128{Hi: hi, Lo: lo}
}

// MulR128 returns x*y mod 2^128.
//
// x*y = lo128(x0*y0) + (lo64(x0*y1) + lo64(x1*y0))<<64, all mod 2^128;
// the hi limbs of the cross terms and the full x1*y1 term only affect
// bits >= 128 and are dropped.
func MulR128(x, y R128) R128 {
	hi0, lo0 := bits.Mul64(x.Lo, y.Lo)
	_, cross1 := bits.Mul64(x.Lo, y.Hi)
	_, cross2 := bits.Mul64(x.Hi, y.Lo)
	hi := hi0 + cross1 + cross2
	return R128{Hi: hi, Lo: lo0}
}

// NegR128 returns -x mod 2^128.
func NegR128(x R128) R128 {
	return SubR128(R128{}, x)
}

// ShlR128 returns x<<n mod 2^128, for 0 <= n < 128.
func ShlR128(x R128, n uint) R128 {
	switch {
	case n == 0:
		return x
	case n < 64:
		return R128{
			Hi: (x.Hi << n) | (x.Lo >> (64 - n)),
			Lo: x.Lo << n,
		}
	case n == 64:
		return R128{Hi: x.Lo, Lo: 0}
	default:
		return R128{Hi: x.Lo << (n - 64), Lo: 0}
	}
}

// ShrR128 returns x>>n (logical), for 0 <= n < 128.
func ShrR128(x R128, n uint) R128 {
	switch {
	case n == 0:
		return x
	case n < 64:
		return R128{
			Hi: x.Hi >> n,
			Lo: (x.Lo >> n) | (x.Hi << (64 - n)),
		}
	case n == 64:
		return R128{Hi: 0, Lo: x.Hi}
	default:
		return R128{Hi: 0, Lo: x.Hi >> (n - 64)}
	}
}

// Equal reports whether x and y denote the same element of Z/2^128.
func (x R128) Equal(y R128) bool {
	return x.Hi == y.Hi && x.Lo == y.Lo
}

// IsZero reports whether x is the additive identity.
func (x R128) IsZero() bool {
	return x.Hi == 0 && x.Lo == 0
}

// Bytes serializes x as 16 little-endian bytes, matching the wire
// format of spec §6.2.
func (x R128) Bytes() [16]byte {
	var b [16]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(x.Lo >> (8 * uint(i)))
		b[8+i] = byte(x.Hi >> (8 * uint(i)))
	}
	return b
}

// R128FromBytes deserializes 16 little-endian bytes into an R128.
func R128FromBytes(b [16]byte) R128 {
	var lo, hi uint64
	for i := 0; i < 8; i++ {
		lo |= uint64(b[i]) << (8 * uint(i))
		hi |= uint64(b[8+i]) << (8 * uint(i))
	}
	return R128{Hi: hi, Lo: lo}
}
