package quicksilver

import (
	"github.com/vocdoni/miniram-zk/ring"
	"github.com/vocdoni/miniram-zk/zkerrors"
)

// proverSegment walks one of the Dealer's (r, m) pools in order.
type proverSegment struct {
	r, m []ring.R128
	idx  int
}

func (s *proverSegment) next() (r, m ring.R128, err error) {
	if s.idx >= len(s.r) {
		return ring.R128{}, ring.R128{}, zkerrors.New(zkerrors.AssertionFailure, "quicksilver: exhausted prover VOLE segment")
	}
	r, m = s.r[s.idx], s.m[s.idx]
	s.idx++
	return r, m, nil
}

// verifierSegment walks one of the Dealer's key pools in order.
type verifierSegment struct {
	k   []ring.R128
	idx int
}

func (s *verifierSegment) next() (ring.R128, error) {
	if s.idx >= len(s.k) {
		return ring.R128{}, zkerrors.New(zkerrors.AssertionFailure, "quicksilver: exhausted verifier VOLE segment")
	}
	k := s.k[s.idx]
	s.idx++
	return k, nil
}

// keyForConst returns the verifier-side key for a public constant c:
// since a constant carries no MAC (m=0), the key satisfying
// 0 = Δ·c + k is k = -Δ·c.
func keyForConst(delta ring.R128, c ring.R32) ring.R128 {
	return ring.NegR128(ring.MulR128(delta, ring.FromR32(c)))
}
