// Package vole implements the trusted Dealer's side of the VOLE
// correlation setup described in spec §3: given a batch size it samples
// a global secret Δ, and for each slot in the batch a pair (r, m) for
// the Prover and a key k for the Verifier such that m = Δ·r + k. Ported
// in spirit from original_source/backend/src/quicksilver/vole.rs's
// Segments/CorrSender/CorrReceiver stubs (renamed Segments/ProverShares/
// VerifierKeys here) past its empty deal() placeholder.
package vole

import (
	"crypto/rand"
	"io"

	"github.com/vocdoni/miniram-zk/ring"
	"github.com/vocdoni/miniram-zk/zkerrors"
)

// Segments sizes a single VOLE batch by purpose, mirroring the four
// correlation pools QuickSilver draws on: committing witness inputs,
// committing multiplication-gate outputs, opening declared circuit
// outputs, and the single running multiplication-check aggregate.
type Segments struct {
	NIn       int
	NMul      int
	NOut      int
	NMulCheck int
}

// Size is the total batch size the Dealer must produce.
func (s Segments) Size() int {
	return s.NIn + s.NMul + s.NOut + s.NMulCheck
}

// Split slices a flat (r, m) pair received from the Dealer into the four
// named pools, in the fixed order (in, mul, out, mulCheck) both
// endpoints agree on without it ever appearing on the wire -- spec
// §6.2's extend_vole_request carries only a total count.
func (s Segments) Split(r, m []ring.R128) ProverShares {
	var shares ProverShares
	off := 0
	shares.RIn, shares.MIn = r[off:off+s.NIn], m[off:off+s.NIn]
	off += s.NIn
	shares.RMul, shares.MMul = r[off:off+s.NMul], m[off:off+s.NMul]
	off += s.NMul
	shares.ROut, shares.MOut = r[off:off+s.NOut], m[off:off+s.NOut]
	off += s.NOut
	shares.RMulCheck, shares.MMulCheck = r[off:off+s.NMulCheck], m[off:off+s.NMulCheck]
	return shares
}

// SplitKeys is Split's Verifier-side counterpart.
func (s Segments) SplitKeys(k []ring.R128) VerifierKeys {
	var keys VerifierKeys
	off := 0
	keys.KIn = k[off : off+s.NIn]
	off += s.NIn
	keys.KMul = k[off : off+s.NMul]
	off += s.NMul
	keys.KOut = k[off : off+s.NOut]
	off += s.NOut
	keys.KMulCheck = k[off : off+s.NMulCheck]
	return keys
}

// ProverShares is what the Dealer sends the Prover: the masks r and
// their MAC tags m, one pool per segment.
type ProverShares struct {
	RIn, RMul, ROut, RMulCheck []ring.R128
	MIn, MMul, MOut, MMulCheck []ring.R128
}

// VerifierKeys is what the Dealer sends the Verifier: the MAC keys k,
// one pool per segment. Δ is delivered separately (VerifierKeys never
// reaches the Prover).
type VerifierKeys struct {
	KIn, KMul, KOut, KMulCheck []ring.R128
}

// Deal samples a fresh Δ and, for every slot across the four segments,
// a random r and k with m = Δ·r + k, using rnd as the entropy source
// (crypto/rand.Reader in production, a deterministic stream in tests).
func Deal(seg Segments, rnd io.Reader) (delta ring.R128, shares ProverShares, keys VerifierKeys, err error) {
	if seg.NIn < 0 || seg.NMul < 0 || seg.NOut < 0 || seg.NMulCheck < 0 {
		return ring.R128{}, ProverShares{}, VerifierKeys{}, zkerrors.New(zkerrors.InputInvalid, "vole: negative segment size")
	}

	delta, err = randR128(rnd)
	if err != nil {
		return ring.R128{}, ProverShares{}, VerifierKeys{}, zkerrors.Wrap(zkerrors.IOFailure, "vole: sampling delta", err)
	}

	dealOne := func(n int) (r, m, k []ring.R128, err error) {
		r = make([]ring.R128, n)
		m = make([]ring.R128, n)
		k = make([]ring.R128, n)
		for i := 0; i < n; i++ {
			if r[i], err = randR128(rnd); err != nil {
				return nil, nil, nil, zkerrors.Wrap(zkerrors.IOFailure, "vole: sampling r", err)
			}
			if k[i], err = randR128(rnd); err != nil {
				return nil, nil, nil, zkerrors.Wrap(zkerrors.IOFailure, "vole: sampling k", err)
			}
			m[i] = ring.AddR128(ring.MulR128(delta, r[i]), k[i])
		}
		return r, m, k, nil
	}

	rIn, mIn, kIn, err := dealOne(seg.NIn)
	if err != nil {
		return ring.R128{}, ProverShares{}, VerifierKeys{}, err
	}
	rMul, mMul, kMul, err := dealOne(seg.NMul)
	if err != nil {
		return ring.R128{}, ProverShares{}, VerifierKeys{}, err
	}
	rOut, mOut, kOut, err := dealOne(seg.NOut)
	if err != nil {
		return ring.R128{}, ProverShares{}, VerifierKeys{}, err
	}
	rMulCheck, mMulCheck, kMulCheck, err := dealOne(seg.NMulCheck)
	if err != nil {
		return ring.R128{}, ProverShares{}, VerifierKeys{}, err
	}

	shares = ProverShares{
		RIn: rIn, RMul: rMul, ROut: rOut, RMulCheck: rMulCheck,
		MIn: mIn, MMul: mMul, MOut: mOut, MMulCheck: mMulCheck,
	}
	keys = VerifierKeys{KIn: kIn, KMul: kMul, KOut: kOut, KMulCheck: kMulCheck}
	return delta, shares, keys, nil
}

// DealSecure is Deal seeded from crypto/rand, the entropy source used
// outside of tests.
func DealSecure(seg Segments) (ring.R128, ProverShares, VerifierKeys, error) {
	return Deal(seg, rand.Reader)
}

// DealFlat deals n correlations as one flat pool rather than four named
// segments. This is what actually crosses the wire in the three-party
// protocol: spec §6.2's extend_vole_request carries only a count, so the
// Dealer never learns (or needs to learn) how the Prover and Verifier
// mean to slice the batch -- both derive the same Segments from the
// public circuit and call Segments.Split/SplitKeys themselves.
func DealFlat(n int, rnd io.Reader) (delta ring.R128, r, m, k []ring.R128, err error) {
	if n < 0 {
		return ring.R128{}, nil, nil, nil, zkerrors.New(zkerrors.InputInvalid, "vole: negative batch size")
	}
	delta, shares, keys, err := Deal(Segments{NIn: n}, rnd)
	if err != nil {
		return ring.R128{}, nil, nil, nil, err
	}
	return delta, shares.RIn, shares.MIn, keys.KIn, nil
}

// DealFlatSecure is DealFlat seeded from crypto/rand.
func DealFlatSecure(n int) (ring.R128, []ring.R128, []ring.R128, []ring.R128, error) {
	return DealFlat(n, rand.Reader)
}

func randR128(rnd io.Reader) (ring.R128, error) {
	var b [16]byte
	if _, err := io.ReadFull(rnd, b[:]); err != nil {
		return ring.R128{}, err
	}
	return ring.R128FromBytes(b), nil
}
