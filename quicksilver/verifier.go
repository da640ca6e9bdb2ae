package quicksilver

import (
	"github.com/vocdoni/miniram-zk/channel"
	"github.com/vocdoni/miniram-zk/circuit"
	"github.com/vocdoni/miniram-zk/ring"
	"github.com/vocdoni/miniram-zk/vole"
	"github.com/vocdoni/miniram-zk/zkerrors"
)

// pendingCheck is a key the Verifier must authenticate against a public
// constant once the opening arrives, mirroring the Prover's pendingOpen.
type pendingCheck struct {
	key ring.R128
}

// Verify runs the Verifier's side of the interactive argument for c,
// using delta and keys as received from the Dealer, and vc as the
// channel to the Prover. It returns nil iff the proof is accepted.
func Verify(c *circuit.Circuit, delta ring.R128, keys vole.VerifierKeys, vc channel.VerifierChannel) error {
	inSeg := &verifierSegment{k: keys.KIn}
	mulSeg := &verifierSegment{k: keys.KMul}
	outSeg := &verifierSegment{k: keys.KOut}

	keyWires := make([]ring.R128, 0, c.NIn+c.NGates)
	for i := 0; i < c.NIn; i++ {
		k, err := inSeg.next()
		if err != nil {
			return err
		}
		d, err := vc.RecvDeltaFromProver()
		if err != nil {
			return err
		}
		keyWires = append(keyWires, ring.SubR128(k, ring.MulR128(delta, d)))
	}

	var W ring.R128
	var checks []pendingCheck

	recvProductKey := func() (ring.R128, error) {
		k, err := mulSeg.next()
		if err != nil {
			return ring.R128{}, err
		}
		d, err := vc.RecvDeltaFromProver()
		if err != nil {
			return ring.R128{}, err
		}
		return ring.SubR128(k, ring.MulR128(delta, d)), nil
	}

	accumulate := func(lhsKey, rhsKey, productKey ring.R128) {
		b := ring.AddR128(ring.MulR128(lhsKey, rhsKey), ring.MulR128(productKey, delta))
		W = ring.AddR128(W, b)
	}

	zeroAccumulate := func(lhsKey, rhsKey ring.R128) {
		accumulate(lhsKey, rhsKey, ring.R128{})
	}

	queueCheck := func(key ring.R128) {
		checks = append(checks, pendingCheck{key: key})
	}

	gates := c.Gates
	i := 0
	readWord := func() (uint32, error) {
		if i >= len(gates) {
			return 0, zkerrors.New(zkerrors.AssertionFailure, "quicksilver: truncated gate stream")
		}
		w := gates[i]
		i++
		return w, nil
	}
	keyAt := func(id uint32) (ring.R128, error) {
		if id < circuit.ArgZero || int(id-circuit.ArgZero) >= len(keyWires) {
			return ring.R128{}, zkerrors.New(zkerrors.AssertionFailure, "quicksilver: operand out of range")
		}
		return keyWires[id-circuit.ArgZero], nil
	}
	constAt := func(idx uint32) (ring.R32, error) {
		if int(idx) >= len(c.Consts) {
			return 0, zkerrors.New(zkerrors.AssertionFailure, "quicksilver: const index out of range")
		}
		return c.Consts[idx], nil
	}
	push := func(k ring.R128) { keyWires = append(keyWires, k) }

	for i < len(gates) {
		opWord, err := readWord()
		if err != nil {
			return err
		}
		op := circuit.Op(opWord)

		switch op {
		case circuit.OpAdd:
			count, err := readWord()
			if err != nil {
				return err
			}
			var sumK ring.R128
			for k := 0; k < int(count); k++ {
				id, err := readWord()
				if err != nil {
					return err
				}
				kw, err := keyAt(id)
				if err != nil {
					return err
				}
				sumK = ring.AddR128(sumK, kw)
			}
			push(sumK)

		case circuit.OpSub:
			id0, err := readWord()
			if err != nil {
				return err
			}
			id1, err := readWord()
			if err != nil {
				return err
			}
			k0, err := keyAt(id0)
			if err != nil {
				return err
			}
			k1, err := keyAt(id1)
			if err != nil {
				return err
			}
			push(ring.SubR128(k0, k1))

		case circuit.OpMul:
			id0, err := readWord()
			if err != nil {
				return err
			}
			id1, err := readWord()
			if err != nil {
				return err
			}
			k0, err := keyAt(id0)
			if err != nil {
				return err
			}
			k1, err := keyAt(id1)
			if err != nil {
				return err
			}
			pk, err := recvProductKey()
			if err != nil {
				return err
			}
			accumulate(k0, k1, pk)
			push(pk)

		case circuit.OpMulConst:
			constIdx, err := readWord()
			if err != nil {
				return err
			}
			cv, err := constAt(constIdx)
			if err != nil {
				return err
			}
			id, err := readWord()
			if err != nil {
				return err
			}
			k, err := keyAt(id)
			if err != nil {
				return err
			}
			push(ring.MulR128(ring.FromR32(cv), k))

		case circuit.OpSelect:
			idxID, err := readWord()
			if err != nil {
				return err
			}
			idxKey, err := keyAt(idxID)
			if err != nil {
				return err
			}
			count, err := readWord()
			if err != nil {
				return err
			}
			operandIDs := make([]uint32, count)
			for k := range operandIDs {
				operandIDs[k], err = readWord()
				if err != nil {
					return err
				}
			}
			var sumK ring.R128
			var sumBitsKey ring.R128
			for j, id := range operandIDs {
				bitKey, err := recvProductKey()
				if err != nil {
					return err
				}
				jKey := keyForConst(delta, ring.R32(j))
				diffKey := ring.SubR128(idxKey, jKey)
				zeroAccumulate(bitKey, diffKey)

				xKey, err := keyAt(id)
				if err != nil {
					return err
				}
				pk, err := recvProductKey()
				if err != nil {
					return err
				}
				accumulate(bitKey, xKey, pk)
				sumK = ring.AddR128(sumK, pk)
				sumBitsKey = ring.AddR128(sumBitsKey, bitKey)
			}
			queueCheck(ring.SubR128(sumBitsKey, keyForConst(delta, 1)))
			push(sumK)

		case circuit.OpSelectConst:
			idxID, err := readWord()
			if err != nil {
				return err
			}
			idxKey, err := keyAt(idxID)
			if err != nil {
				return err
			}
			count, err := readWord()
			if err != nil {
				return err
			}
			constIdxs := make([]uint32, count)
			for k := range constIdxs {
				constIdxs[k], err = readWord()
				if err != nil {
					return err
				}
			}
			var sumK ring.R128
			var sumBitsKey ring.R128
			for j, cidx := range constIdxs {
				bitKey, err := recvProductKey()
				if err != nil {
					return err
				}
				jKey := keyForConst(delta, ring.R32(j))
				diffKey := ring.SubR128(idxKey, jKey)
				zeroAccumulate(bitKey, diffKey)

				cv, err := constAt(cidx)
				if err != nil {
					return err
				}
				sumK = ring.AddR128(sumK, ring.MulR128(bitKey, ring.FromR32(cv)))
				sumBitsKey = ring.AddR128(sumBitsKey, bitKey)
			}
			queueCheck(ring.SubR128(sumBitsKey, keyForConst(delta, 1)))
			push(sumK)

		case circuit.OpDecode32:
			id, err := readWord()
			if err != nil {
				return err
			}
			xKey, err := keyAt(id)
			if err != nil {
				return err
			}
			bitKeys := make([]ring.R128, 32)
			var weightedKey ring.R128
			for k := 0; k < 32; k++ {
				bk, err := recvProductKey()
				if err != nil {
					return err
				}
				oneMinusKey := ring.SubR128(keyForConst(delta, 1), bk)
				zeroAccumulate(bk, oneMinusKey)
				bitKeys[k] = bk
				weightedKey = ring.AddR128(weightedKey, ring.ShlR128(bk, uint(k)))
			}
			queueCheck(ring.SubR128(weightedKey, xKey))
			for k := 0; k < 32; k++ {
				push(bitKeys[k])
			}

		case circuit.OpEncode4, circuit.OpEncode5, circuit.OpEncode8, circuit.OpEncode32:
			width := encodeWidth(op)
			var sumK ring.R128
			for k := 0; k < width; k++ {
				id, err := readWord()
				if err != nil {
					return err
				}
				kw, err := keyAt(id)
				if err != nil {
					return err
				}
				sumK = ring.AddR128(sumK, ring.ShlR128(kw, uint(k)))
			}
			push(sumK)

		case circuit.OpConst:
			constIdx, err := readWord()
			if err != nil {
				return err
			}
			cv, err := constAt(constIdx)
			if err != nil {
				return err
			}
			push(keyForConst(delta, cv))

		case circuit.OpOut:
			id, err := readWord()
			if err != nil {
				return err
			}
			k, err := keyAt(id)
			if err != nil {
				return err
			}
			queueCheck(k)

		case circuit.OpCheckAllEqButOne:
			idxID, err := readWord()
			if err != nil {
				return err
			}
			idxKey, err := keyAt(idxID)
			if err != nil {
				return err
			}
			count, err := readWord()
			if err != nil {
				return err
			}
			var sumBitsKey ring.R128
			for j := 0; j < int(count); j++ {
				xID, err := readWord()
				if err != nil {
					return err
				}
				yID, err := readWord()
				if err != nil {
					return err
				}
				xKey, err := keyAt(xID)
				if err != nil {
					return err
				}
				yKey, err := keyAt(yID)
				if err != nil {
					return err
				}

				bitKey, err := recvProductKey()
				if err != nil {
					return err
				}

				jKey := keyForConst(delta, ring.R32(j))
				diffKey := ring.SubR128(idxKey, jKey)
				bitMinus1Key := ring.SubR128(bitKey, keyForConst(delta, 1))
				zeroAccumulate(bitMinus1Key, diffKey)

				pairDiffKey := ring.SubR128(xKey, yKey)
				zeroAccumulate(bitKey, pairDiffKey)

				sumBitsKey = ring.AddR128(sumBitsKey, bitKey)
			}
			queueCheck(ring.SubR128(sumBitsKey, keyForConst(delta, ring.R32(int(count)-1))))

		default:
			return zkerrors.New(zkerrors.AssertionFailure, "quicksilver: unhandled opcode in verifier")
		}
	}

	x := sampleChallenge()
	if err := vc.SendChallenge(x); err != nil {
		return err
	}

	kMC, err := (&verifierSegment{k: keys.KMulCheck}).next()
	if err != nil {
		return err
	}

	U, err := vc.RecvU()
	if err != nil {
		return err
	}
	V, err := vc.RecvV()
	if err != nil {
		return err
	}

	lhs := ring.AddR128(W, kMC)
	rhs := ring.SubR128(U, ring.MulR128(V, delta))
	// Every opening is read even after a failed check, so the Prover's
	// sends all complete before the proof is rejected.
	rejected := !lhs.Equal(rhs)

	for _, chk := range checks {
		z, err := vc.RecvDeltaFromProver()
		if err != nil {
			return err
		}
		tz, err := vc.RecvMAC()
		if err != nil {
			return err
		}
		k, err := outSeg.next()
		if err != nil {
			return err
		}
		// z packs the (claimed-zero) diff in its low 32 bits and the
		// opening mask in its high 96; the implied key of that packed
		// value is the same linear combination of keys.
		expectedTz := ring.AddR128(ring.MulR128(delta, z), ring.AddR128(chk.key, ring.ShlR128(k, 32)))
		if !tz.Equal(expectedTz) || uint32(z.Lo) != 0 {
			rejected = true
		}
	}

	if rejected {
		return zkerrors.ErrVerificationReject
	}
	return nil
}

// sampleChallenge draws the Verifier's random challenge. A deterministic
// seeded stream is assumed available upstream (spec §1's "out of scope"
// RNG selection); here it delegates to the package-level challenge
// source, swappable in tests.
var sampleChallenge = defaultChallenge
