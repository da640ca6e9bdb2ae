package quicksilver

import (
	"github.com/vocdoni/miniram-zk/channel"
	"github.com/vocdoni/miniram-zk/circuit"
	"github.com/vocdoni/miniram-zk/ring"
	"github.com/vocdoni/miniram-zk/vole"
	"github.com/vocdoni/miniram-zk/zkerrors"
)

// pendingOpen is a value the Prover has promised equals a public
// constant (usually zero) and must reveal-and-authenticate once the
// challenge/U/V phase is done, per spec §4.9 step 9.
type pendingOpen struct {
	diff ring.R32  // the value, already reduced so the claim is "diff == 0"
	mac  ring.R128 // its authenticated tag
}

// Prove runs the Prover's side of the interactive argument for c on
// witness, using shares as the VOLE correlations already received from
// the Dealer (sized by SegmentsFor(c)) and pc as the channel to the
// Verifier.
func Prove(c *circuit.Circuit, witness []ring.R32, shares vole.ProverShares, pc channel.ProverChannel) error {
	if len(witness) != c.NIn {
		return zkerrors.New(zkerrors.InputInvalid, "quicksilver: witness length does not match circuit NIn")
	}

	inSeg := &proverSegment{r: shares.RIn, m: shares.MIn}
	mulSeg := &proverSegment{r: shares.RMul, m: shares.MMul}
	outSeg := &proverSegment{r: shares.ROut, m: shares.MOut}

	values := make([]ring.R32, len(witness), len(witness)+c.NGates)
	copy(values, witness)
	macs := make([]ring.R128, len(witness), len(witness)+c.NGates)

	for i, w := range witness {
		r, m, err := inSeg.next()
		if err != nil {
			return err
		}
		if err := pc.SendDelta(ring.SubR128(ring.FromR32(w), r)); err != nil {
			return err
		}
		macs[i] = m
	}

	var sumA0, sumA1 ring.R128
	var opens []pendingOpen

	commitProduct := func(lhsVal, rhsVal ring.R32, lhsMac, rhsMac ring.R128) (ring.R32, ring.R128, error) {
		productVal := ring.MulR32(lhsVal, rhsVal)
		r, m, err := mulSeg.next()
		if err != nil {
			return 0, ring.R128{}, err
		}
		if err := pc.SendDelta(ring.SubR128(ring.FromR32(productVal), r)); err != nil {
			return 0, ring.R128{}, err
		}
		a0 := ring.MulR128(lhsMac, rhsMac)
		a1 := ring.SubR128(ring.AddR128(ring.MulR128(lhsMac, ring.FromR32(rhsVal)), ring.MulR128(rhsMac, ring.FromR32(lhsVal))), m)
		sumA0 = ring.AddR128(sumA0, a0)
		sumA1 = ring.AddR128(sumA1, a1)
		return productVal, m, nil
	}

	zeroCheck := func(lhsVal, rhsVal ring.R32, lhsMac, rhsMac ring.R128) {
		a0 := ring.MulR128(lhsMac, rhsMac)
		a1 := ring.AddR128(ring.MulR128(lhsMac, ring.FromR32(rhsVal)), ring.MulR128(rhsMac, ring.FromR32(lhsVal)))
		sumA0 = ring.AddR128(sumA0, a0)
		sumA1 = ring.AddR128(sumA1, a1)
	}

	commitBit := func(bitVal ring.R32) (ring.R128, error) {
		r, m, err := mulSeg.next()
		if err != nil {
			return ring.R128{}, err
		}
		if err := pc.SendDelta(ring.SubR128(ring.FromR32(bitVal), r)); err != nil {
			return ring.R128{}, err
		}
		return m, nil
	}

	queueOpen := func(val ring.R32, mac ring.R128, publicConst ring.R32) {
		opens = append(opens, pendingOpen{diff: ring.SubR32(val, publicConst), mac: mac})
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
	wireAt := func(id uint32) (ring.R32, ring.R128, error) {
		if id < circuit.ArgZero || int(id-circuit.ArgZero) >= len(values) {
			return 0, ring.R128{}, zkerrors.New(zkerrors.AssertionFailure, "quicksilver: operand out of range")
		}
		idx := id - circuit.ArgZero
		return values[idx], macs[idx], nil
	}
	constAt := func(idx uint32) (ring.R32, error) {
		if int(idx) >= len(c.Consts) {
			return 0, zkerrors.New(zkerrors.AssertionFailure, "quicksilver: const index out of range")
		}
		return c.Consts[idx], nil
	}
	push := func(v ring.R32, m ring.R128) {
		values = append(values, v)
		macs = append(macs, m)
	}

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
			var sumV ring.R32
			var sumM ring.R128
			for k := 0; k < int(count); k++ {
				id, err := readWord()
				if err != nil {
					return err
				}
				v, m, err := wireAt(id)
				if err != nil {
					return err
				}
				sumV = ring.AddR32(sumV, v)
				sumM = ring.AddR128(sumM, m)
			}
			push(sumV, sumM)

		case circuit.OpSub:
			id0, err := readWord()
			if err != nil {
				return err
			}
			id1, err := readWord()
			if err != nil {
				return err
			}
			v0, m0, err := wireAt(id0)
			if err != nil {
				return err
			}
			v1, m1, err := wireAt(id1)
			if err != nil {
				return err
			}
			push(ring.SubR32(v0, v1), ring.SubR128(m0, m1))

		case circuit.OpMul:
			id0, err := readWord()
			if err != nil {
				return err
			}
			id1, err := readWord()
			if err != nil {
				return err
			}
			v0, m0, err := wireAt(id0)
			if err != nil {
				return err
			}
			v1, m1, err := wireAt(id1)
			if err != nil {
				return err
			}
			pv, pm, err := commitProduct(v0, v1, m0, m1)
			if err != nil {
				return err
			}
			push(pv, pm)

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
			v, m, err := wireAt(id)
			if err != nil {
				return err
			}
			push(ring.MulR32(cv, v), ring.MulR128(ring.FromR32(cv), m))

		case circuit.OpSelect:
			idxID, err := readWord()
			if err != nil {
				return err
			}
			idxVal, idxMac, err := wireAt(idxID)
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
			var sumV ring.R32
			var sumM ring.R128
			var sumBitsVal ring.R32
			var sumBitsMac ring.R128
			for j, id := range operandIDs {
				var bitVal ring.R32
				if int(idxVal) == j {
					bitVal = 1
				}
				bitMac, err := commitBit(bitVal)
				if err != nil {
					return err
				}
				diffVal := ring.SubR32(idxVal, ring.R32(j))
				zeroCheck(bitVal, diffVal, bitMac, idxMac)

				xVal, xMac, err := wireAt(id)
				if err != nil {
					return err
				}
				pv, pm, err := commitProduct(bitVal, xVal, bitMac, xMac)
				if err != nil {
					return err
				}
				sumV = ring.AddR32(sumV, pv)
				sumM = ring.AddR128(sumM, pm)
				sumBitsVal = ring.AddR32(sumBitsVal, bitVal)
				sumBitsMac = ring.AddR128(sumBitsMac, bitMac)
			}
			queueOpen(sumBitsVal, sumBitsMac, 1)
			push(sumV, sumM)

		case circuit.OpSelectConst:
			idxID, err := readWord()
			if err != nil {
				return err
			}
			idxVal, idxMac, err := wireAt(idxID)
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
			var sumV ring.R32
			var sumM ring.R128
			var sumBitsVal ring.R32
			var sumBitsMac ring.R128
			for j, cidx := range constIdxs {
				var bitVal ring.R32
				if int(idxVal) == j {
					bitVal = 1
				}
				bitMac, err := commitBit(bitVal)
				if err != nil {
					return err
				}
				diffVal := ring.SubR32(idxVal, ring.R32(j))
				zeroCheck(bitVal, diffVal, bitMac, idxMac)

				cv, err := constAt(cidx)
				if err != nil {
					return err
				}
				sumV = ring.AddR32(sumV, ring.MulR32(bitVal, cv))
				sumM = ring.AddR128(sumM, ring.MulR128(bitMac, ring.FromR32(cv)))
				sumBitsVal = ring.AddR32(sumBitsVal, bitVal)
				sumBitsMac = ring.AddR128(sumBitsMac, bitMac)
			}
			queueOpen(sumBitsVal, sumBitsMac, 1)
			push(sumV, sumM)

		case circuit.OpDecode32:
			id, err := readWord()
			if err != nil {
				return err
			}
			xVal, xMac, err := wireAt(id)
			if err != nil {
				return err
			}
			bits := ring.Bits(xVal)
			bitVals := make([]ring.R32, 32)
			bitMacs := make([]ring.R128, 32)
			var weightedVal ring.R32
			var weightedMac ring.R128
			for k := 0; k < 32; k++ {
				var bv ring.R32
				if bits[k] {
					bv = 1
				}
				bm, err := commitBit(bv)
				if err != nil {
					return err
				}
				oneMinus := ring.SubR32(1, bv)
				oneMinusMac := ring.NegR128(bm)
				zeroCheck(bv, oneMinus, bm, oneMinusMac)
				bitVals[k], bitMacs[k] = bv, bm
				weightedVal = ring.AddR32(weightedVal, ring.ShlR32(bv, uint(k)))
				weightedMac = ring.AddR128(weightedMac, ring.ShlR128(bm, uint(k)))
			}
			diffVal := ring.SubR32(weightedVal, xVal)
			diffMac := ring.SubR128(weightedMac, xMac)
			queueOpen(diffVal, diffMac, 0)
			for k := 0; k < 32; k++ {
				push(bitVals[k], bitMacs[k])
			}

		case circuit.OpEncode4, circuit.OpEncode5, circuit.OpEncode8, circuit.OpEncode32:
			width := encodeWidth(op)
			var sumV ring.R32
			var sumM ring.R128
			for k := 0; k < width; k++ {
				id, err := readWord()
				if err != nil {
					return err
				}
				v, m, err := wireAt(id)
				if err != nil {
					return err
				}
				sumV = ring.AddR32(sumV, ring.ShlR32(v, uint(k)))
				sumM = ring.AddR128(sumM, ring.ShlR128(m, uint(k)))
			}
			push(sumV, sumM)

		case circuit.OpConst:
			constIdx, err := readWord()
			if err != nil {
				return err
			}
			cv, err := constAt(constIdx)
			if err != nil {
				return err
			}
			push(cv, ring.R128{})

		case circuit.OpOut:
			id, err := readWord()
			if err != nil {
				return err
			}
			v, m, err := wireAt(id)
			if err != nil {
				return err
			}
			queueOpen(v, m, 0)

		case circuit.OpCheckAllEqButOne:
			idxID, err := readWord()
			if err != nil {
				return err
			}
			idxVal, idxMac, err := wireAt(idxID)
			if err != nil {
				return err
			}
			count, err := readWord()
			if err != nil {
				return err
			}
			var sumBitsVal ring.R32
			var sumBitsMac ring.R128
			for j := 0; j < int(count); j++ {
				xID, err := readWord()
				if err != nil {
					return err
				}
				yID, err := readWord()
				if err != nil {
					return err
				}
				xVal, xMac, err := wireAt(xID)
				if err != nil {
					return err
				}
				yVal, yMac, err := wireAt(yID)
				if err != nil {
					return err
				}

				var bitVal ring.R32
				if int(idxVal) != j {
					bitVal = 1
				}
				bitMac, err := commitBit(bitVal)
				if err != nil {
					return err
				}

				diffVal := ring.SubR32(idxVal, ring.R32(j))
				bitMinus1Val := ring.SubR32(bitVal, 1)
				zeroCheck(bitMinus1Val, diffVal, bitMac, idxMac)

				pairDiffVal := ring.SubR32(xVal, yVal)
				pairDiffMac := ring.SubR128(xMac, yMac)
				zeroCheck(bitVal, pairDiffVal, bitMac, pairDiffMac)

				sumBitsVal = ring.AddR32(sumBitsVal, bitVal)
				sumBitsMac = ring.AddR128(sumBitsMac, bitMac)
			}
			queueOpen(sumBitsVal, sumBitsMac, ring.R32(int(count)-1))

		default:
			return zkerrors.New(zkerrors.AssertionFailure, "quicksilver: unhandled opcode in prover")
		}
	}

	x, err := pc.RecvChallenge()
	if err != nil {
		return err
	}
	_ = x // the plain-sum variant (spec §9 Open Question) never uses the challenge value itself

	rMC, mMC, err := (&proverSegment{r: shares.RMulCheck, m: shares.MMulCheck}).next()
	if err != nil {
		return err
	}
	U := ring.AddR128(sumA0, mMC)
	V := ring.AddR128(sumA1, rMC)
	if err := pc.SendU(U); err != nil {
		return err
	}
	if err := pc.SendV(V); err != nil {
		return err
	}

	for _, o := range opens {
		r, m, err := outSeg.next()
		if err != nil {
			return err
		}
		z := ring.AddR128(ring.FromR32(o.diff), ring.ShlR128(r, 32))
		tz := ring.AddR128(o.mac, ring.ShlR128(m, 32))
		if err := pc.SendDelta(z); err != nil {
			return err
		}
		if err := pc.SendMAC(tz); err != nil {
			return err
		}
	}

	return nil
}

func encodeWidth(op circuit.Op) int {
	switch op {
	case circuit.OpEncode4:
		return 4
	case circuit.OpEncode5:
		return 5
	case circuit.OpEncode8:
		return 8
	case circuit.OpEncode32:
		return 32
	default:
		return 0
	}
}
