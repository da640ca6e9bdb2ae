// Package reduction generates the per-T-step transition circuit: given
// a MiniRAM program and a step bound T, it builds a single circuit
// whose inputs are the flattened witness (package miniram/witness) and
// whose outputs must all be zero iff the witness represents a correct
// bounded execution of the program. Ported in spirit from
// original_source/frontend/src/miniram/reduction.rs's generate_circuit /
// transition_circuit skeleton (hard-coded program constants, per-step
// composition loop), completed past its todo!() placeholder.
package reduction

import (
	"github.com/vocdoni/miniram-zk/circuit"
	"github.com/vocdoni/miniram-zk/circuit/builder"
	"github.com/vocdoni/miniram-zk/miniram"
	"github.com/vocdoni/miniram-zk/miniram/witness"
	"github.com/vocdoni/miniram-zk/ring"
	"github.com/vocdoni/miniram-zk/zkerrors"
)

// GenerateCircuit builds the transition circuit for prog under step
// bound t. Its input width is exactly witness.Len(t).
func GenerateCircuit(prog miniram.Prog, t int) (*circuit.Circuit, error) {
	if t <= 0 {
		return nil, zkerrors.New(zkerrors.InputInvalid, "reduction: t must be positive")
	}
	if len(prog) == 0 {
		return nil, zkerrors.New(zkerrors.InputInvalid, "reduction: empty program")
	}

	his, los := miniram.EncodeProgram(prog)

	b := builder.New(witness.Len(t))
	bc := builder.NewBitConsts(b)

	one := bc.One()

	// reverseBits turns Decode32's LSB-first output into the MSB-first
	// order CompareBits expects.
	reverseBits := func(ws []builder.Wire) []builder.Wire {
		out := make([]builder.Wire, len(ws))
		for i, w := range ws {
			out[len(ws)-1-i] = w
		}
		return out
	}

	// orReduce ORs an arbitrary number of bit wires together.
	orReduce := func(ws []builder.Wire) builder.Wire {
		acc := ws[0]
		for _, w := range ws[1:] {
			acc = b.OrBit(acc, w)
		}
		return acc
	}

	bitwiseAnd32 := func(x, y builder.Wire) builder.Wire {
		xb, yb := b.Decode32(x), b.Decode32(y)
		out := make([]builder.Wire, 32)
		for i := range out {
			out[i] = b.AndBit(xb[i], yb[i])
		}
		return b.Encode(out...)
	}

	bitwiseXor32 := func(x, y builder.Wire) builder.Wire {
		xb, yb := b.Decode32(x), b.Decode32(y)
		out := make([]builder.Wire, 32)
		for i := range out {
			out[i] = b.XorBit(xb[i], yb[i])
		}
		return b.Encode(out...)
	}

	// rotrCandidates returns, for k in [0,32), x rotated right by k bits.
	rotrCandidates := func(x builder.Wire) []builder.Wire {
		xb := b.Decode32(x)
		cands := make([]builder.Wire, 32)
		for k := 0; k < 32; k++ {
			rotated := make([]builder.Wire, 32)
			for i := range rotated {
				rotated[i] = xb[(i+k)%32]
			}
			cands[k] = b.Encode(rotated...)
		}
		return cands
	}

	// shrCandidates returns, for k in [0,32), x logically shifted right by
	// k bits (zero-filled from the top).
	shrCandidates := func(x builder.Wire) []builder.Wire {
		xb := b.Decode32(x)
		zero := bc.Zero()
		cands := make([]builder.Wire, 32)
		for k := 0; k < 32; k++ {
			shifted := make([]builder.Wire, 32)
			for i := range shifted {
				if i+k < 32 {
					shifted[i] = xb[i+k]
				} else {
					shifted[i] = zero
				}
			}
			cands[k] = b.Encode(shifted...)
		}
		return cands
	}

	type memTap struct {
		timestamp, addr, val, isLoad builder.Wire
	}
	taps := make([]memTap, t)

	var prevStateOut []builder.Wire // 17 wires: R0..R15 then flag

	for k := 0; k < t; k++ {
		stateOutBase := k * witness.StateWidth
		stateOut := make([]builder.Wire, witness.StateWidth)
		for i := range stateOut {
			stateOut[i] = b.Input(stateOutBase + i)
		}

		var stateIn []builder.Wire
		if k == 0 {
			stateIn = make([]builder.Wire, witness.StateWidth)
			for i := range stateIn {
				stateIn[i] = bc.Zero()
			}
		} else {
			stateIn = prevStateOut
		}
		prevStateOut = stateOut

		pcIn := stateIn[miniram.PC]
		flagIn := stateIn[witness.StateWidth-1]
		flagOut := stateOut[witness.StateWidth-1]

		var hi, lo builder.Wire
		if k == 0 {
			hi = b.Const(his[0])
			lo = b.Const(los[0])
		} else {
			hi = b.SelectConst(pcIn, his...)
			lo = b.SelectConst(pcIn, los...)
		}

		decoded := b.DecodeInstruction(hi, lo)

		dstOutVal := b.Select(decoded.Dst, stateOut[:miniram.NRegs]...)
		dstInVal := b.Select(decoded.Dst, stateIn[:miniram.NRegs]...)
		arg0Val := b.Select(decoded.Arg0, stateIn[:miniram.NRegs]...)
		arg1Val := b.Select(decoded.Arg1Reg, stateIn[:miniram.NRegs]...)

		pcPlus1 := b.Add(pcIn, one)

		resAdd := b.Add(arg0Val, arg1Val)
		resSub := b.Sub(arg0Val, arg1Val)
		resMovReg := arg0Val
		resMovConst := decoded.Arg1Word
		resLdr := dstOutVal
		resStr := dstOutVal
		resB := decoded.Arg1Word
		resBZ := b.Add(pcPlus1, b.Mul(flagIn, b.Sub(decoded.Arg1Word, pcPlus1)))
		resRetReg := arg0Val
		resRetConst := decoded.Arg1Word
		resAnd := bitwiseAnd32(arg0Val, arg1Val)
		resXor := bitwiseXor32(arg0Val, arg1Val)
		resShr := b.Select(decoded.Arg1Word, shrCandidates(arg0Val)...)
		resRotr := b.Select(decoded.Arg1Word, rotrCandidates(arg0Val)...)
		resPrint := pcPlus1

		res := b.Select(decoded.Opcode,
			resAdd, resSub, resMovReg, resMovConst, resLdr, resStr,
			resB, resBZ, resRetReg, resRetConst, resAnd, resXor,
			resShr, resRotr, resPrint,
		)

		b.Out(b.Sub(res, dstOutVal))

		resBits := b.Decode32(res)
		zComputed := b.NotBit(orReduce(resBits[:]), bc)
		notStr := b.Sub(one, decoded.IsStr)
		b.Out(b.Mul(notStr, b.Sub(zComputed, flagOut)))

		pcAdvance := b.Add(pcIn, b.Sub(one, decoded.IsRet))
		pairs := make([]builder.Pair, miniram.NRegs)
		pairs[miniram.PC] = builder.Pair{X: pcAdvance, Y: stateOut[miniram.PC]}
		for j := 1; j < miniram.NRegs; j++ {
			pairs[j] = builder.Pair{X: stateIn[j], Y: stateOut[j]}
		}
		b.CheckAllEqButOne(decoded.Dst, pairs)

		addr := b.Mul(b.Add(arg0Val, one), decoded.IsMem)
		val := b.Add(b.Mul(decoded.IsLoad, dstOutVal), b.Mul(b.Sub(one, decoded.IsLoad), dstInVal))
		taps[k] = memTap{
			timestamp: b.Const(ring.R32(k + 1)),
			addr:      addr,
			val:       val,
			isLoad:    decoded.IsLoad,
		}
	}

	confBase := t * witness.StateWidth

	timestamps := make([]builder.Wire, t)
	addrs := make([]builder.Wire, t)
	vals := make([]builder.Wire, t)
	isLoads := make([]builder.Wire, t)
	for k, tap := range taps {
		timestamps[k], addrs[k], vals[k], isLoads[k] = tap.timestamp, tap.addr, tap.val, tap.isLoad
	}

	confWires := make([]builder.Wire, witness.Len(t)-confBase)
	for i := range confWires {
		confWires[i] = b.Input(confBase + i)
	}

	sortedTimestamps := b.WaksmanLayout(timestamps, confWires, bc)
	sortedAddrs := b.WaksmanLayout(addrs, confWires, bc)
	sortedVals := b.WaksmanLayout(vals, confWires, bc)
	sortedIsLoads := b.WaksmanLayout(isLoads, confWires, bc)

	for i := 0; i+1 < t; i++ {
		addr1Bits := reverseBits(b.Decode32(sortedAddrs[i]))
		addr2Bits := reverseBits(b.Decode32(sortedAddrs[i+1]))
		t1Bits := reverseBits(b.Decode32(sortedTimestamps[i]))
		t2Bits := reverseBits(b.Decode32(sortedTimestamps[i+1]))

		addrLt, addrEq := b.CompareBits(addr1Bits, addr2Bits, bc)
		tLt, _ := b.CompareBits(t1Bits, t2Bits, bc)

		sortedOk := b.OrBit(addrLt, b.AndBit(addrEq, tLt))
		checkSorted := b.NotBit(sortedOk, bc)
		b.Out(checkSorted)

		checkMem := b.Mul(addrEq, b.Mul(sortedIsLoads[i+1], b.Sub(sortedVals[i], sortedVals[i+1])))
		b.Out(checkMem)
	}

	return b.Build(), nil
}
