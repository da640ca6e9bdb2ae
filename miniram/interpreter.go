package miniram

import (
	"github.com/vocdoni/miniram-zk/ring"
	"github.com/vocdoni/miniram-zk/zkerrors"
)

// MemAccessKind classifies a step's interaction with memory.
type MemAccessKind int

const (
	MemNone MemAccessKind = iota
	MemRead
	MemWrite
)

// MemAccess records a single step's memory interaction, if any.
type MemAccess struct {
	Kind MemAccessKind
	Addr ring.R32
	Val  ring.R32
}

// LocalState is the annotated per-step trace record the witness encoder
// consumes: the
// register file (PC at index 0) and Z flag *after* executing the
// instruction at Step, plus that step's memory access. The implicit
// state before step 0 (all registers zero) is never recorded; the
// transition circuit treats it as a constant.
type LocalState struct {
	Registers [NRegs]ring.R32
	Z         bool
	Mem       MemAccess
	Step      int
}

// memory is a sparse word-addressable store; an unwritten address reads
// as zero.
type memory map[ring.R32]ring.R32

// Interpret runs prog on args (loaded into memory at addresses 0, 1,
// 2, ... before execution) for at most t steps, returning the annotated
// trace. It fails with ExecutionStuck if the program counter runs past
// the end of the program, or TimeBoundExceeded if t steps elapse without
// a RET.
func Interpret(prog Prog, args []ring.R32, t int) ([]LocalState, error) {
	mem := make(memory, len(args))
	for i, v := range args {
		mem[ring.R32(i)] = v
	}

	var regs [NRegs]ring.R32
	var z bool
	var trace []LocalState

	for step := 0; step < t; step++ {
		pcVal := regs[PC]
		if int(pcVal) >= len(prog) {
			return nil, zkerrors.ErrExecutionStuck
		}
		inst := prog[pcVal]

		next := regs
		nextZ := z
		var access MemAccess
		ret := false

		setZ := func(v ring.R32) { nextZ = v == 0 }

		switch inst.Op {
		case OpAdd:
			v := ring.AddR32(regs[inst.Arg0], regs[inst.Arg1Reg])
			next[inst.Dst] = v
			setZ(v)
			next[PC] = ring.AddR32(pcVal, 1)
		case OpSub:
			v := ring.SubR32(regs[inst.Arg0], regs[inst.Arg1Reg])
			next[inst.Dst] = v
			setZ(v)
			next[PC] = ring.AddR32(pcVal, 1)
		case OpAnd:
			v := ring.AndR32(regs[inst.Arg0], regs[inst.Arg1Reg])
			next[inst.Dst] = v
			setZ(v)
			next[PC] = ring.AddR32(pcVal, 1)
		case OpXor:
			v := ring.XorR32(regs[inst.Arg0], regs[inst.Arg1Reg])
			next[inst.Dst] = v
			setZ(v)
			next[PC] = ring.AddR32(pcVal, 1)
		case OpMovReg:
			next[inst.Dst] = regs[inst.Arg0]
			setZ(regs[inst.Arg0])
			next[PC] = ring.AddR32(pcVal, 1)
		case OpMovConst:
			next[inst.Dst] = inst.Arg1Word
			setZ(inst.Arg1Word)
			next[PC] = ring.AddR32(pcVal, 1)
		case OpLdr:
			addr := regs[inst.Arg0]
			v := mem[addr]
			next[inst.Dst] = v
			setZ(v)
			access = MemAccess{Kind: MemRead, Addr: addr, Val: v}
			next[PC] = ring.AddR32(pcVal, 1)
		case OpStr:
			addr := regs[inst.Arg0]
			v := regs[inst.Dst]
			mem[addr] = v
			access = MemAccess{Kind: MemWrite, Addr: addr, Val: v}
			next[PC] = ring.AddR32(pcVal, 1)
		case OpB:
			next[PC] = inst.Arg1Word
			setZ(next[PC])
		case OpBZ:
			if z {
				next[PC] = inst.Arg1Word
			} else {
				next[PC] = ring.AddR32(pcVal, 1)
			}
			setZ(next[PC])
		case OpRetReg:
			ret = true
			next[R1] = regs[inst.Arg0]
			setZ(next[R1])
		case OpRetConst:
			ret = true
			next[R1] = inst.Arg1Word
			setZ(next[R1])
		case OpShr:
			v := ring.ShrR32(regs[inst.Arg0], uint(inst.Arg1Word&31))
			next[inst.Dst] = v
			setZ(v)
			next[PC] = ring.AddR32(pcVal, 1)
		case OpRotr:
			v := ring.RotrR32(regs[inst.Arg0], uint(inst.Arg1Word))
			next[inst.Dst] = v
			setZ(v)
			next[PC] = ring.AddR32(pcVal, 1)
		case OpPrint:
			next[PC] = ring.AddR32(pcVal, 1)
			setZ(next[PC])
		default:
			return nil, zkerrors.New(zkerrors.AssertionFailure, "miniram: unknown opcode")
		}

		regs = next
		z = nextZ

		trace = append(trace, LocalState{
			Registers: regs,
			Z:         z,
			Mem:       access,
			Step:      step,
		})

		if ret {
			return trace, nil
		}
	}

	return nil, zkerrors.ErrTimeBoundExceeded
}
