package session

import (
	"github.com/vocdoni/miniram-zk/miniram"
	"github.com/vocdoni/miniram-zk/ring"
	"github.com/vocdoni/miniram-zk/zkerrors"
)

// Preset bundles a MiniRAM program with the default witness input the
// demo binaries run it on when the caller doesn't supply one.
type Preset struct {
	Prog  miniram.Prog
	Input []ring.R32
}

// presets is the set of program names cmd/miniram-zk accepts via
// --program. Add new entries here as more preset programs are built.
var presets = map[string]Preset{
	"muleq": {
		Prog:  miniram.MulEqProgram(),
		Input: []ring.R32{6, 7, 42},
	},
}

// LookupPreset resolves a preset name, falling back to its default input
// when input is empty.
func LookupPreset(name string, input []ring.R32) (miniram.Prog, []ring.R32, error) {
	p, ok := presets[name]
	if !ok {
		return nil, nil, zkerrors.New(zkerrors.InputInvalid, "session: unknown program preset "+name)
	}
	if len(input) == 0 {
		input = p.Input
	}
	return p.Prog, input, nil
}
