package quicksilver

import (
	"io"

	"github.com/vocdoni/miniram-zk/channel"
	"github.com/vocdoni/miniram-zk/ring"
	"github.com/vocdoni/miniram-zk/vole"
)

// RequestShares asks the Dealer for a VOLE batch sized by seg and slices
// the flat reply into the four named pools Prove expects.
func RequestShares(pc channel.ProverChannel, seg vole.Segments) (vole.ProverShares, error) {
	n := seg.Size()
	if err := pc.SendExtendVole(uint64(n)); err != nil {
		return vole.ProverShares{}, err
	}
	r, m, err := pc.RecvExtendVole(n)
	if err != nil {
		return vole.ProverShares{}, err
	}
	return seg.Split(r, m), nil
}

// RequestKeys is RequestShares' Verifier-side counterpart: it also reads
// the session's global Δ, sent once ahead of the key batch.
func RequestKeys(vc channel.VerifierChannel, seg vole.Segments) (ring.R128, vole.VerifierKeys, error) {
	delta, err := vc.RecvDeltaFromDealer()
	if err != nil {
		return ring.R128{}, vole.VerifierKeys{}, err
	}
	n := seg.Size()
	k, err := vc.RecvExtendVole(n)
	if err != nil {
		return ring.R128{}, vole.VerifierKeys{}, err
	}
	return delta, seg.SplitKeys(k), nil
}

// ServeDealer answers one extend-VOLE request from the Prover and hands
// the matching Δ and keys to the Verifier. The Prover's requested count
// is trusted as-is: the Dealer deals a flat batch and never needs to
// know how it is later sliced into segments.
func ServeDealer(dpc channel.DealerProverChannel, dvc channel.DealerVerifierChannel, rnd io.Reader) error {
	n, err := dpc.RecvExtendVoleRequest()
	if err != nil {
		return err
	}
	delta, r, m, k, err := vole.DealFlat(int(n), rnd)
	if err != nil {
		return err
	}
	if err := dpc.SendVolePair(r, m); err != nil {
		return err
	}
	if err := dvc.SendDelta(delta); err != nil {
		return err
	}
	return dvc.SendVoleKeys(k)
}
