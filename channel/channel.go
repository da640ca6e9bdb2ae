// Package channel implements the framed binary transports the three
// protocol parties talk over: the Prover and Verifier each keep one
// connection to the other and one to
// the trusted Dealer. All framing is little-endian and fixed width
// (spec §6.2); bulk VOLE transfers are chunked in blocks of 32 R128
// words. Ported in spirit from original_source/utils/src/channel.rs's
// ProverTcpChannel/VerifierTcpChannel (recv_u64/recv_64_u64 retry-until-
// full reads, per-field counters) and its channel/impls.rs ZKChannel
// seam, generalized from the prototype's raw u64 wire values to this
// system's R32/R128 ring elements.
package channel

import "github.com/vocdoni/miniram-zk/ring"

// bulkChunk is the number of R128 words read or written per bulk I/O
// call, matching spec §6.2's "chunk at 32x16 bytes".
const bulkChunk = 32

// ProverChannel is the Prover's view of its two peers: the Dealer (VOLE
// extension) and the Verifier (the interactive QuickSilver protocol).
type ProverChannel interface {
	// SendExtendVole requests a VOLE batch of size n from the Dealer.
	SendExtendVole(n uint64) error
	// RecvExtendVole reads the Dealer's reply: n (mask, tag) pairs.
	RecvExtendVole(n int) (r, m []ring.R128, err error)

	// SendDelta sends a witness-commitment delta d = x - r to the Verifier.
	SendDelta(d ring.R128) error
	// SendMAC sends the MAC tag accompanying the most recent delta.
	SendMAC(m ring.R128) error
	// SendVal sends a plaintext value the Verifier is meant to see
	// directly (used nowhere in the base protocol but kept symmetric
	// with RecvVal on the Verifier side for transports that need it).
	SendVal(v ring.R32) error
	// SendU sends the Prover's aggregate U for the multiplication-check.
	SendU(u ring.R128) error
	// SendV sends the Prover's aggregate V for the multiplication-check.
	SendV(v ring.R128) error
	// RecvChallenge blocks for the Verifier's random challenge.
	RecvChallenge() (ring.R128, error)

	Close() error
}

// VerifierChannel is the Verifier's view of its two peers: the Dealer
// (Δ and VOLE keys) and the Prover (the interactive QuickSilver protocol).
type VerifierChannel interface {
	// RecvDeltaFromDealer reads the session's global MAC key Δ.
	RecvDeltaFromDealer() (ring.R128, error)
	// RecvExtendVole reads the Dealer's reply: n keys.
	RecvExtendVole(n int) (k []ring.R128, err error)

	// RecvDeltaFromProver reads a witness-commitment delta from the Prover.
	RecvDeltaFromProver() (ring.R128, error)
	// RecvMAC reads the MAC tag accompanying the most recent delta.
	RecvMAC() (ring.R128, error)
	// RecvVal reads a plaintext value sent via ProverChannel.SendVal.
	RecvVal() (ring.R32, error)
	// SendChallenge sends the random challenge after every multiplication
	// output has been committed.
	SendChallenge(x ring.R128) error
	// RecvU reads the Prover's aggregate U.
	RecvU() (ring.R128, error)
	// RecvV reads the Prover's aggregate V.
	RecvV() (ring.R128, error)

	Close() error
}

// DealerProverChannel is the Dealer's view of its connection to the
// Prover: it only ever serves extend-VOLE requests.
type DealerProverChannel interface {
	RecvExtendVoleRequest() (uint64, error)
	SendVolePair(r, m []ring.R128) error
	Close() error
}

// DealerVerifierChannel is the Dealer's view of its connection to the
// Verifier: it hands out Δ once, then VOLE keys per request.
type DealerVerifierChannel interface {
	SendDelta(d ring.R128) error
	SendVoleKeys(k []ring.R128) error
	Close() error
}
