package channel

import "net"

// Loopback bundles an in-memory Prover/Verifier/Dealer channel set
// wired together with net.Pipe, for tests that want a full protocol run
// without binding real sockets -- in the same spirit as db/inmemory
// standing in for a live backend in unit tests.
type Loopback struct {
	Prover         *TCPProverChannel
	Verifier       *TCPVerifierChannel
	DealerProver   *TCPDealerProverChannel
	DealerVerifier *TCPDealerVerifierChannel
}

// NewLoopback builds three net.Pipe connected pairs (Prover<->Verifier,
// Prover<->Dealer, Verifier<->Dealer) and wraps each end in the
// corresponding channel type.
func NewLoopback() *Loopback {
	pDealerSide, dProverSide := net.Pipe()
	vDealerSide, dVerifierSide := net.Pipe()
	pVerifierSide, vProverSide := net.Pipe()

	return &Loopback{
		Prover:         NewTCPProverChannel(pDealerSide, pVerifierSide),
		Verifier:       NewTCPVerifierChannel(vDealerSide, vProverSide),
		DealerProver:   NewTCPDealerProverChannel(dProverSide),
		DealerVerifier: NewTCPDealerVerifierChannel(dVerifierSide),
	}
}

// Close shuts down every pipe end. Safe to call once all goroutines
// driving the loopback have finished.
func (l *Loopback) Close() {
	_ = l.Prover.Close()
	_ = l.Verifier.Close()
	_ = l.DealerProver.Close()
	_ = l.DealerVerifier.Close()
}
