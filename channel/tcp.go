package channel

import (
	"net"

	"github.com/vocdoni/miniram-zk/ring"
)

// TCPProverChannel is the Prover's ProverChannel implementation over two
// TCP connections: one to the Dealer, one to the Verifier. Grounded on
// original_source/utils/src/channel.rs's ProverTcpChannel, which keeps
// the same stream_vole/stream_other split.
type TCPProverChannel struct {
	dealer   *wireConn
	verifier *wireConn
}

// NewTCPProverChannel wraps already-dialed connections to the Dealer
// and the Verifier.
func NewTCPProverChannel(toDealer, toVerifier net.Conn) *TCPProverChannel {
	return &TCPProverChannel{dealer: newWireConn(toDealer), verifier: newWireConn(toVerifier)}
}

func (p *TCPProverChannel) SendExtendVole(n uint64) error { return p.dealer.writeU64(n) }

func (p *TCPProverChannel) RecvExtendVole(n int) (r, m []ring.R128, err error) {
	r, err = p.dealer.readR128Bulk(n)
	if err != nil {
		return nil, nil, err
	}
	m, err = p.dealer.readR128Bulk(n)
	if err != nil {
		return nil, nil, err
	}
	return r, m, nil
}

func (p *TCPProverChannel) SendDelta(d ring.R128) error  { return p.verifier.writeR128(d) }
func (p *TCPProverChannel) SendMAC(m ring.R128) error    { return p.verifier.writeR128(m) }
func (p *TCPProverChannel) SendVal(v ring.R32) error     { return p.verifier.writeR32(v) }
func (p *TCPProverChannel) SendU(u ring.R128) error      { return p.verifier.writeR128(u) }
func (p *TCPProverChannel) SendV(v ring.R128) error      { return p.verifier.writeR128(v) }
func (p *TCPProverChannel) RecvChallenge() (ring.R128, error) {
	return p.verifier.readR128()
}

func (p *TCPProverChannel) Close() error {
	err1 := p.dealer.Close()
	err2 := p.verifier.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

// TCPVerifierChannel is the Verifier's VerifierChannel implementation
// over two TCP connections: one to the Dealer, one to the Prover.
type TCPVerifierChannel struct {
	dealer *wireConn
	prover *wireConn
}

// NewTCPVerifierChannel wraps already-dialed connections to the Dealer
// and the Prover.
func NewTCPVerifierChannel(toDealer, toProver net.Conn) *TCPVerifierChannel {
	return &TCPVerifierChannel{dealer: newWireConn(toDealer), prover: newWireConn(toProver)}
}

func (v *TCPVerifierChannel) RecvDeltaFromDealer() (ring.R128, error) { return v.dealer.readR128() }

func (v *TCPVerifierChannel) RecvExtendVole(n int) ([]ring.R128, error) {
	return v.dealer.readR128Bulk(n)
}

func (v *TCPVerifierChannel) RecvDeltaFromProver() (ring.R128, error) { return v.prover.readR128() }
func (v *TCPVerifierChannel) RecvMAC() (ring.R128, error)             { return v.prover.readR128() }
func (v *TCPVerifierChannel) RecvVal() (ring.R32, error)              { return v.prover.readR32() }
func (v *TCPVerifierChannel) SendChallenge(x ring.R128) error         { return v.prover.writeR128(x) }
func (v *TCPVerifierChannel) RecvU() (ring.R128, error)               { return v.prover.readR128() }
func (v *TCPVerifierChannel) RecvV() (ring.R128, error)               { return v.prover.readR128() }

func (v *TCPVerifierChannel) Close() error {
	err1 := v.dealer.Close()
	err2 := v.prover.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

// TCPDealerProverChannel is the Dealer's side of its connection to the
// Prover.
type TCPDealerProverChannel struct{ conn *wireConn }

func NewTCPDealerProverChannel(conn net.Conn) *TCPDealerProverChannel {
	return &TCPDealerProverChannel{conn: newWireConn(conn)}
}

func (d *TCPDealerProverChannel) RecvExtendVoleRequest() (uint64, error) { return d.conn.readU64() }

func (d *TCPDealerProverChannel) SendVolePair(r, m []ring.R128) error {
	if err := d.conn.writeR128Bulk(r); err != nil {
		return err
	}
	return d.conn.writeR128Bulk(m)
}

func (d *TCPDealerProverChannel) Close() error { return d.conn.Close() }

// TCPDealerVerifierChannel is the Dealer's side of its connection to the
// Verifier.
type TCPDealerVerifierChannel struct{ conn *wireConn }

func NewTCPDealerVerifierChannel(conn net.Conn) *TCPDealerVerifierChannel {
	return &TCPDealerVerifierChannel{conn: newWireConn(conn)}
}

func (d *TCPDealerVerifierChannel) SendDelta(delta ring.R128) error { return d.conn.writeR128(delta) }

func (d *TCPDealerVerifierChannel) SendVoleKeys(k []ring.R128) error {
	return d.conn.writeR128Bulk(k)
}

func (d *TCPDealerVerifierChannel) Close() error { return d.conn.Close() }
