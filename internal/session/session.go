// Package session wires channel.TCP* transports, miniram, and
// quicksilver together into the three runnable roles cmd/miniram-zk and
// cmd/vole-dealer expose: Prover, Verifier, and Dealer. It is the
// runnable counterpart to quicksilver/protocol_test.go's in-process
// channel.NewLoopback() session, grounded the same way but over real
// sockets per spec §6.3 and §5's "three single-threaded processes".
package session

import (
	"crypto/rand"
	"net"

	"github.com/vocdoni/miniram-zk/channel"
	"github.com/vocdoni/miniram-zk/internal/log"
	"github.com/vocdoni/miniram-zk/miniram"
	"github.com/vocdoni/miniram-zk/miniram/reduction"
	"github.com/vocdoni/miniram-zk/miniram/witness"
	"github.com/vocdoni/miniram-zk/quicksilver"
	"github.com/vocdoni/miniram-zk/ring"
	"github.com/vocdoni/miniram-zk/zkerrors"
)

// RunProver dials the Verifier and the Dealer, runs the MiniRAM program
// to build a witness, and proves it, returning nil iff every message in
// the protocol was sent successfully (it makes no claim about whether
// the Verifier accepted -- that's the Verifier process's own exit code).
func RunProver(program string, steps int, input []ring.R32, proverVerifierAddr, dealerProverAddr string) error {
	prog, input, err := LookupPreset(program, input)
	if err != nil {
		return err
	}

	trace, err := miniram.Interpret(prog, input, steps)
	if err != nil {
		return err
	}
	wit, err := witness.Encode(trace, steps)
	if err != nil {
		return err
	}
	circ, err := reduction.GenerateCircuit(prog, steps)
	if err != nil {
		return err
	}
	logger := log.NewRole("prover")
	logger.Infow("circuit built", "program", program, "steps", steps, "gates", circ.NGates)

	toVerifier, err := net.Dial("tcp", proverVerifierAddr)
	if err != nil {
		return zkerrors.Wrap(zkerrors.IOFailure, "session: dialing verifier", err)
	}
	toDealer, err := net.Dial("tcp", dealerProverAddr)
	if err != nil {
		return zkerrors.Wrap(zkerrors.IOFailure, "session: dialing dealer", err)
	}
	pc := channel.NewTCPProverChannel(toDealer, toVerifier)
	defer pc.Close()

	seg := quicksilver.SegmentsFor(circ)
	shares, err := quicksilver.RequestShares(pc, seg)
	if err != nil {
		return err
	}
	logger.Infow("vole received", "correlations", seg.Size())

	if err := quicksilver.Prove(circ, wit, shares, pc); err != nil {
		return err
	}
	logger.Infow("proof sent")
	return nil
}

// RunVerifier listens for one Prover connection, dials the Dealer, and
// verifies the resulting proof. It returns zkerrors.ErrVerificationReject
// if the proof is rejected.
func RunVerifier(program string, steps int, proverVerifierListenAddr, dealerVerifierAddr string) error {
	prog, _, err := LookupPreset(program, nil)
	if err != nil {
		return err
	}
	circ, err := reduction.GenerateCircuit(prog, steps)
	if err != nil {
		return err
	}
	logger := log.NewRole("verifier")
	logger.Infow("circuit built", "program", program, "steps", steps, "gates", circ.NGates)

	ln, err := net.Listen("tcp", proverVerifierListenAddr)
	if err != nil {
		return zkerrors.Wrap(zkerrors.IOFailure, "session: listening for prover", err)
	}
	defer ln.Close()
	logger.Infow("waiting for prover", "addr", ln.Addr())

	fromProver, err := ln.Accept()
	if err != nil {
		return zkerrors.Wrap(zkerrors.IOFailure, "session: accepting prover", err)
	}

	toDealer, err := net.Dial("tcp", dealerVerifierAddr)
	if err != nil {
		return zkerrors.Wrap(zkerrors.IOFailure, "session: dialing dealer", err)
	}
	vc := channel.NewTCPVerifierChannel(toDealer, fromProver)
	defer vc.Close()

	seg := quicksilver.SegmentsFor(circ)
	delta, keys, err := quicksilver.RequestKeys(vc, seg)
	if err != nil {
		return err
	}
	logger.Infow("vole keys received", "correlations", seg.Size())

	if err := quicksilver.Verify(circ, delta, keys, vc); err != nil {
		logger.Errorw(err, "proof rejected")
		return err
	}
	logger.Infow("proof accepted")
	return nil
}

// RunDealer accepts one Prover connection and one Verifier connection
// and serves exactly one extend-VOLE request, matching spec §5's single
// producer serving the two sinks of one proof run.
func RunDealer(dealerProverListenAddr, dealerVerifierListenAddr string) error {
	proverLn, err := net.Listen("tcp", dealerProverListenAddr)
	if err != nil {
		return zkerrors.Wrap(zkerrors.IOFailure, "session: listening for prover", err)
	}
	defer proverLn.Close()
	verifierLn, err := net.Listen("tcp", dealerVerifierListenAddr)
	if err != nil {
		return zkerrors.Wrap(zkerrors.IOFailure, "session: listening for verifier", err)
	}
	defer verifierLn.Close()
	logger := log.NewRole("dealer")
	logger.Infow("waiting for prover and verifier", "proverAddr", proverLn.Addr(), "verifierAddr", verifierLn.Addr())

	proverConn, err := proverLn.Accept()
	if err != nil {
		return zkerrors.Wrap(zkerrors.IOFailure, "session: accepting prover", err)
	}
	verifierConn, err := verifierLn.Accept()
	if err != nil {
		return zkerrors.Wrap(zkerrors.IOFailure, "session: accepting verifier", err)
	}

	dpc := channel.NewTCPDealerProverChannel(proverConn)
	defer dpc.Close()
	dvc := channel.NewTCPDealerVerifierChannel(verifierConn)
	defer dvc.Close()

	if err := quicksilver.ServeDealer(dpc, dvc, rand.Reader); err != nil {
		return err
	}
	logger.Infow("vole batch served")
	return nil
}
