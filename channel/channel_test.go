package channel_test

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"golang.org/x/sync/errgroup"

	"github.com/vocdoni/miniram-zk/channel"
	"github.com/vocdoni/miniram-zk/ring"
)

func TestLoopbackDealerToProverExtendVole(t *testing.T) {
	c := qt.New(t)
	lb := channel.NewLoopback()
	defer lb.Close()

	r := []ring.R128{ring.FromUint64(1), ring.FromUint64(2), ring.FromUint64(3)}
	m := []ring.R128{ring.FromUint64(4), ring.FromUint64(5), ring.FromUint64(6)}

	var g errgroup.Group
	var gotReq uint64
	g.Go(func() error {
		var err error
		gotReq, err = lb.DealerProver.RecvExtendVoleRequest()
		if err != nil {
			return err
		}
		return lb.DealerProver.SendVolePair(r, m)
	})

	var gotR, gotM []ring.R128
	g.Go(func() error {
		if err := lb.Prover.SendExtendVole(3); err != nil {
			return err
		}
		var err error
		gotR, gotM, err = lb.Prover.RecvExtendVole(3)
		return err
	})

	c.Assert(g.Wait(), qt.IsNil)
	c.Assert(gotReq, qt.Equals, uint64(3))
	c.Assert(gotR, qt.DeepEquals, r)
	c.Assert(gotM, qt.DeepEquals, m)
}

func TestLoopbackProverVerifierMACFlow(t *testing.T) {
	c := qt.New(t)
	lb := channel.NewLoopback()
	defer lb.Close()

	d := ring.FromUint64(42)
	mac := ring.FromUint64(99)

	var g errgroup.Group
	g.Go(func() error {
		if err := lb.Prover.SendDelta(d); err != nil {
			return err
		}
		return lb.Prover.SendMAC(mac)
	})

	var gotD, gotMAC ring.R128
	g.Go(func() error {
		var err error
		gotD, err = lb.Verifier.RecvDeltaFromProver()
		if err != nil {
			return err
		}
		gotMAC, err = lb.Verifier.RecvMAC()
		return err
	})

	c.Assert(g.Wait(), qt.IsNil)
	c.Assert(gotD, qt.DeepEquals, d)
	c.Assert(gotMAC, qt.DeepEquals, mac)
}

func TestLoopbackChallengeRoundTrip(t *testing.T) {
	c := qt.New(t)
	lb := channel.NewLoopback()
	defer lb.Close()

	x := ring.FromUint64(7)

	var g errgroup.Group
	var got ring.R128
	g.Go(func() error {
		var err error
		got, err = lb.Prover.RecvChallenge()
		return err
	})
	g.Go(func() error {
		return lb.Verifier.SendChallenge(x)
	})

	c.Assert(g.Wait(), qt.IsNil)
	c.Assert(got, qt.DeepEquals, x)
}
