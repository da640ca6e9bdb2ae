package waksman_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/vocdoni/miniram-zk/waksman"
)

// routeAndCheck asserts that applying the network configured by Route(p)
// to the identity sequence recovers p's inverse, the correctness property
// the router is built to satisfy.
func routeAndCheck(c *qt.C, p waksman.Permutation) {
	n := len(p)
	conf := waksman.Route(p)
	c.Assert(len(conf), qt.Equals, waksman.ConfLen(n))

	got := waksman.Apply(n, conf, waksman.Identity(n))
	want := waksman.Inverse(p)
	c.Assert(got, qt.DeepEquals, []int(want))
}

func TestConfLenMatchesKnownValues(t *testing.T) {
	c := qt.New(t)

	c.Assert(waksman.ConfLen(1), qt.Equals, 0)
	c.Assert(waksman.ConfLen(2), qt.Equals, 1)
	c.Assert(waksman.ConfLen(3), qt.Equals, 3)
	c.Assert(waksman.ConfLen(4), qt.Equals, 5)
	c.Assert(waksman.ConfLen(8), qt.Equals, 17)
}

func TestRouteIdentityForSmallSizes(t *testing.T) {
	c := qt.New(t)

	for n := 1; n <= 8; n++ {
		p := waksman.Identity(n)
		conf := waksman.Route(p)
		for _, b := range conf {
			c.Assert(b, qt.IsFalse)
		}
		routeAndCheck(c, p)
	}
}

func TestRouteArbitraryPermutation(t *testing.T) {
	c := qt.New(t)

	p := waksman.Permutation{8, 4, 5, 2, 6, 3, 1, 0, 7}
	routeAndCheck(c, p)
}

func TestRouteOddSizes(t *testing.T) {
	c := qt.New(t)

	perms := []waksman.Permutation{
		{0},
		{1, 0, 2},
		{2, 0, 1},
		{4, 1, 0, 3, 2},
		{6, 5, 4, 3, 2, 1, 0},
	}
	for _, p := range perms {
		routeAndCheck(c, p)
	}
}

func TestRouteReversalPermutations(t *testing.T) {
	c := qt.New(t)

	for n := 1; n <= 12; n++ {
		p := make(waksman.Permutation, n)
		for i := range p {
			p[i] = n - 1 - i
		}
		routeAndCheck(c, p)
	}
}

func TestRouteRotationPermutations(t *testing.T) {
	c := qt.New(t)

	for n := 2; n <= 12; n++ {
		p := make(waksman.Permutation, n)
		for i := range p {
			p[i] = (i + 1) % n
		}
		routeAndCheck(c, p)
	}
}

func TestApplyOnNonIntegerPayload(t *testing.T) {
	c := qt.New(t)

	p := waksman.Permutation{2, 0, 3, 1}
	conf := waksman.Route(p)
	xs := []string{"a", "b", "c", "d"}
	got := waksman.Apply(4, conf, xs)

	inv := waksman.Inverse(p)
	want := make([]string, 4)
	for i, v := range inv {
		want[i] = xs[v]
	}
	c.Assert(got, qt.DeepEquals, want)
}
