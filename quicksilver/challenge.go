package quicksilver

import (
	"crypto/rand"
	"io"

	"github.com/vocdoni/miniram-zk/ring"
)

// defaultChallenge samples the Verifier's random challenge from
// crypto/rand, the randomness source used throughout this codebase.
func defaultChallenge() ring.R128 {
	var b [16]byte
	if _, err := io.ReadFull(rand.Reader, b[:]); err != nil {
		panic(err)
	}
	return ring.R128FromBytes(b)
}
