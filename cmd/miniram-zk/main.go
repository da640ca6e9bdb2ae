// Command miniram-zk runs one of the three roles of the MiniRAM VOLE-ZK
// argument -- prover, verifier, or the trusted vole dealer -- against a
// preset MiniRAM program, over real TCP sockets. It exists so the prover
// and verifier are exercised by something runnable, not only by unit
// tests.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/vocdoni/miniram-zk/internal/log"
	"github.com/vocdoni/miniram-zk/internal/session"
	"github.com/vocdoni/miniram-zk/ring"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		os.Exit(1)
	}

	log.Init(cfg.Log.Level, cfg.Log.Output)

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	sessionID := uuid.New()
	log.Infow("starting miniram-zk", "session", sessionID, "party", cfg.Party, "program", cfg.Program, "steps", cfg.Steps)

	var runErr error
	switch cfg.Party {
	case "prover":
		input := make([]ring.R32, len(cfg.Input))
		for i, w := range cfg.Input {
			input[i] = ring.R32(w)
		}
		runErr = session.RunProver(cfg.Program, cfg.Steps, input, cfg.ProverVerifierAddr, cfg.DealerProverAddr)
	case "verifier":
		runErr = session.RunVerifier(cfg.Program, cfg.Steps, cfg.ProverVerifierAddr, cfg.DealerVerifierAddr)
	case "vole":
		runErr = session.RunDealer(cfg.DealerProverAddr, cfg.DealerVerifierAddr)
	}

	if runErr == nil {
		log.Infow("miniram-zk finished", "session", sessionID, "party", cfg.Party)
		return
	}

	// IOFailure, AssertionFailure, and VerificationRejected are all fatal
	// for this demo binary -- there is no caller above main to hand a
	// recoverable error back to.
	log.Fatalf("miniram-zk: %v", runErr)
}
