// Command vole-dealer runs the trusted Dealer role standalone: it
// listens for one prover and one verifier connection, serves a single
// extend-VOLE request, and exits. cmd/miniram-zk --party vole does the
// same thing inline; this binary exists for running the Dealer as its
// own process, matching the protocol's three-process model (spec §5).
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/vocdoni/miniram-zk/internal/log"
	"github.com/vocdoni/miniram-zk/internal/session"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		os.Exit(1)
	}

	log.Init(cfg.Log.Level, cfg.Log.Output)

	sessionID := uuid.New()
	log.Infow("starting vole-dealer", "session", sessionID,
		"proverAddr", cfg.DealerProverAddr, "verifierAddr", cfg.DealerVerifierAddr)

	if err := session.RunDealer(cfg.DealerProverAddr, cfg.DealerVerifierAddr); err != nil {
		log.Fatalf("vole-dealer: %v", err)
	}

	log.Infow("vole-dealer finished", "session", sessionID)
}
