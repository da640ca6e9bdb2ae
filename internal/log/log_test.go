package log_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/vocdoni/miniram-zk/internal/log"
)

func TestInitLevelFiltersMessages(t *testing.T) {
	c := qt.New(t)

	out := filepath.Join(t.TempDir(), "warn.log")
	log.Init(log.LogLevelWarn, out)

	log.Infow("this should be filtered out", "role", "prover")
	log.Warnw("this should appear", "role", "verifier")

	contents, err := os.ReadFile(out)
	c.Assert(err, qt.IsNil)
	c.Assert(string(contents), qt.Not(qt.Contains), "this should be filtered out")
	c.Assert(string(contents), qt.Contains, "this should appear")
}

func TestRoleInfowTagsEveryLine(t *testing.T) {
	c := qt.New(t)

	out := filepath.Join(t.TempDir(), "roles.log")
	log.Init(log.LogLevelInfo, out)

	dealer := log.NewRole("dealer")
	dealer.Infow("vole batch served", "correlations", 42)

	contents, err := os.ReadFile(out)
	c.Assert(err, qt.IsNil)
	lines := strings.TrimSpace(string(contents))
	c.Assert(lines, qt.Contains, "dealer")
	c.Assert(lines, qt.Contains, "vole batch served")
	c.Assert(lines, qt.Contains, "42")
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	c := qt.New(t)
	c.Assert(func() { log.Init("bogus", "stderr") }, qt.PanicMatches, `invalid log level: "bogus"`)
}
