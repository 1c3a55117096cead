// Package testsupport provides shared fixtures for tests: per-test configs
// and seeded copies of the source event schema.
package testsupport

import (
	"path/filepath"
	"testing"

	"progdoc/internal/config"
)

// NewConfig produces a config pointing at unique temp paths per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.Database = filepath.Join(base, "events.db")
	cfg.Paths.OutputDir = filepath.Join(base, "output")
	return &cfg
}
