package testsupport

import (
	"testing"

	"progdoc/internal/config"
	"progdoc/internal/extract"
)

// MustOpenStore opens an extract.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *extract.Store {
	t.Helper()

	store, err := extract.Open(cfg)
	if err != nil {
		t.Fatalf("extract.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
