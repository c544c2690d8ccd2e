package testsupport

import (
	"context"
	"path/filepath"
	"testing"

	"landmarkprep/internal/config"
	"landmarkprep/internal/framestats"
)

// MustOpenStats opens a framestats.Store under the config's base directory
// and registers cleanup. The config's stats path is updated to match.
func MustOpenStats(t testing.TB, cfg *config.Config, runID string) *framestats.Store {
	t.Helper()

	if cfg.Stats.DBPath == "" {
		cfg.Stats.DBPath = filepath.Join(BaseDir(cfg), "stats", "frames.db")
	}
	store, err := framestats.Open(context.Background(), cfg.Stats.DBPath, runID)
	if err != nil {
		t.Fatalf("framestats.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
