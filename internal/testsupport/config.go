package testsupport

import (
	"path/filepath"
	"testing"

	"gltfix/internal/config"
)

// NewConfig returns repository defaults with every writable path redirected
// into a fresh temp directory.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.HistoryDB = filepath.Join(base, "history.db")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	return &cfg
}
