package batch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"

	"gltfix/internal/config"
	"gltfix/internal/history"
	"gltfix/internal/logging"
)

// lockFileName is created inside the target directory for the duration of
// a batch pass.
const lockFileName = ".gltfix.lock"

// Summary aggregates a directory pass.
type Summary struct {
	Directory string   `json:"directory"`
	Files     int      `json:"files"`
	Written   int      `json:"written"`
	Failed    int      `json:"failed"`
	Results   []Result `json:"results,omitempty"`
}

// Runner applies the repair pipeline to every scene file in a directory.
type Runner struct {
	cfg   *config.Config
	log   *slog.Logger
	store *history.Store
}

// NewRunner constructs a Runner. A nil logger disables logging; a nil store
// disables journaling.
func NewRunner(cfg *config.Config, logger *slog.Logger, store *history.Store) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{cfg: cfg, log: logger, store: store}
}

// Run locks dir, discovers .gltf files beneath it, and processes each one
// independently. A file that fails never blocks the rest; the summary
// carries every per-file result in discovery order.
func (r *Runner) Run(ctx context.Context, dir string) (*Summary, error) {
	lock := flock.New(filepath.Join(dir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", dir, err)
	}
	if !locked {
		return nil, fmt.Errorf("directory %s is locked by another batch run", dir)
	}
	defer func() { _ = lock.Unlock() }()

	paths, err := r.discover(dir)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Directory: dir, Files: len(paths)}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		result := Process(ctx, r.cfg, r.log, r.store, path, "", "")
		if result.Err != nil {
			summary.Failed++
		} else {
			summary.Written++
		}
		summary.Results = append(summary.Results, result)
	}

	r.log.Info("batch complete",
		slog.String("directory", dir),
		slog.Int("files", summary.Files),
		slog.Int("written", summary.Written),
		slog.Int("failed", summary.Failed))
	return summary, nil
}

// discover lists .gltf files under dir, skipping outputs of earlier passes
// (stems already carrying the configured suffix).
func (r *Runner) discover(dir string) ([]string, error) {
	suffix := r.cfg.Repair.OutputSuffix
	var paths []string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".gltf") {
			return nil
		}
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if strings.HasSuffix(stem, suffix) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}
