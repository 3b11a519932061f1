package batch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"

	"gltfix/internal/batch"
	"gltfix/internal/history"
	"gltfix/internal/testsupport"
)

func writeCorruptSceneNamed(t *testing.T, dir, name string, keyframes int) string {
	t.Helper()
	scene := testsupport.CorruptTimingScene(keyframes)
	stem := name[:len(name)-len(filepath.Ext(name))]
	scene.Doc.Buffers[0].URI = stem + ".bin"
	return testsupport.WriteScene(t, dir, name, scene.Doc, scene.Bin)
}

func TestRunnerProcessesEveryScene(t *testing.T) {
	dir := t.TempDir()
	writeCorruptSceneNamed(t, dir, "alpha.gltf", 8)
	writeCorruptSceneNamed(t, dir, "beta.gltf", 4)
	// Neither of these may be picked up: wrong extension, prior output.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("n"), 0o644); err != nil {
		t.Fatalf("write txt: %v", err)
	}
	writeCorruptSceneNamed(t, dir, "old_fixed.gltf", 2)

	cfg := testsupport.NewConfig(t)
	store, err := history.Open(cfg.HistoryDBPath())
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer store.Close()

	runner := batch.NewRunner(cfg, nil, store)
	summary, err := runner.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Files != 2 || summary.Written != 2 || summary.Failed != 0 {
		t.Fatalf("summary = %+v", summary)
	}
	for _, name := range []string{"alpha_fixed.gltf", "alpha_fixed.bin", "beta_fixed.gltf", "beta_fixed.bin"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("missing output %s: %v", name, err)
		}
	}

	runs, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("journaled runs = %d, want 2", len(runs))
	}
	for _, run := range runs {
		if run.Status != history.StatusOK || run.Repaired != 1 {
			t.Fatalf("unexpected journaled run: %+v", run)
		}
	}
}

func TestRunnerIsolatesFileFailures(t *testing.T) {
	dir := t.TempDir()
	writeCorruptSceneNamed(t, dir, "good.gltf", 6)
	// A document whose payload is missing fails load but not the batch.
	if err := os.WriteFile(filepath.Join(dir, "broken.gltf"),
		[]byte(`{"accessors": [], "bufferViews": [], "buffers": [{"uri": "missing.bin", "byteLength": 4}]}`), 0o644); err != nil {
		t.Fatalf("write broken scene: %v", err)
	}

	runner := batch.NewRunner(testsupport.NewConfig(t), nil, nil)
	summary, err := runner.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Files != 2 || summary.Written != 1 || summary.Failed != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if _, err := os.Stat(filepath.Join(dir, "good_fixed.gltf")); err != nil {
		t.Fatalf("good scene output missing: %v", err)
	}

	var failed *batch.Result
	for i := range summary.Results {
		if summary.Results[i].Err != nil {
			failed = &summary.Results[i]
		}
	}
	if failed == nil || filepath.Base(failed.Path) != "broken.gltf" {
		t.Fatalf("expected broken.gltf to fail, got %+v", failed)
	}
}

func TestRunnerRefusesLockedDirectory(t *testing.T) {
	dir := t.TempDir()
	lock := flock.New(filepath.Join(dir, ".gltfix.lock"))
	locked, err := lock.TryLock()
	if err != nil || !locked {
		t.Fatalf("take lock: locked=%v err=%v", locked, err)
	}
	defer func() { _ = lock.Unlock() }()

	runner := batch.NewRunner(testsupport.NewConfig(t), nil, nil)
	if _, err := runner.Run(context.Background(), dir); err == nil {
		t.Fatal("expected a lock conflict error")
	}
}

func TestProcessWritesRepairedPair(t *testing.T) {
	dir := t.TempDir()
	input := writeCorruptSceneNamed(t, dir, "ship.gltf", 20)

	cfg := testsupport.NewConfig(t)
	result := batch.Process(context.Background(), cfg, nil, nil, input, "", "")
	if result.Err != nil {
		t.Fatalf("Process: %v", result.Err)
	}
	if result.OutputGLTF != filepath.Join(dir, "ship_fixed.gltf") {
		t.Fatalf("output = %q", result.OutputGLTF)
	}
	if len(result.Report.Repaired) != 1 || result.Report.BytesPatched != 80 {
		t.Fatalf("report = %+v", result.Report)
	}
	if _, err := os.Stat(result.OutputBin); err != nil {
		t.Fatalf("output bin missing: %v", err)
	}
}

func TestProcessHonorsExplicitOutputs(t *testing.T) {
	dir := t.TempDir()
	input := writeCorruptSceneNamed(t, dir, "ship.gltf", 3)
	outDir := t.TempDir()
	outGLTF := filepath.Join(outDir, "repaired.gltf")
	outBin := filepath.Join(outDir, "repaired.bin")

	result := batch.Process(context.Background(), testsupport.NewConfig(t), nil, nil, input, outGLTF, outBin)
	if result.Err != nil {
		t.Fatalf("Process: %v", result.Err)
	}
	if _, err := os.Stat(outGLTF); err != nil {
		t.Fatalf("explicit gltf output missing: %v", err)
	}
	if _, err := os.Stat(outBin); err != nil {
		t.Fatalf("explicit bin output missing: %v", err)
	}
}
