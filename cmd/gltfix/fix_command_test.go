package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"gltfix/internal/batch"
	"gltfix/internal/testsupport"
)

func TestFixCommandRepairsScene(t *testing.T) {
	env := setupCLITestEnv(t)
	input := testsupport.WriteCorruptScene(t, env.sceneDir, "scene.gltf", 20)

	out, _, err := runCLI(t, []string{"fix", input}, env.configPath)
	if err != nil {
		t.Fatalf("fix: %v", err)
	}
	requireContains(t, out, "1 repaired")
	requireContains(t, out, "wrote")

	for _, name := range []string{"scene_fixed.gltf", "scene_fixed.bin"} {
		if _, err := os.Stat(filepath.Join(env.sceneDir, name)); err != nil {
			t.Fatalf("expected output %s: %v", name, err)
		}
	}
}

func TestFixCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	input := testsupport.WriteCorruptScene(t, env.sceneDir, "scene.gltf", 20)

	out, _, err := runCLI(t, []string{"fix", input, "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("fix --json: %v", err)
	}

	var result batch.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("parse output: %v\n%s", err, out)
	}
	if result.Report == nil {
		t.Fatal("expected a report in JSON output")
	}
	if result.Report.Scanned != 1 || len(result.Report.Repaired) != 1 {
		t.Fatalf("unexpected report: scanned=%d repaired=%d",
			result.Report.Scanned, len(result.Report.Repaired))
	}
	if result.Report.BytesPatched != 80 {
		t.Fatalf("BytesPatched = %d, want 80", result.Report.BytesPatched)
	}
	if result.OutputGLTF == "" {
		t.Fatal("expected output path in JSON result")
	}
	if _, err := os.Stat(result.OutputGLTF); err != nil {
		t.Fatalf("expected written document: %v", err)
	}
}

func TestFixCommandExplicitOutputs(t *testing.T) {
	env := setupCLITestEnv(t)
	input := testsupport.WriteCorruptScene(t, env.sceneDir, "scene.gltf", 4)

	outGLTF := filepath.Join(env.sceneDir, "repaired.gltf")
	outBin := filepath.Join(env.sceneDir, "repaired.bin")
	_, _, err := runCLI(t, []string{"fix", input, "-o", outGLTF, "--bin", outBin}, env.configPath)
	if err != nil {
		t.Fatalf("fix: %v", err)
	}
	if _, err := os.Stat(outGLTF); err != nil {
		t.Fatalf("expected %s: %v", outGLTF, err)
	}
	if _, err := os.Stat(outBin); err != nil {
		t.Fatalf("expected %s: %v", outBin, err)
	}
}

func TestFixCommandMissingInput(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"fix", filepath.Join(env.sceneDir, "absent.gltf")}, env.configPath)
	if err == nil {
		t.Fatal("expected an error for a missing input file")
	}
}
