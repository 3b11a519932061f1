package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate", "--path", env.configPath}, "")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "is valid")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// The sample must itself pass validation.
	out, _, err = runCLI(t, []string{"config", "validate", "--path", target}, "")
	if err != nil {
		t.Fatalf("validate sample: %v", err)
	}
	requireContains(t, out, "is valid")
}

func TestConfigInitRefusesExistingFile(t *testing.T) {
	setupCLITestEnv(t)

	target := filepath.Join(t.TempDir(), "config.toml")
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err != nil {
		t.Fatalf("config init: %v", err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected an error without --overwrite")
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigValidateMissingFile(t *testing.T) {
	setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, "")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "defaults are valid")
}
