package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	configPath string
	logDir     string
	historyDB  string
	sceneDir   string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	env := &cliTestEnv{
		configPath: filepath.Join(base, "config.toml"),
		logDir:     filepath.Join(base, "logs"),
		historyDB:  filepath.Join(base, "history.db"),
		sceneDir:   filepath.Join(base, "scenes"),
	}
	if err := os.MkdirAll(env.sceneDir, 0o755); err != nil {
		t.Fatalf("mkdir scenes: %v", err)
	}
	writeTestConfig(t, env)
	return env
}

func writeTestConfig(t *testing.T, env *cliTestEnv) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\nlog_dir = %q\nhistory_db = %q\n\n[logging]\nlevel = \"error\"\nformat = \"json\"\n",
		env.logDir,
		env.historyDB,
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
