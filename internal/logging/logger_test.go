package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"gltfix/internal/logging"
)

func TestNewConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	component := logging.NewComponentLogger(logger, "repair")
	component.Info("regenerated keyframe timestamps", slog.Int(logging.FieldSampler, 3))
	component.Debug("suppressed at info level")

	out := buf.String()
	if !strings.Contains(out, "[repair]") {
		t.Fatalf("missing component tag: %q", out)
	}
	if !strings.Contains(out, "regenerated keyframe timestamps") {
		t.Fatalf("missing message: %q", out)
	}
	if !strings.Contains(out, "sampler=3") {
		t.Fatalf("missing attribute: %q", out)
	}
	if strings.Contains(out, "suppressed") {
		t.Fatalf("debug record leaked through info level: %q", out)
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Debug("scene written", slog.String(logging.FieldFile, "/models/a.gltf"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "scene written" || record[logging.FieldFile] != "/models/a.gltf" {
		t.Fatalf("unexpected record: %v", record)
	}
}

func TestNewRejectsUnknownFormatAndLevel(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
	if _, err := logging.New(logging.Options{Level: "loud"}); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for input, want := range cases {
		got, err := logging.ParseLevel(input)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	// Must not panic and must report disabled at every level.
	logger.Error("dropped")
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger claims to be enabled")
	}
}
