package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
)

func captureStdout(t *testing.T, fn func()) []string {
	t.Helper()
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	_ = w.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("read output: %v", err)
	}
	out := strings.TrimSpace(buf.String())
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func TestInfoWritesJSONLine(t *testing.T) {
	lines := captureStdout(t, func() {
		Info("extract.complete", map[string]any{
			"document_id": "doc-1",
			"pages":       2,
			"err":         errors.New("boom"),
		})
	})
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d", len(lines))
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}
	if payload["msg"] != "extract.complete" {
		t.Fatalf("unexpected msg: %v", payload["msg"])
	}
	if payload["level"] != "info" {
		t.Fatalf("unexpected level: %v", payload["level"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("missing ts")
	}
	if payload["document_id"] != "doc-1" {
		t.Fatalf("unexpected document_id: %v", payload["document_id"])
	}
	if payload["err"] != "boom" {
		t.Fatalf("expected error rendered as string, got %v", payload["err"])
	}
}

func TestSetLevelFiltersDebug(t *testing.T) {
	t.Cleanup(func() { SetLevel("info") })

	SetLevel("warn")
	lines := captureStdout(t, func() {
		Info("dropped", nil)
		Warn("kept", nil)
	})
	if len(lines) != 1 || !strings.Contains(lines[0], `"msg":"kept"`) {
		t.Fatalf("expected only warn line, got %v", lines)
	}

	SetLevel("bogus")
	lines = captureStdout(t, func() {
		Debug("dropped", nil)
		Info("kept", nil)
	})
	if len(lines) != 1 {
		t.Fatalf("expected unknown level to fall back to info, got %v", lines)
	}
}
