package config

import (
	"bytes"
	"io"
	"os"
	"strings"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"ENV", "PORT", "LLM_PROVIDER", "LLM_TIMEOUT_SECONDS", "MAX_UPLOAD_BYTES", "OBJECT_STORE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Fatalf("expected env dev, got %q", cfg.Env)
	}
	if cfg.LLMProvider != "huggingface" {
		t.Fatalf("expected default provider huggingface, got %q", cfg.LLMProvider)
	}
	if cfg.LLMTimeout != 0 {
		t.Fatalf("expected no generation timeout by default, got %s", cfg.LLMTimeout)
	}
	if cfg.MaxUploadBytes != defaultMaxUploadBytes {
		t.Fatalf("expected default upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.ObjectStoreType != "local" {
		t.Fatalf("expected local store, got %q", cfg.ObjectStoreType)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENV", "prod")
	t.Setenv("LLM_PROVIDER", "Google")
	t.Setenv("LLM_TIMEOUT_SECONDS", "45")
	t.Setenv("CORS_ALLOW_ORIGINS", " http://a.test , ,http://b.test")
	t.Setenv("OBJECT_STORE", "S3")
	t.Setenv("MAX_UPLOAD_BYTES", "not-a-number")

	cfg := Load()
	if cfg.Env != "production" {
		t.Fatalf("expected production, got %q", cfg.Env)
	}
	if cfg.LLMProvider != "gemini" {
		t.Fatalf("expected gemini, got %q", cfg.LLMProvider)
	}
	if cfg.LLMTimeout != 45*time.Second {
		t.Fatalf("expected 45s timeout, got %s", cfg.LLMTimeout)
	}
	if len(cfg.CORSAllowOrigin) != 2 || cfg.CORSAllowOrigin[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowOrigin)
	}
	if cfg.ObjectStoreType != "s3" {
		t.Fatalf("expected s3, got %q", cfg.ObjectStoreType)
	}
	if cfg.MaxUploadBytes != defaultMaxUploadBytes {
		t.Fatalf("expected invalid int to fall back, got %d", cfg.MaxUploadBytes)
	}
}

func TestLoadReadsDotEnvWithoutOverriding(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9999\nHF_API_TOKEN=\"from-file\"\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("PORT", "7000")
	t.Setenv("HF_API_TOKEN", "")
	os.Unsetenv("HF_API_TOKEN")

	cfg := Load()
	if cfg.Port != "7000" {
		t.Fatalf("expected environment to win over .env, got %q", cfg.Port)
	}
	if cfg.HFAPIToken != "from-file" {
		t.Fatalf("expected token from .env, got %q", cfg.HFAPIToken)
	}
}

func TestNormalizeProvider(t *testing.T) {
	tests := map[string]string{
		"":            "huggingface",
		"HuggingFace": "huggingface",
		"hf":          "huggingface",
		"openai":      "openai",
		" gemini ":    "gemini",
		"off":         "none",
	}
	for in, want := range tests {
		if got := NormalizeProvider(in); got != want {
			t.Fatalf("NormalizeProvider(%q) = %q, want %q", in, got, want)
		}
	}
}

func captureStdout(t *testing.T, fn func()) string {
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
	return buf.String()
}

func TestLoadWarnsOnUnknownProvider(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LLM_PROVIDER", "opnai")

	var cfg Config
	out := captureStdout(t, func() { cfg = Load() })
	if cfg.LLMProvider != "huggingface" {
		t.Fatalf("expected fallback to huggingface, got %q", cfg.LLMProvider)
	}
	if !strings.Contains(out, `"msg":"config.unknown_provider"`) || !strings.Contains(out, `"value":"opnai"`) {
		t.Fatalf("expected unknown provider warning, got %q", out)
	}
}

func TestLoadKnownProviderDoesNotWarn(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LLM_PROVIDER", "Google")

	out := captureStdout(t, func() { Load() })
	if strings.Contains(out, "config.unknown_provider") {
		t.Fatalf("did not expect a warning for an alias, got %q", out)
	}
}

func TestKnownProvider(t *testing.T) {
	for _, raw := range []string{"openai", " HF ", "off", ""} {
		if !KnownProvider(raw) {
			t.Fatalf("expected %q to be known", raw)
		}
	}
	if KnownProvider("opnai") {
		t.Fatalf("expected typo to be unknown")
	}
}
