package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	unsetForTest(t, "PORT", "ENV", "MAX_UPLOAD_BYTES", "ANALYZE_BURST", "CORS_ALLOW_ORIGINS")

	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Fatalf("expected env dev, got %q", cfg.Env)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("expected 10MiB upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.AnalyzeBurst != 5 {
		t.Fatalf("expected burst 5, got %d", cfg.AnalyzeBurst)
	}
	if len(cfg.CORSAllowOrigin) != 1 || cfg.CORSAllowOrigin[0] != "http://localhost:5173" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowOrigin)
	}
}

func TestLoadReadsEnvFileWithoutOverriding(t *testing.T) {
	t.Setenv("PORT", "9090")
	unsetForTest(t, "MAX_UPLOAD_BYTES", "ENV")

	path := filepath.Join(t.TempDir(), ".env")
	content := "PORT=7070\nMAX_UPLOAD_BYTES=2048\nENV=prod\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg := Load(path)

	if cfg.Port != "9090" {
		t.Fatalf("expected real env to win, got port %q", cfg.Port)
	}
	if cfg.MaxUploadBytes != 2048 {
		t.Fatalf("expected upload limit from env file, got %d", cfg.MaxUploadBytes)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected production env, got %q", cfg.Env)
	}
}

func TestInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "lots")
	t.Setenv("ANALYZE_RATE_PER_MINUTE", "-3")

	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))

	if cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("expected fallback upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.AnalyzeRatePerMinute != 30 {
		t.Fatalf("expected fallback rate, got %v", cfg.AnalyzeRatePerMinute)
	}
}

// unsetForTest removes keys for the duration of the test; t.Setenv restores them.
func unsetForTest(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
