package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseValid(t *testing.T) {
	data := []byte(`
addr: ":9090"
log:
  format: text
  level: debug
  fields:
    service: demo
  exclude:
    - /healthz
    - /metrics
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("expected :9090, got %s", cfg.Addr)
	}
	if cfg.Log.Format != "text" || cfg.Log.Level != "debug" {
		t.Errorf("log config wrong: %+v", cfg.Log)
	}
	if cfg.Log.Fields["service"] != "demo" {
		t.Errorf("static fields missing: %+v", cfg.Log.Fields)
	}
	if len(cfg.Log.Exclude) != 2 {
		t.Errorf("expected 2 exclude paths, got %v", cfg.Log.Exclude)
	}
}

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`log: {}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("expected default addr, got %s", cfg.Addr)
	}
	if cfg.Log.Format != "json" || cfg.Log.Level != "info" {
		t.Errorf("expected json/info defaults, got %+v", cfg.Log)
	}
}

func TestParseRejectsBadFormat(t *testing.T) {
	_, err := Parse([]byte("log:\n  format: xml\n"))
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestParseRejectsEmptyExcludePath(t *testing.T) {
	_, err := Parse([]byte("log:\n  exclude:\n    - \"\"\n"))
	if err == nil {
		t.Fatal("expected error for empty exclude path")
	}
}

func TestParseRejectsInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("addr: [unclosed"))
	if err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":7070\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Errorf("expected :7070, got %s", cfg.Addr)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
