package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.NetBox.PageSize != 500 {
		t.Errorf("page size = %d, want 500", cfg.NetBox.PageSize)
	}
	if cfg.NetBox.Parallelism != 4 {
		t.Errorf("parallelism = %d, want 4", cfg.NetBox.Parallelism)
	}
	if !cfg.Offline() {
		t.Error("default config should be offline (no API URL)")
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  addr: ":9090"
netbox:
  url: "https://netbox.example.com"
  token: "secret"
  timeout: 1m
snapshot:
  path: "./snapshot.yaml"
  watch: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, loadedPath, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if loadedPath != path {
		t.Errorf("path = %q, want %q", loadedPath, path)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.NetBox.URL != "https://netbox.example.com" {
		t.Errorf("url = %q", cfg.NetBox.URL)
	}
	if cfg.NetBox.Timeout.Duration() != time.Minute {
		t.Errorf("timeout = %v, want 1m", cfg.NetBox.Timeout.Duration())
	}
	if cfg.Offline() {
		t.Error("config with API URL should not be offline")
	}
	if !cfg.Snapshot.Watch {
		t.Error("snapshot watch not parsed")
	}
	// Defaults fill the gaps.
	if cfg.NetBox.PageSize != 500 {
		t.Errorf("page size = %d, want default 500", cfg.NetBox.PageSize)
	}
}

func TestLoadFromPathBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadFromPath(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestFindConfigPathEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfigPath, path)
	if got := FindConfigPath(); got != path {
		t.Errorf("FindConfigPath = %q, want %q", got, path)
	}
}
