package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Provider.Model != "gemini-2.0-flash" {
		t.Errorf("Provider.Model = %q, want gemini-2.0-flash", cfg.Provider.Model)
	}
	if cfg.Provider.MaxRetries != 3 {
		t.Errorf("Provider.MaxRetries = %d, want 3", cfg.Provider.MaxRetries)
	}
	if !cfg.Cache.Enabled {
		t.Error("Cache.Enabled should default to true")
	}
	if cfg.Output.Format != "text" {
		t.Errorf("Output.Format = %q, want text", cfg.Output.Format)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "codalyzer.toml")
	content := `
[server]
host = "127.0.0.1"
port = 9090

[provider]
model = "gemini-1.5-pro"
temperature = 0.5

[cache]
enabled = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want 127.0.0.1", cfg.Server.Host)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Provider.Model != "gemini-1.5-pro" {
		t.Errorf("Provider.Model = %q, want gemini-1.5-pro", cfg.Provider.Model)
	}
	if cfg.Provider.Temperature != 0.5 {
		t.Errorf("Provider.Temperature = %v, want 0.5", cfg.Provider.Temperature)
	}
	if cfg.Cache.Enabled {
		t.Error("Cache.Enabled should be false from file")
	}

	// Unset fields keep defaults.
	if cfg.Provider.MaxTokens != 4096 {
		t.Errorf("Provider.MaxTokens = %d, want default 4096", cfg.Provider.MaxTokens)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "codalyzer.yaml")
	content := `
server:
  port: 3000
output:
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %q, want json", cfg.Output.Format)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load() on missing file should return an error")
	}
}

func TestAPIKeyFromEnv(t *testing.T) {
	t.Setenv("CODALYZER_API_KEY", "key-a")
	t.Setenv("GEMINI_API_KEY", "key-b")

	cfg := DefaultConfig()
	cfg.applyEnv()
	if cfg.Provider.APIKey != "key-a" {
		t.Errorf("APIKey = %q, CODALYZER_API_KEY should take precedence", cfg.Provider.APIKey)
	}

	t.Setenv("CODALYZER_API_KEY", "")
	cfg = DefaultConfig()
	cfg.applyEnv()
	if cfg.Provider.APIKey != "key-b" {
		t.Errorf("APIKey = %q, want GEMINI_API_KEY fallback", cfg.Provider.APIKey)
	}
}

func TestAddr(t *testing.T) {
	s := ServerConfig{Host: "0.0.0.0", Port: 8000}
	if got := s.Addr(); got != "0.0.0.0:8000" {
		t.Errorf("Addr() = %q, want 0.0.0.0:8000", got)
	}
}
