// Package config loads codalyzer configuration from TOML, YAML, or JSON
// files with sane defaults and environment overrides for secrets.
package config

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/codalyzer/codalyzer/pkg/models"
)

// Config holds all configuration options for codalyzer.
type Config struct {
	// Server settings for the HTTP API
	Server ServerConfig `koanf:"server"`

	// Provider settings for the LLM backend
	Provider ProviderConfig `koanf:"provider"`

	// Cache settings for analysis results
	Cache CacheConfig `koanf:"cache"`

	// Output settings for CLI commands
	Output OutputConfig `koanf:"output"`

	// Scan settings for directory traversal in CLI commands
	Scan ScanConfig `koanf:"scan"`
}

// ServerConfig controls the HTTP API server.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	// Rate limiting for /api/analyze, per remote address
	RateLimit float64 `koanf:"rate_limit"` // requests per second
	RateBurst int     `koanf:"rate_burst"`
}

// ProviderConfig controls the LLM provider client.
type ProviderConfig struct {
	APIKey         string  `koanf:"api_key"`
	Model          string  `koanf:"model"`
	BaseURL        string  `koanf:"base_url"`
	Temperature    float64 `koanf:"temperature"`
	MaxTokens      int     `koanf:"max_tokens"`
	TimeoutSeconds int     `koanf:"timeout"`
	MaxRetries     int     `koanf:"max_retries"`
}

// CacheConfig controls caching of analysis results.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
	TTL     int    `koanf:"ttl"` // TTL in hours
}

// ScanConfig controls which files directory scans pick up.
type ScanConfig struct {
	// Exclude patterns use gitignore syntax
	Exclude []string `koanf:"exclude"`

	// Gitignore enables honoring .gitignore files found in the tree
	Gitignore bool `koanf:"gitignore"`

	// MaxFileSize in bytes; 0 disables the limit
	MaxFileSize int64 `koanf:"max_file_size"`
}

// OutputConfig controls CLI output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      8000,
			RateLimit: 1,
			RateBurst: 5,
		},
		Provider: ProviderConfig{
			Model:          "gemini-2.0-flash",
			BaseURL:        "https://generativelanguage.googleapis.com/v1beta",
			Temperature:    0.2,
			MaxTokens:      4096,
			TimeoutSeconds: 60,
			MaxRetries:     3,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".codalyzer/cache",
			TTL:     24,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
		Scan: ScanConfig{
			Exclude:     []string{"node_modules/", "vendor/", ".git/"},
			Gitignore:   true,
			MaxFileSize: int64(models.MaxCodeLength),
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	// Determine parser based on extension
	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns
// defaults. The API key always falls back to the environment so it never
// has to live in a config file.
func LoadOrDefault() *Config {
	configNames := []string{
		"codalyzer.toml",
		"codalyzer.yaml",
		"codalyzer.yml",
		"codalyzer.json",
		".codalyzer.toml",
		".codalyzer.yaml",
		".codalyzer.yml",
		".codalyzer.json",
	}

	searchDirs := []string{".", ".codalyzer"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := Load(path)
				if err == nil {
					return cfg
				}
			}
		}
	}

	cfg := DefaultConfig()
	cfg.applyEnv()
	return cfg
}

// applyEnv overrides secrets from the environment. CODALYZER_API_KEY takes
// precedence over GEMINI_API_KEY.
func (c *Config) applyEnv() {
	if key := os.Getenv("CODALYZER_API_KEY"); key != "" {
		c.Provider.APIKey = key
	} else if key := os.Getenv("GEMINI_API_KEY"); key != "" && c.Provider.APIKey == "" {
		c.Provider.APIKey = key
	}
}

// Addr returns the host:port address for the HTTP server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
