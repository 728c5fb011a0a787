package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrInvalidRoot marks a missing or non-directory scan root.
var ErrInvalidRoot = errors.New("invalid root directory")

// Config is the full run configuration. JSON tags match the on-disk config
// file format accepted by --config.
type Config struct {
	Root             string   `json:"root"`
	Extensions       []string `json:"extensions,omitempty"`
	ExcludeDirs      []string `json:"exclude_dirs,omitempty"`
	ExcludePatterns  []string `json:"exclude_patterns,omitempty"`
	Frameworks       []string `json:"frameworks,omitempty"`
	MaxFiles         int      `json:"max_files,omitempty"`
	MaxFileSizeBytes int64    `json:"max_file_size_bytes,omitempty"`
	AIEnabled        bool     `json:"ai_enabled"`
	AIModel          string   `json:"ai_model,omitempty"`
	CachePath        string   `json:"cache_path,omitempty"`

	Output       string `json:"output,omitempty"`
	OutputFormat string `json:"output_format,omitempty"`
	Title        string `json:"title,omitempty"`
	APIVersion   string `json:"api_version,omitempty"`
	Description  string `json:"description,omitempty"`
	ServerURL    string `json:"server_url,omitempty"`
}

// Default returns the baseline configuration for a scan of root.
func Default(root string) Config {
	return Config{
		Root:         root,
		Output:       "openapi.json",
		OutputFormat: "json",
		Title:        "API Documentation",
		APIVersion:   "1.0.0",
		ServerURL:    "http://localhost:3000",
	}
}

// Load reads a JSON config file over the defaults.
func Load(path string, into *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// Validate checks the configuration errors that must stop a run before any
// stage executes.
func (c *Config) Validate() error {
	st, err := os.Stat(c.Root)
	if err != nil || !st.IsDir() {
		return fmt.Errorf("%w: %s", ErrInvalidRoot, c.Root)
	}
	switch c.OutputFormat {
	case "", "json", "yaml", "yml":
	default:
		return fmt.Errorf("unsupported output format %q", c.OutputFormat)
	}
	return nil
}
