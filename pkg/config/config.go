// Package config handles loading and managing vitalscope configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for vitalscope. It is the local
// settings record the UI persists separately from analysis state.
type Config struct {
	Audit   AuditConfig   `yaml:"audit"`
	Monitor MonitorConfig `yaml:"monitor"`
	Storage StorageConfig `yaml:"storage"`
}

// AuditConfig controls the external audit service.
type AuditConfig struct {
	Endpoint string `yaml:"endpoint"` // empty means the public default
	APIKey   string `yaml:"api_key"`
	Strategy string `yaml:"strategy"` // mobile or desktop
}

// MonitorConfig controls the recurring re-analysis loop.
type MonitorConfig struct {
	URL             string `yaml:"url"`              // empty disables monitoring
	IntervalSeconds int    `yaml:"interval_seconds"` // tick interval
	DiscardStale    bool   `yaml:"discard_stale"`    // drop completions superseded by a newer one
}

// StorageConfig selects the snapshot backend.
type StorageConfig struct {
	Backend string `yaml:"backend"` // file, s3, or gcs

	// file backend; empty means DataDir()/state.json.
	Path string `yaml:"path"`

	// s3 backend
	S3Bucket    string `yaml:"s3_bucket"`
	S3Key       string `yaml:"s3_key"`
	S3Region    string `yaml:"s3_region"`
	S3Endpoint  string `yaml:"s3_endpoint"`
	S3AccessKey string `yaml:"s3_access_key"`
	S3SecretKey string `yaml:"s3_secret_key"`

	// gcs backend
	GCSBucket string `yaml:"gcs_bucket"`
	GCSKey    string `yaml:"gcs_key"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Audit: AuditConfig{
			Strategy: "mobile",
		},
		Monitor: MonitorConfig{
			IntervalSeconds: 300,
		},
		Storage: StorageConfig{
			Backend: "file",
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// FindConfigFile looks for .vitalscope/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".vitalscope", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// DataDir returns the directory holding durable vitalscope data.
// Uses ~/.cache/vitalscope/ to avoid polluting the working directory.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to temp dir if HOME isn't available
		home = os.TempDir()
	}
	return filepath.Join(home, ".cache", "vitalscope")
}

// SnapshotPath resolves the file-backend snapshot path for the given
// storage config.
func (s StorageConfig) SnapshotPath() string {
	if s.Path != "" {
		return s.Path
	}
	return filepath.Join(DataDir(), "state.json")
}
