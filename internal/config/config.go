package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths describes the dataset layout.
type Paths struct {
	DataDir      string `toml:"data_dir"`
	Manifest     string `toml:"manifest"`
	LandmarksDir string `toml:"landmarks_dir"`
	SplitDir     string `toml:"split_dir"`
}

// Dataset describes how landmark tables are interpreted.
type Dataset struct {
	IndexColumn string `toml:"index_column"`
	RightHand   string `toml:"right_hand"`
	LeftHand    string `toml:"left_hand"`
	Extension   string `toml:"extension"`
}

// Split contains settings for the sequence splitter.
type Split struct {
	Workers     int    `toml:"workers"`
	Compression string `toml:"compression"`
}

// Stats contains settings for the optional per-sequence statistics export.
type Stats struct {
	DBPath string `toml:"db_path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	LogDir string `toml:"log_dir"`
}

// Config encapsulates all configuration values for landmarkprep.
//
// Configuration sections:
//   - Paths: data directory, manifest, source and split directories
//   - Dataset: sequence id column and hand column keywords
//   - Split: worker pool size and output compression
//   - Stats: SQLite export of max-frame statistics
//   - Logging: log format, level, and optional log directory
type Config struct {
	Paths   Paths   `toml:"paths"`
	Dataset Dataset `toml:"dataset"`
	Split   Split   `toml:"split"`
	Stats   Stats   `toml:"stats"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/landmarkprep/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized. The string result is the resolved path and the
// bool reports whether that file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()
	cfg.applyEnv()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("landmarkprep.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// SourcePath resolves a manifest entry against the data directory.
func (c *Config) SourcePath(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.Paths.DataDir, filepath.FromSlash(rel))
}

// EnsureSplitDir creates the split output directory.
func (c *Config) EnsureSplitDir() error {
	if err := os.MkdirAll(c.Paths.SplitDir, 0o755); err != nil {
		return fmt.Errorf("create split directory %q: %w", c.Paths.SplitDir, err)
	}
	return nil
}

// EnsureDirectories creates directories the configured outputs write into.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Logging.LogDir) != "" {
		if err := os.MkdirAll(c.Logging.LogDir, 0o755); err != nil {
			return fmt.Errorf("create log directory %q: %w", c.Logging.LogDir, err)
		}
	}
	if strings.TrimSpace(c.Stats.DBPath) != "" {
		dir := filepath.Dir(c.Stats.DBPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create stats directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// SampleConfig returns the embedded sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
