package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DataDirEnv supplies paths.data_dir when the config file does not set it.
const DataDirEnv = "LANDMARKPREP_DATA_DIR"

func (c *Config) applyEnv() {
	if value := strings.TrimSpace(os.Getenv(DataDirEnv)); value != "" {
		c.Paths.DataDir = value
	}
}

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDataset()
	c.normalizeSplit()
	if err := c.normalizeStats(); err != nil {
		return err
	}
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizePaths() error {
	c.Paths.DataDir = strings.TrimSpace(c.Paths.DataDir)
	if c.Paths.DataDir == "" {
		c.Paths.DataDir = defaultDataDir
	}
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.Manifest, err = c.underDataDir(c.Paths.Manifest, defaultManifest); err != nil {
		return fmt.Errorf("paths.manifest: %w", err)
	}
	if c.Paths.LandmarksDir, err = c.underDataDir(c.Paths.LandmarksDir, defaultLandmarksDir); err != nil {
		return fmt.Errorf("paths.landmarks_dir: %w", err)
	}
	if c.Paths.SplitDir, err = c.underDataDir(c.Paths.SplitDir, defaultSplitDir); err != nil {
		return fmt.Errorf("paths.split_dir: %w", err)
	}
	return nil
}

// underDataDir resolves value against the data directory unless it is
// absolute or home-relative.
func (c *Config) underDataDir(value, fallback string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = fallback
	}
	if filepath.IsAbs(value) || strings.HasPrefix(value, "~") {
		return expandPath(value)
	}
	return filepath.Join(c.Paths.DataDir, value), nil
}

func (c *Config) normalizeDataset() {
	c.Dataset.IndexColumn = strings.TrimSpace(c.Dataset.IndexColumn)
	if c.Dataset.IndexColumn == "" {
		c.Dataset.IndexColumn = defaultIndexColumn
	}
	c.Dataset.RightHand = strings.TrimSpace(c.Dataset.RightHand)
	if c.Dataset.RightHand == "" {
		c.Dataset.RightHand = defaultRightHand
	}
	c.Dataset.LeftHand = strings.TrimSpace(c.Dataset.LeftHand)
	if c.Dataset.LeftHand == "" {
		c.Dataset.LeftHand = defaultLeftHand
	}
	ext := strings.ToLower(strings.TrimSpace(c.Dataset.Extension))
	if ext == "" {
		ext = defaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	c.Dataset.Extension = ext
}

func (c *Config) normalizeSplit() {
	if c.Split.Workers == 0 {
		c.Split.Workers = defaultWorkers
	}
	c.Split.Compression = strings.ToLower(strings.TrimSpace(c.Split.Compression))
	if c.Split.Compression == "" {
		c.Split.Compression = defaultCompression
	}
}

func (c *Config) normalizeStats() error {
	c.Stats.DBPath = strings.TrimSpace(c.Stats.DBPath)
	if c.Stats.DBPath == "" {
		return nil
	}
	var err error
	if c.Stats.DBPath, err = expandPath(c.Stats.DBPath); err != nil {
		return fmt.Errorf("stats.db_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.LogDir = strings.TrimSpace(c.Logging.LogDir)
	if c.Logging.LogDir == "" {
		return nil
	}
	var err error
	if c.Logging.LogDir, err = expandPath(c.Logging.LogDir); err != nil {
		return fmt.Errorf("logging.log_dir: %w", err)
	}
	return nil
}
