package config

import (
	"errors"
	"fmt"
	"strings"
)

var compressionCodecs = map[string]struct{}{
	"snappy": {},
	"zstd":   {},
	"gzip":   {},
	"none":   {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDataset(); err != nil {
		return err
	}
	if err := c.validateSplit(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDataset() error {
	if c.Dataset.RightHand == c.Dataset.LeftHand {
		return fmt.Errorf("dataset.right_hand and dataset.left_hand must differ (both %q)", c.Dataset.RightHand)
	}
	if strings.Contains(c.Dataset.RightHand, c.Dataset.LeftHand) || strings.Contains(c.Dataset.LeftHand, c.Dataset.RightHand) {
		return errors.New("dataset.right_hand and dataset.left_hand must not contain each other")
	}
	return nil
}

func (c *Config) validateSplit() error {
	if c.Split.Workers < 1 || c.Split.Workers > maxWorkers {
		return fmt.Errorf("split.workers must be between 1 and %d", maxWorkers)
	}
	if _, ok := compressionCodecs[c.Split.Compression]; !ok {
		return fmt.Errorf("split.compression: unsupported value %q", c.Split.Compression)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
