package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"landmarkprep/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose dataset layout lives in a unique temp
// directory. The landmarks and split directories are created.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	dataDir := filepath.Join(base, "data")
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = dataDir
	cfgVal.Paths.Manifest = filepath.Join(dataDir, "train.csv")
	cfgVal.Paths.LandmarksDir = filepath.Join(dataDir, "train_landmarks")
	cfgVal.Paths.SplitDir = filepath.Join(dataDir, "splited_data")
	cfgVal.Split.Workers = 4

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}

	for _, dir := range []string{builder.cfg.Paths.LandmarksDir, builder.cfg.Paths.SplitDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	return builder.cfg
}

// WithWorkers overrides the split worker count.
func WithWorkers(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Split.Workers = n
	}
}

// WithCompression overrides the split output codec.
func WithCompression(codec string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Split.Compression = codec
	}
}

// WithStatsDB enables the SQLite export inside the temp directory.
func WithStatsDB() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Stats.DBPath = filepath.Join(b.baseDir, "stats", "frames.db")
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
