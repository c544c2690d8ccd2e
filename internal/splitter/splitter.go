package splitter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"landmarkprep/internal/config"
	"landmarkprep/internal/logging"
	"landmarkprep/internal/parquetio"
	"landmarkprep/internal/workpool"
)

// ErrLocked reports that another run holds the output directory lock.
var ErrLocked = errors.New("split directory is locked by another run")

// Options configures a Splitter.
type Options struct {
	InputDir  string
	OutputDir string
	Extension string
	Workers   int
	Write     parquetio.Options
	// Progress is called after each source file with its 1-based position.
	Progress func(done, total int, file string, sequences int)
}

// OptionsFromConfig maps the configuration onto splitter options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		InputDir:  cfg.Paths.LandmarksDir,
		OutputDir: cfg.Paths.SplitDir,
		Extension: cfg.Dataset.Extension,
		Workers:   cfg.Split.Workers,
		Write: parquetio.Options{
			IndexColumn: cfg.Dataset.IndexColumn,
			Compression: cfg.Split.Compression,
		},
	}
}

// Stats summarises a completed run.
type Stats struct {
	Files     int
	Sequences int
	Rows      int64
	Bytes     int64
	Duration  time.Duration
}

// Splitter splits every source file of a directory.
type Splitter struct {
	opts   Options
	logger *slog.Logger
}

// New builds a Splitter. A nil logger discards output.
func New(opts Options, logger *slog.Logger) *Splitter {
	if opts.Extension == "" {
		opts.Extension = ".parquet"
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Splitter{opts: opts, logger: logging.NewComponentLogger(logger, "splitter")}
}

// LockPath returns the lock file guarding outDir.
func LockPath(outDir string) string {
	return filepath.Clean(outDir) + ".lock"
}

// ListSources returns the regular files in dir with extension ext, sorted by name.
func ListSources(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	slices.Sort(files)
	return files, nil
}

// Run splits every source file. The first failed write aborts the run.
func (s *Splitter) Run(ctx context.Context) (Stats, error) {
	logger := logging.WithContext(ctx, s.logger)
	start := time.Now()

	if err := os.MkdirAll(s.opts.OutputDir, 0o755); err != nil {
		return Stats{}, fmt.Errorf("create split directory: %w", err)
	}
	lock := flock.New(LockPath(s.opts.OutputDir))
	ok, err := lock.TryLock()
	if err != nil {
		return Stats{}, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return Stats{}, fmt.Errorf("%w: %s", ErrLocked, s.opts.OutputDir)
	}
	defer func() { _ = lock.Unlock() }()

	files, err := ListSources(s.opts.InputDir, s.opts.Extension)
	if err != nil {
		return Stats{}, err
	}
	logger.Info("split started",
		logging.String("input", s.opts.InputDir),
		logging.String("output", s.opts.OutputDir),
		logging.Int("files", len(files)),
		logging.Int("workers", s.opts.Workers),
	)

	pool := workpool.New(s.opts.Workers)
	defer pool.Close()

	var stats Stats
	for i, path := range files {
		fileStats, err := s.splitFile(ctx, pool, path)
		if err != nil {
			return stats, err
		}
		stats.Files++
		stats.Sequences += fileStats.Sequences
		stats.Rows += fileStats.Rows
		stats.Bytes += fileStats.Bytes

		if s.opts.Progress != nil {
			s.opts.Progress(i+1, len(files), path, fileStats.Sequences)
		}
		logger.Debug("file split",
			logging.String(logging.FieldFile, filepath.Base(path)),
			logging.Int("sequences", fileStats.Sequences),
			logging.Int64("rows", fileStats.Rows),
		)
	}

	stats.Duration = time.Since(start)
	logger.Info("split complete",
		logging.Int("files", stats.Files),
		logging.Int("sequences", stats.Sequences),
		logging.Int64("bytes", stats.Bytes),
		logging.Duration("elapsed", stats.Duration),
	)
	return stats, nil
}

// splitFile writes every sequence of one source file and waits for all of
// them before returning.
func (s *Splitter) splitFile(ctx context.Context, pool *workpool.Pool, path string) (Stats, error) {
	ds, err := parquetio.ReadFile(ctx, path, s.opts.Write)
	if err != nil {
		return Stats{}, err
	}
	parts := ds.Partition()
	ds.Release()
	defer func() {
		for i := range parts {
			parts[i].Release()
		}
	}()

	var written atomic.Int64
	tasks := make([]workpool.Task, len(parts))
	for i := range parts {
		part := parts[i]
		tasks[i] = func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			n, err := SaveSequence(s.opts.OutputDir, part, s.opts.Extension, s.opts.Write)
			if err != nil {
				return err
			}
			written.Add(n)
			return nil
		}
	}
	if err := pool.RunBatch(ctx, tasks); err != nil {
		return Stats{}, fmt.Errorf("split %s: %w", filepath.Base(path), err)
	}

	return Stats{
		Sequences: len(parts),
		Rows:      int64(ds.NumRows()),
		Bytes:     written.Load(),
	}, nil
}
