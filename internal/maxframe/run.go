package maxframe

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"landmarkprep/internal/config"
	"landmarkprep/internal/logging"
	"landmarkprep/internal/manifest"
	"landmarkprep/internal/parquetio"
)

// Recorder receives results as a run progresses.
type Recorder interface {
	RecordFile(ctx context.Context, res FileResult) error
	RecordSummary(ctx context.Context, summary Summary) error
}

// RunOptions carries optional hooks for Run.
type RunOptions struct {
	Recorder Recorder
	// Progress is called after each file with its 1-based position.
	Progress func(done, total int, path string)
}

// Run checks every distinct file named by the manifest, one at a time, and
// returns the dataset summary. An empty manifest yields a zero summary.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts RunOptions) (Summary, error) {
	logger = logging.NewComponentLogger(logging.WithContext(ctx, logger), "maxframe")
	start := time.Now()

	paths, err := manifest.ReadPaths(cfg.Paths.Manifest)
	if err != nil {
		return Summary{}, err
	}
	logger.Info("manifest loaded",
		logging.String("manifest", cfg.Paths.Manifest),
		logging.Int("files", len(paths)),
	)
	if len(paths) == 0 {
		logger.Warn("manifest lists no files", logging.String("manifest", cfg.Paths.Manifest))
	}

	checker := NewChecker(
		Hands{Right: Hand(cfg.Dataset.RightHand), Left: Hand(cfg.Dataset.LeftHand)},
		parquetio.Options{IndexColumn: cfg.Dataset.IndexColumn},
	)
	acc := newAccumulator()
	for i, rel := range paths {
		if err := ctx.Err(); err != nil {
			return Summary{}, err
		}
		res, err := checker.CheckFile(ctx, cfg.SourcePath(rel))
		if err != nil {
			logger.Error("file check failed",
				logging.String(logging.FieldFile, rel),
				logging.Error(err),
			)
			return Summary{}, err
		}
		res.Path = rel
		acc.add(res)

		if opts.Recorder != nil {
			if err := opts.Recorder.RecordFile(ctx, res); err != nil {
				return Summary{}, fmt.Errorf("record %s: %w", rel, err)
			}
		}
		if opts.Progress != nil {
			opts.Progress(i+1, len(paths), rel)
		}
		logger.Debug("file checked",
			logging.String(logging.FieldFile, rel),
			logging.Int("sequences", len(res.Sequences)),
			logging.Int("max_frames", res.MaxFrames),
		)
	}

	summary := acc.finish(time.Since(start))
	if opts.Recorder != nil {
		if err := opts.Recorder.RecordSummary(ctx, summary); err != nil {
			return Summary{}, fmt.Errorf("record summary: %w", err)
		}
	}
	logger.Info("max frame search complete",
		logging.Int("files", summary.Files),
		logging.Int("sequences", summary.Sequences),
		logging.Int("max_frames", summary.MaxFrames),
		logging.String(logging.FieldSequenceID, summary.MaxSequence),
		logging.Float64("mean_frames", summary.Distribution.Mean),
		logging.Duration("elapsed", summary.Duration),
	)
	return summary, nil
}
