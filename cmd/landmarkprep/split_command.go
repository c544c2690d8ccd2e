package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"landmarkprep/internal/logging"
	"landmarkprep/internal/preflight"
	"landmarkprep/internal/splitter"
)

func newSplitCommand(ctx *commandContext) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Write one Parquet file per sequence id",
		Long: "Reads every landmark file in the configured landmarks directory and writes each\n" +
			"sequence to <split_dir>/<sequence_id>.parquet using a shared worker pool.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("workers") {
				cfg.Split.Workers = workers
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			if err := preflight.Err(preflight.ForSplit(cfg)); err != nil {
				return err
			}

			runCtx, logger, err := ctx.jobContext(cmd)
			if err != nil {
				return err
			}

			opts := splitter.OptionsFromConfig(cfg)
			if isTerminal(cmd.ErrOrStderr()) {
				var bar *progressbar.ProgressBar
				opts.Progress = func(done, total int, file string, _ int) {
					if bar == nil {
						bar = newSplitProgressBar(cmd.ErrOrStderr(), total)
					}
					bar.Describe(filepath.Base(file))
					_ = bar.Set(done)
				}
				defer func() {
					if bar != nil {
						_ = bar.Finish()
					}
				}()
			} else {
				sampler := logging.NewProgressSampler(10)
				opts.Progress = func(done, total int, file string, sequences int) {
					if !sampler.ShouldLog(done, total) {
						return
					}
					logger.Info("split progress",
						logging.Int("done", done),
						logging.Int("total", total),
						logging.String(logging.FieldFile, filepath.Base(file)),
						logging.Int("sequences", sequences),
					)
				}
			}

			stats, err := splitter.New(opts, logger).Run(runCtx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderSplitSummary(cfg.Paths.SplitDir, cfg.Split.Workers, stats))
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Worker pool size (overrides split.workers)")
	return cmd
}

func newSplitProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("splitting"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
	)
}

func renderSplitSummary(outDir string, workers int, stats splitter.Stats) string {
	rows := [][]string{
		{"Source files", formatCount(stats.Files)},
		{"Sequences written", formatCount(stats.Sequences)},
		{"Rows", formatCount(stats.Rows)},
		{"Bytes written", formatBytes(stats.Bytes)},
		{"Workers", formatCount(workers)},
		{"Output", outDir},
		{"Elapsed", stats.Duration.Round(time.Millisecond).String()},
	}
	return renderTable("Split summary", []string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight})
}
