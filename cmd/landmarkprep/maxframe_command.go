package main

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"landmarkprep/internal/config"
	"landmarkprep/internal/framestats"
	"landmarkprep/internal/logging"
	"landmarkprep/internal/maxframe"
	"landmarkprep/internal/preflight"
)

func newMaxFrameCommand(ctx *commandContext) *cobra.Command {
	var statsDB string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "max-frame",
		Short: "Find the largest number of fully valid frames across the dataset",
		Long: "Reads the label manifest, checks every distinct landmark file it names, and prints\n" +
			"the largest number of frames in which every dominant-hand landmark is present.\n" +
			"The final line of output is that number.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(statsDB) != "" {
				expanded, err := config.ExpandPath(statsDB)
				if err != nil {
					return fmt.Errorf("resolve stats db path: %w", err)
				}
				cfg.Stats.DBPath = expanded
			}
			if err := preflight.Err(preflight.ForMaxFrame(cfg)); err != nil {
				return err
			}

			runCtx, logger, err := ctx.jobContext(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			opts := maxframe.RunOptions{}
			if !quiet {
				opts.Progress = func(done, total int, _ string) {
					fmt.Fprintf(out, "%d/%d\n", done, total)
				}
			}
			var store *framestats.Store
			if cfg.Stats.DBPath != "" {
				runID, _ := logging.RunIDFromContext(runCtx)
				store, err = framestats.Open(runCtx, cfg.Stats.DBPath, runID)
				if err != nil {
					return err
				}
				defer store.Close()
				opts.Recorder = store
			}

			summary, err := maxframe.Run(runCtx, cfg, logger, opts)
			if err != nil {
				return err
			}
			if !quiet {
				fmt.Fprintln(out, renderMaxFrameSummary(summary))
			}
			if store != nil {
				logger.Info("statistics exported", logging.String("db", store.Path()))
			}
			fmt.Fprintln(out, summary.MaxFrames)
			return nil
		},
	}

	cmd.Flags().StringVar(&statsDB, "stats-db", "", "Export per-sequence results into this SQLite database")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print only the final maximum")
	return cmd
}

func renderMaxFrameSummary(s maxframe.Summary) string {
	var b strings.Builder
	d := s.Distribution
	rows := [][]string{
		{"Files", formatCount(s.Files)},
		{"Sequences", formatCount(s.Sequences)},
		{"Right-hand dominant", formatCount(s.Hands[maxframe.RightHand])},
		{"Left-hand dominant", formatCount(s.Hands[maxframe.LeftHand])},
		{"Mean valid frames", formatFloat(d.Mean)},
		{"p50 / p90", formatFloat(d.P50) + " / " + formatFloat(d.P90)},
		{"p95 / p99", formatFloat(d.P95) + " / " + formatFloat(d.P99)},
		{"Longest sequence", longestLabel(s)},
		{"Elapsed", s.Duration.Round(time.Millisecond).String()},
	}
	b.WriteString(renderTable("Max frame summary", []string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
	writeTopFiles(&b, s.PerFile)
	return b.String()
}

func longestLabel(s maxframe.Summary) string {
	if s.MaxPath == "" {
		return "-"
	}
	return fmt.Sprintf("%s in %s", s.MaxSequence, s.MaxPath)
}

const topFileRows = 5

// writeTopFiles appends the files holding the longest sequences.
func writeTopFiles(w io.StringWriter, files []maxframe.FileMax) {
	if len(files) == 0 {
		return
	}
	sorted := slices.Clone(files)
	slices.SortStableFunc(sorted, func(a, b maxframe.FileMax) int {
		return cmp.Compare(b.MaxFrames, a.MaxFrames)
	})
	if len(sorted) > topFileRows {
		sorted = sorted[:topFileRows]
	}
	rows := make([][]string, 0, len(sorted))
	for _, f := range sorted {
		rows = append(rows, []string{f.Path, formatCount(f.Sequences), formatCount(f.MaxFrames)})
	}
	_, _ = w.WriteString("\n")
	_, _ = w.WriteString(renderTable("", []string{"File", "Sequences", "Max frames"}, rows,
		[]columnAlignment{alignLeft, alignRight, alignRight}))
}
