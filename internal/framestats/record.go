package framestats

import (
	"context"
	"fmt"
	"time"

	"landmarkprep/internal/maxframe"
)

// RecordFile stores the per-file maximum and every sequence of res.
func (s *Store) RecordFile(ctx context.Context, res maxframe.FileResult) error {
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO files (run_id, path, sequences, max_frames) VALUES (?, ?, ?, ?)`,
			s.runID, res.Path, len(res.Sequences), res.MaxFrames,
		); err != nil {
			return fmt.Errorf("insert file: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx,
			`INSERT OR REPLACE INTO sequences (run_id, path, sequence_id, frames, hand, hand_cells, valid_frames)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare sequence insert: %w", err)
		}
		defer stmt.Close()
		for _, seq := range res.Sequences {
			if _, err := stmt.ExecContext(ctx,
				s.runID, res.Path, seq.ID, seq.Frames, string(seq.Hand), seq.HandCells, seq.ValidFrames,
			); err != nil {
				return fmt.Errorf("insert sequence %s: %w", seq.ID, err)
			}
		}
		return tx.Commit()
	})
}

// RecordSummary completes the run row with the dataset-wide results.
func (s *Store) RecordSummary(ctx context.Context, summary maxframe.Summary) error {
	d := summary.Distribution
	return s.exec(ctx,
		`UPDATE runs SET finished_at = ?, files = ?, sequences = ?, max_frames = ?, max_path = ?, max_sequence = ?,
		 mean_frames = ?, p50_frames = ?, p90_frames = ?, p95_frames = ?, p99_frames = ?
		 WHERE run_id = ?`,
		formatTime(time.Now()), summary.Files, summary.Sequences, summary.MaxFrames,
		summary.MaxPath, summary.MaxSequence,
		d.Mean, d.P50, d.P90, d.P95, d.P99,
		s.runID,
	)
}

var _ maxframe.Recorder = (*Store)(nil)
