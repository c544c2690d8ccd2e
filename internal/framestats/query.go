package framestats

import (
	"context"
	"database/sql"
	"fmt"
)

// RunRecord is one stored run.
type RunRecord struct {
	RunID       string
	StartedAt   string
	FinishedAt  string
	Files       int
	Sequences   int
	MaxFrames   int
	MaxPath     string
	MaxSequence string
}

// SequenceRecord is one stored sequence.
type SequenceRecord struct {
	Path        string
	SequenceID  string
	Frames      int
	Hand        string
	HandCells   int
	ValidFrames int
}

// Run returns the stored row for runID.
func (s *Store) Run(ctx context.Context, runID string) (RunRecord, error) {
	var (
		rec                            RunRecord
		finished, maxPath, maxSequence sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT run_id, started_at, finished_at, files, sequences, max_frames, max_path, max_sequence
		 FROM runs WHERE run_id = ?`, runID,
	).Scan(&rec.RunID, &rec.StartedAt, &finished, &rec.Files, &rec.Sequences, &rec.MaxFrames, &maxPath, &maxSequence)
	if err != nil {
		return RunRecord{}, fmt.Errorf("load run %s: %w", runID, err)
	}
	rec.FinishedAt = finished.String
	rec.MaxPath = maxPath.String
	rec.MaxSequence = maxSequence.String
	return rec, nil
}

// TopSequences returns up to limit sequences of runID ordered by valid frame
// count, longest first.
func (s *Store) TopSequences(ctx context.Context, runID string, limit int) ([]SequenceRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, sequence_id, frames, hand, hand_cells, valid_frames
		 FROM sequences WHERE run_id = ?
		 ORDER BY valid_frames DESC, path, sequence_id
		 LIMIT ?`, runID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query sequences: %w", err)
	}
	defer rows.Close()

	var out []SequenceRecord
	for rows.Next() {
		var rec SequenceRecord
		if err := rows.Scan(&rec.Path, &rec.SequenceID, &rec.Frames, &rec.Hand, &rec.HandCells, &rec.ValidFrames); err != nil {
			return nil, fmt.Errorf("scan sequence: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
