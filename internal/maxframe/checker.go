package maxframe

import (
	"context"
	"fmt"

	"landmarkprep/internal/parquetio"
)

// SequenceResult describes one sequence of a checked file.
type SequenceResult struct {
	ID          string
	Frames      int
	Hand        Hand
	HandCells   int
	ValidFrames int
}

// FileResult is the outcome of checking one file.
type FileResult struct {
	Path      string
	MaxFrames int
	Sequences []SequenceResult
}

// Checker evaluates landmark files.
type Checker struct {
	hands Hands
	read  parquetio.Options
}

// NewChecker builds a Checker. Empty hand keywords fall back to DefaultHands.
func NewChecker(hands Hands, read parquetio.Options) *Checker {
	if hands.Right == "" {
		hands.Right = DefaultHands.Right
	}
	if hands.Left == "" {
		hands.Left = DefaultHands.Left
	}
	return &Checker{hands: hands, read: read}
}

// CheckMaxFrame returns the largest number of fully valid frames of any
// sequence in the file at path. A file without rows yields 0.
func (c *Checker) CheckMaxFrame(ctx context.Context, path string) (int, error) {
	res, err := c.CheckFile(ctx, path)
	if err != nil {
		return 0, err
	}
	return res.MaxFrames, nil
}

// CheckFile loads the file at path and evaluates every sequence in order of
// first appearance.
func (c *Checker) CheckFile(ctx context.Context, path string) (FileResult, error) {
	ds, err := parquetio.ReadFile(ctx, path, c.read)
	if err != nil {
		return FileResult{}, err
	}
	table, err := ds.Frame()
	ds.Release()
	if err != nil {
		return FileResult{}, err
	}

	res := FileResult{Path: path}
	groups := table.Groups()
	for _, id := range table.UniqueIndex() {
		if err := ctx.Err(); err != nil {
			return FileResult{}, err
		}
		seq := table.Take(groups[id])
		hand, cells := c.hands.Dominant(seq)
		valid, err := CountValidFrames(seq, hand)
		if err != nil {
			return FileResult{}, fmt.Errorf("%s: sequence %s: %w", path, id, err)
		}
		res.Sequences = append(res.Sequences, SequenceResult{
			ID:          id,
			Frames:      seq.NumRows(),
			Hand:        hand,
			HandCells:   cells,
			ValidFrames: valid,
		})
		res.MaxFrames = max(res.MaxFrames, valid)
	}
	return res, nil
}
