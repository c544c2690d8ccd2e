package maxframe_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"landmarkprep/internal/frame"
	"landmarkprep/internal/maxframe"
	"landmarkprep/internal/parquetio"
	"landmarkprep/internal/testsupport"
)

func newChecker() *maxframe.Checker {
	return maxframe.NewChecker(maxframe.Hands{}, parquetio.Options{})
}

func TestCheckMaxFrameSingleSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.parquet")
	testsupport.WriteLandmarks(t, path, testsupport.Sequence{ID: "42", Frames: 9, Right: 7})

	got, err := newChecker().CheckMaxFrame(context.Background(), path)
	if err != nil {
		t.Fatalf("CheckMaxFrame: %v", err)
	}
	if got != 7 {
		t.Fatalf("max frames = %d, want 7", got)
	}
}

func TestCheckMaxFrameEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	testsupport.WriteLandmarks(t, path)

	got, err := newChecker().CheckMaxFrame(context.Background(), path)
	if err != nil {
		t.Fatalf("CheckMaxFrame: %v", err)
	}
	if got != 0 {
		t.Fatalf("max frames = %d, want 0", got)
	}
}

func TestCheckFileReportsEverySequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many.parquet")
	testsupport.WriteLandmarks(t, path,
		testsupport.Sequence{ID: "10", Frames: 5, Right: 2, Left: 4},
		testsupport.Sequence{ID: "11", Frames: 1, Right: 1},
		testsupport.Sequence{ID: "12", Frames: 6, Right: 3, Left: 3, Partial: true},
	)

	res, err := newChecker().CheckFile(context.Background(), path)
	if err != nil {
		t.Fatalf("CheckFile: %v", err)
	}
	want := []maxframe.SequenceResult{
		{ID: "10", Frames: 5, Hand: maxframe.LeftHand, HandCells: 8, ValidFrames: 4},
		{ID: "11", Frames: 1, Hand: maxframe.RightHand, HandCells: 2, ValidFrames: 1},
		{ID: "12", Frames: 6, Hand: maxframe.RightHand, HandCells: 7, ValidFrames: 3},
	}
	if diff := cmp.Diff(want, res.Sequences); diff != "" {
		t.Fatalf("sequences mismatch (-want +got):\n%s", diff)
	}
	if res.MaxFrames != 4 {
		t.Fatalf("max frames = %d, want 4", res.MaxFrames)
	}
}

func TestCheckFileInterleavedRows(t *testing.T) {
	left := testsupport.LandmarkTable(t, testsupport.Sequence{ID: "a", Frames: 2, Left: 2})
	right := testsupport.LandmarkTable(t, testsupport.Sequence{ID: "b", Frames: 3, Right: 3})
	tail := testsupport.LandmarkTable(t, testsupport.Sequence{ID: "a", Frames: 1, Left: 1})
	tbl, err := frame.Concat(left, right, tail)
	if err != nil {
		t.Fatalf("Concat: %v", err)
	}
	path := filepath.Join(t.TempDir(), "interleaved.parquet")
	if _, err := parquetio.WriteFrame(path, tbl, parquetio.Options{}); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	res, err := newChecker().CheckFile(context.Background(), path)
	if err != nil {
		t.Fatalf("CheckFile: %v", err)
	}
	if len(res.Sequences) != 2 {
		t.Fatalf("sequences = %d, want 2", len(res.Sequences))
	}
	if got := res.Sequences[0]; got.ID != "a" || got.Frames != 3 || got.ValidFrames != 3 {
		t.Fatalf("unexpected result for a: %+v", got)
	}
	if res.MaxFrames != 3 {
		t.Fatalf("max frames = %d, want 3", res.MaxFrames)
	}
}

func TestCheckFileMissingHandColumnsFails(t *testing.T) {
	tbl, err := frame.New([]string{"1", "1"}, frame.Column{Name: "x_pose_0", Values: []float64{1, 2}})
	if err != nil {
		t.Fatalf("frame.New: %v", err)
	}
	path := filepath.Join(t.TempDir(), "pose.parquet")
	if _, err := parquetio.WriteFrame(path, tbl, parquetio.Options{}); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	_, err = newChecker().CheckFile(context.Background(), path)
	if !errors.Is(err, maxframe.ErrNoHandColumns) {
		t.Fatalf("expected ErrNoHandColumns, got %v", err)
	}
}

func TestCheckFileMissingFile(t *testing.T) {
	if _, err := newChecker().CheckFile(context.Background(), filepath.Join(t.TempDir(), "absent.parquet")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
