package testsupport

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"landmarkprep/internal/frame"
	"landmarkprep/internal/parquetio"
)

// Landmark columns written by the fixtures. Each hand has two coordinates so
// partially populated frames can be expressed.
var landmarkColumns = []string{
	"frame",
	"x_face_0",
	"x_right_hand_0", "y_right_hand_0",
	"x_left_hand_0", "y_left_hand_0",
}

// Sequence describes one fixture sequence. The first Right frames carry a
// complete right hand and the first Left frames a complete left hand. When
// Partial is set, the frame after each complete run has one coordinate of that
// hand filled, so it counts towards dominance but not towards valid frames.
type Sequence struct {
	ID      string
	Frames  int
	Right   int
	Left    int
	Partial bool
}

// LandmarkTable builds a table holding seqs in order.
func LandmarkTable(t testing.TB, seqs ...Sequence) *frame.Table {
	t.Helper()

	nan := math.NaN()
	var index []string
	cols := make([]frame.Column, len(landmarkColumns))
	for i, name := range landmarkColumns {
		cols[i].Name = name
	}
	push := func(values ...float64) {
		for i, v := range values {
			cols[i].Values = append(cols[i].Values, v)
		}
	}

	for _, seq := range seqs {
		for f := 0; f < seq.Frames; f++ {
			index = append(index, seq.ID)
			rx, ry := handValues(f, seq.Right, seq.Partial, nan)
			lx, ly := handValues(f, seq.Left, seq.Partial, nan)
			push(float64(f), 0.5, rx, ry, lx, ly)
		}
	}

	tbl, err := frame.New(index, cols...)
	if err != nil {
		t.Fatalf("frame.New: %v", err)
	}
	return tbl
}

func handValues(f, complete int, partial bool, nan float64) (float64, float64) {
	switch {
	case f < complete:
		return float64(f) / 10, float64(f) / 20
	case partial && f == complete:
		return float64(f) / 10, nan
	default:
		return nan, nan
	}
}

// WriteLandmarks writes seqs to path as Parquet and returns the table written.
func WriteLandmarks(t testing.TB, path string, seqs ...Sequence) *frame.Table {
	t.Helper()

	tbl := LandmarkTable(t, seqs...)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if _, err := parquetio.WriteFrame(path, tbl, parquetio.Options{}); err != nil {
		t.Fatalf("write landmarks %s: %v", path, err)
	}
	return tbl
}

// WriteManifest writes a label manifest listing paths, one row per entry, with
// an extra label column so readers must locate the path column by name.
func WriteManifest(t testing.TB, path string, paths ...string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	rows := [][]string{{"path", "participant_id", "sequence_id", "sign"}}
	for i, p := range paths {
		rows = append(rows, []string{p, "16069", strconv.Itoa(1000 + i), "hello"})
	}
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write manifest %s: %v", path, err)
	}
}
