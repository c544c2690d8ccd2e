package framestats_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"landmarkprep/internal/framestats"
	"landmarkprep/internal/maxframe"
	"landmarkprep/internal/testsupport"
)

func TestRecordFileAndSummary(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStatsDB())
	store := testsupport.MustOpenStats(t, cfg, "run-1")
	ctx := context.Background()
	if store.Path() != cfg.Stats.DBPath || store.RunID() != "run-1" {
		t.Fatalf("store path=%q run=%q, want %q run-1", store.Path(), store.RunID(), cfg.Stats.DBPath)
	}

	res := maxframe.FileResult{
		Path:      "train_landmark_files/1/a.parquet",
		MaxFrames: 7,
		Sequences: []maxframe.SequenceResult{
			{ID: "10", Frames: 9, Hand: maxframe.RightHand, HandCells: 14, ValidFrames: 7},
			{ID: "11", Frames: 3, Hand: maxframe.LeftHand, HandCells: 4, ValidFrames: 2},
		},
	}
	if err := store.RecordFile(ctx, res); err != nil {
		t.Fatalf("RecordFile: %v", err)
	}
	if err := store.RecordFile(ctx, res); err != nil {
		t.Fatalf("RecordFile replay: %v", err)
	}
	if err := store.RecordSummary(ctx, maxframe.Summary{
		Files: 1, Sequences: 2, MaxFrames: 7, MaxPath: res.Path, MaxSequence: "10",
	}); err != nil {
		t.Fatalf("RecordSummary: %v", err)
	}

	run, err := store.Run(ctx, "run-1")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if run.MaxFrames != 7 || run.MaxSequence != "10" || run.FinishedAt == "" {
		t.Fatalf("unexpected run record: %+v", run)
	}

	top, err := store.TopSequences(ctx, "run-1", 1)
	if err != nil {
		t.Fatalf("TopSequences: %v", err)
	}
	if len(top) != 1 || top[0].SequenceID != "10" || top[0].Hand != "right_hand" {
		t.Fatalf("unexpected top sequences: %+v", top)
	}
	all, err := store.TopSequences(ctx, "run-1", 0)
	if err != nil {
		t.Fatalf("TopSequences: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 sequences after replay, got %d", len(all))
	}
}

func TestOpenKeepsEarlierRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "frames.db")
	ctx := context.Background()

	first, err := framestats.Open(ctx, path, "run-a")
	if err != nil {
		t.Fatalf("Open first: %v", err)
	}
	_ = first.Close()

	second, err := framestats.Open(ctx, path, "run-b")
	if err != nil {
		t.Fatalf("Open second: %v", err)
	}
	defer second.Close()
	if _, err := second.Run(ctx, "run-a"); err != nil {
		t.Fatalf("expected earlier run to remain: %v", err)
	}

	if _, err := framestats.Open(ctx, path, "run-b"); err == nil {
		t.Fatal("expected duplicate run id to fail")
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("CREATE TABLE schema_version (version INTEGER NOT NULL); INSERT INTO schema_version VALUES (99);"); err != nil {
		t.Fatalf("seed schema: %v", err)
	}
	_ = db.Close()

	_, err = framestats.Open(context.Background(), path, "run-x")
	if !errors.Is(err, framestats.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestOpenRejectsEmptyRunID(t *testing.T) {
	if _, err := framestats.Open(context.Background(), filepath.Join(t.TempDir(), "f.db"), " "); err == nil {
		t.Fatal("expected error for empty run id")
	}
}

func TestRunRecordsIntoStore(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStatsDB())
	testsupport.WriteLandmarks(t, cfg.SourcePath("a.parquet"),
		testsupport.Sequence{ID: "1", Frames: 5, Right: 5},
		testsupport.Sequence{ID: "2", Frames: 2, Left: 2},
	)
	testsupport.WriteManifest(t, cfg.Paths.Manifest, "a.parquet")
	store := testsupport.MustOpenStats(t, cfg, "run-int")

	summary, err := maxframe.Run(context.Background(), cfg, nil, maxframe.RunOptions{Recorder: store})
	if err != nil {
		t.Fatalf("maxframe.Run: %v", err)
	}
	run, err := store.Run(context.Background(), "run-int")
	if err != nil {
		t.Fatalf("store.Run: %v", err)
	}
	if run.MaxFrames != summary.MaxFrames || run.Sequences != 2 {
		t.Fatalf("stored run %+v does not match summary %+v", run, summary)
	}
}
