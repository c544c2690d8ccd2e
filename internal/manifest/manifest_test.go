package manifest_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"landmarkprep/internal/manifest"
)

func TestParseDeduplicatesInOrder(t *testing.T) {
	input := strings.Join([]string{
		"path,participant_id,sequence_id,sign",
		"train_landmark_files/26734/1000035562.parquet,26734,1000035562,blow",
		"train_landmark_files/28656/1000106739.parquet,28656,1000106739,wait",
		"train_landmark_files/26734/1000035562.parquet,26734,1000035562,blow",
		"train_landmark_files/16069/100015657.parquet,16069,100015657,cloud",
	}, "\n")

	got, err := manifest.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{
		"train_landmark_files/26734/1000035562.parquet",
		"train_landmark_files/28656/1000106739.parquet",
		"train_landmark_files/16069/100015657.parquet",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePathColumnAnywhere(t *testing.T) {
	got, err := manifest.Parse(strings.NewReader("sign,path\nblow,a.parquet\nwait,b.parquet\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff([]string{"a.parquet", "b.parquet"}, got); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMissingPathColumn(t *testing.T) {
	_, err := manifest.Parse(strings.NewReader("file,sign\na.parquet,blow\n"))
	if !errors.Is(err, manifest.ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
	_, err = manifest.Parse(strings.NewReader(""))
	if !errors.Is(err, manifest.ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn for empty input, got %v", err)
	}
}

func TestReadPathsMissingFile(t *testing.T) {
	_, err := manifest.ReadPaths(filepath.Join(t.TempDir(), "train.csv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
