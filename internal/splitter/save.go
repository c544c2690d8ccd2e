package splitter

import (
	"fmt"
	"path/filepath"
	"strings"

	"landmarkprep/internal/parquetio"
)

// OutputPath returns the file a sequence is written to.
func OutputPath(outDir, sequenceID, ext string) (string, error) {
	if sequenceID == "" || sequenceID == "." || sequenceID == ".." || strings.ContainsAny(sequenceID, `/\`) {
		return "", fmt.Errorf("sequence id %q is not a valid file name", sequenceID)
	}
	return filepath.Join(outDir, sequenceID+ext), nil
}

// SaveSequence writes one sequence to <outDir>/<id><ext>, replacing any
// existing file. A one-row sequence is stored as a one-row table. It returns
// the number of bytes written.
func SaveSequence(outDir string, seq parquetio.Partition, ext string, opts parquetio.Options) (int64, error) {
	if seq.Table == nil {
		return 0, fmt.Errorf("sequence %s: no table", seq.ID)
	}
	target, err := OutputPath(outDir, seq.ID, ext)
	if err != nil {
		return 0, err
	}
	n, err := parquetio.WriteArrow(target, seq.Table, opts)
	if err != nil {
		return 0, fmt.Errorf("save sequence %s: %w", seq.ID, err)
	}
	return n, nil
}
