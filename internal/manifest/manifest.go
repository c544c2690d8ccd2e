// Package manifest reads the label manifest that enumerates landmark files.
package manifest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// PathColumn is the manifest column naming source files.
const PathColumn = "path"

// ErrMissingColumn reports a manifest without a path column.
var ErrMissingColumn = errors.New("manifest has no path column")

// ReadPaths returns the distinct values of the path column of the CSV file at
// name, in order of first appearance.
func ReadPaths(name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	paths, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", name, err)
	}
	return paths, nil
}

// Parse reads a manifest from r.
func Parse(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingColumn
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := -1
	for i, name := range header {
		if strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) == PathColumn {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, ErrMissingColumn
	}

	seen := make(map[string]struct{}, 1024)
	var paths []string
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		if col >= len(record) {
			return nil, fmt.Errorf("line %d: missing %s field", line, PathColumn)
		}
		path := strings.TrimSpace(record[col])
		if path == "" {
			continue
		}
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		paths = append(paths, path)
	}
	return paths, nil
}
