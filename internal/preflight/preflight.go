package preflight

import (
	"errors"
	"fmt"
	"strings"

	"landmarkprep/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// ForMaxFrame checks the inputs of the max-frame job.
func ForMaxFrame(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	results := []Result{
		CheckFileReadable("Label manifest", cfg.Paths.Manifest),
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir, ReadOnly),
	}
	if cfg.Stats.DBPath != "" {
		results = append(results, CheckCreatable("Stats database", cfg.Stats.DBPath))
	}
	return results
}

// ForSplit checks the inputs and output of the split job.
func ForSplit(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	return []Result{
		CheckDirectoryAccess("Landmarks directory", cfg.Paths.LandmarksDir, ReadOnly),
		CheckCreatable("Split directory", cfg.Paths.SplitDir),
	}
}

// Err returns nil when every result passed, otherwise an error listing the
// failed checks.
func Err(results []Result) error {
	var failed []string
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, fmt.Sprintf("%s: %s", r.Name, r.Detail))
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return errors.New("preflight failed: " + strings.Join(failed, "; "))
}
