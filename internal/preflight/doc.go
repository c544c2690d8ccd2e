// Package preflight checks that the dataset paths a job depends on exist and
// are accessible before any file is read or written.
//
// Each job has its own check list (ForMaxFrame, ForSplit). Err folds failed
// results into one error so a command stops before doing partial work.
package preflight
