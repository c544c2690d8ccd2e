// Package splitter rewrites bulk landmark files into one file per sequence.
//
// Source files are processed one at a time in name order. The sequences of a
// file are written in parallel by a fixed worker pool that is reused for
// every file, and the next file starts only after the previous batch has
// completed. A lock file beside the output directory keeps concurrent runs
// from writing the same directory.
package splitter
