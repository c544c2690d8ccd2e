// Package maxframe finds the longest run of usable frames in a landmark
// dataset.
//
// For every sequence the dominant hand is the hand column group with more
// non-missing cells (right wins ties). A frame is fully valid when every
// dominant-hand column holds a value. The package reports the largest count
// of fully valid frames per file and across the files named by the label
// manifest, together with a distribution summary used to choose a padding
// length for model input.
package maxframe
