package maxframe

import (
	"errors"
	"fmt"

	"landmarkprep/internal/frame"
)

// ErrNoHandColumns reports a dominant hand without any matching columns.
var ErrNoHandColumns = errors.New("no columns for dominant hand")

// Hand is the column-name keyword selecting one hand's landmark columns.
type Hand string

const (
	RightHand Hand = "right_hand"
	LeftHand  Hand = "left_hand"
)

// Hands pairs the right and left column keywords.
type Hands struct {
	Right Hand
	Left  Hand
}

// DefaultHands matches the dataset's standard column names.
var DefaultHands = Hands{Right: RightHand, Left: LeftHand}

// FindDominantHand applies DefaultHands.Dominant to t.
func FindDominantHand(t *frame.Table) (Hand, int) {
	return DefaultHands.Dominant(t)
}

// Dominant returns the hand with more non-missing cells in t and that count.
// Right wins ties, including when neither hand has any data.
func (h Hands) Dominant(t *frame.Table) (Hand, int) {
	right := t.ColumnsSearch(string(h.Right)).NotNull()
	left := t.ColumnsSearch(string(h.Left)).NotNull()
	if right >= left {
		return h.Right, right
	}
	return h.Left, left
}

// CountValidFrames returns the rows of t where every column of hand holds a
// value.
func CountValidFrames(t *frame.Table, hand Hand) (int, error) {
	view := t.ColumnsSearch(string(hand))
	if len(view.Columns) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrNoHandColumns, hand)
	}
	return view.CountComplete(), nil
}
