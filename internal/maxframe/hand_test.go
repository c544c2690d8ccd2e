package maxframe_test

import (
	"errors"
	"math"
	"testing"

	"landmarkprep/internal/frame"
	"landmarkprep/internal/maxframe"
	"landmarkprep/internal/testsupport"
)

func TestFindDominantHandTieGoesRight(t *testing.T) {
	tbl := testsupport.LandmarkTable(t, testsupport.Sequence{ID: "1", Frames: 4, Right: 2, Left: 2})
	hand, count := maxframe.FindDominantHand(tbl)
	if hand != maxframe.RightHand {
		t.Fatalf("hand = %s, want right_hand", hand)
	}
	if count != 4 {
		t.Fatalf("count = %d, want 4", count)
	}
}

func TestFindDominantHandPicksLeftWhenStrictlyGreater(t *testing.T) {
	tbl := testsupport.LandmarkTable(t, testsupport.Sequence{ID: "1", Frames: 5, Right: 1, Left: 3})
	hand, count := maxframe.FindDominantHand(tbl)
	if hand != maxframe.LeftHand || count != 6 {
		t.Fatalf("got %s/%d, want left_hand/6", hand, count)
	}
}

func TestFindDominantHandEmptyTable(t *testing.T) {
	hand, count := maxframe.FindDominantHand(&frame.Table{})
	if hand != maxframe.RightHand || count != 0 {
		t.Fatalf("got %s/%d, want right_hand/0", hand, count)
	}
}

func TestDominantUsesCustomKeywords(t *testing.T) {
	nan := math.NaN()
	tbl, err := frame.New([]string{"a", "a"},
		frame.Column{Name: "rh_x", Values: []float64{1, nan}},
		frame.Column{Name: "lh_x", Values: []float64{1, 2}},
	)
	if err != nil {
		t.Fatalf("frame.New: %v", err)
	}
	hands := maxframe.Hands{Right: "rh", Left: "lh"}
	if hand, count := hands.Dominant(tbl); hand != "lh" || count != 2 {
		t.Fatalf("got %s/%d, want lh/2", hand, count)
	}
}

func TestCountValidFramesRequiresEveryColumn(t *testing.T) {
	tbl := testsupport.LandmarkTable(t, testsupport.Sequence{ID: "1", Frames: 6, Right: 3, Partial: true})
	got, err := maxframe.CountValidFrames(tbl, maxframe.RightHand)
	if err != nil {
		t.Fatalf("CountValidFrames: %v", err)
	}
	if got != 3 {
		t.Fatalf("valid frames = %d, want 3", got)
	}
}

func TestCountValidFramesWithoutHandColumns(t *testing.T) {
	tbl, err := frame.New([]string{"a"}, frame.Column{Name: "x_face_0", Values: []float64{1}})
	if err != nil {
		t.Fatalf("frame.New: %v", err)
	}
	_, err = maxframe.CountValidFrames(tbl, maxframe.RightHand)
	if !errors.Is(err, maxframe.ErrNoHandColumns) {
		t.Fatalf("expected ErrNoHandColumns, got %v", err)
	}
}
