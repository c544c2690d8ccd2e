package frame_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"landmarkprep/internal/frame"
)

var nan = math.NaN()

func sampleTable(t *testing.T) *frame.Table {
	t.Helper()
	tbl, err := frame.New(
		[]string{"7", "7", "3", "7", "9"},
		frame.Column{Name: "frame", Values: []float64{0, 1, 0, 2, 0}},
		frame.Column{Name: "x_right_hand_0", Values: []float64{0.1, nan, 0.3, 0.4, nan}},
		frame.Column{Name: "y_right_hand_0", Values: []float64{0.1, 0.2, 0.3, nan, nan}},
		frame.Column{Name: "x_left_hand_0", Values: []float64{nan, nan, 0.5, nan, 0.6}},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tbl
}

func TestNewRejectsRaggedColumns(t *testing.T) {
	_, err := frame.New([]string{"a", "b"}, frame.Column{Name: "x", Values: []float64{1}})
	if err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestColumnsSearchKeepsMatchingColumns(t *testing.T) {
	tbl := sampleTable(t)

	right := tbl.ColumnsSearch("right_hand")
	if diff := cmp.Diff([]string{"x_right_hand_0", "y_right_hand_0"}, right.ColumnNames()); diff != "" {
		t.Fatalf("unexpected columns (-want +got):\n%s", diff)
	}
	if right.NumRows() != tbl.NumRows() {
		t.Fatalf("view rows = %d, want %d", right.NumRows(), tbl.NumRows())
	}
	if got := tbl.ColumnsSearch("face").Columns; len(got) != 0 {
		t.Fatalf("expected no face columns, got %d", len(got))
	}
	if got := len(tbl.Columns); got != 4 {
		t.Fatalf("search mutated source table: %d columns", got)
	}
}

func TestNotNullCountsPresentCells(t *testing.T) {
	tbl := sampleTable(t)
	if got := tbl.ColumnsSearch("right_hand").NotNull(); got != 6 {
		t.Fatalf("right hand not-null = %d, want 6", got)
	}
	if got := tbl.ColumnsSearch("left_hand").NotNull(); got != 2 {
		t.Fatalf("left hand not-null = %d, want 2", got)
	}
}

func TestCountCompleteRequiresEveryColumn(t *testing.T) {
	tbl := sampleTable(t)
	if got := tbl.ColumnsSearch("right_hand").CountComplete(); got != 2 {
		t.Fatalf("complete rows = %d, want 2", got)
	}
	if got := tbl.ColumnsSearch("missing").CountComplete(); got != 0 {
		t.Fatalf("complete rows without columns = %d, want 0", got)
	}
}

func TestUniqueIndexPreservesFirstAppearance(t *testing.T) {
	tbl := sampleTable(t)
	if diff := cmp.Diff([]string{"7", "3", "9"}, tbl.UniqueIndex()); diff != "" {
		t.Fatalf("unexpected ids (-want +got):\n%s", diff)
	}
}

func TestLocSingleRowIsTable(t *testing.T) {
	tbl := sampleTable(t)

	one := tbl.Loc("3")
	if one.NumRows() != 1 {
		t.Fatalf("rows = %d, want 1", one.NumRows())
	}
	if len(one.Columns) != len(tbl.Columns) {
		t.Fatalf("columns = %d, want %d", len(one.Columns), len(tbl.Columns))
	}
	col, ok := one.Column("x_left_hand_0")
	if !ok || col.Values[0] != 0.5 {
		t.Fatalf("unexpected left hand value: %+v", col)
	}

	many := tbl.Loc("7")
	frames, _ := many.Column("frame")
	if diff := cmp.Diff([]float64{0, 1, 2}, frames.Values); diff != "" {
		t.Fatalf("rows out of source order (-want +got):\n%s", diff)
	}

	if got := tbl.Loc("unknown").NumRows(); got != 0 {
		t.Fatalf("rows for unknown id = %d, want 0", got)
	}
}

func TestConcatRebuildsGroups(t *testing.T) {
	tbl := sampleTable(t)
	var parts []*frame.Table
	for _, id := range tbl.UniqueIndex() {
		parts = append(parts, tbl.Loc(id))
	}
	joined, err := frame.Concat(parts...)
	if err != nil {
		t.Fatalf("Concat: %v", err)
	}
	if joined.NumRows() != tbl.NumRows() {
		t.Fatalf("rows = %d, want %d", joined.NumRows(), tbl.NumRows())
	}
	if diff := cmp.Diff([]string{"7", "7", "7", "3", "9"}, joined.Index); diff != "" {
		t.Fatalf("unexpected index (-want +got):\n%s", diff)
	}

	if _, err := frame.Concat(tbl, tbl.ColumnsSearch("hand")); err == nil {
		t.Fatal("expected layout mismatch error")
	}
}
