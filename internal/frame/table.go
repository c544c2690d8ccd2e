package frame

import (
	"fmt"
	"math"
	"strings"
)

// Column is one named series of a Table. NaN marks a missing value.
type Column struct {
	Name   string
	Values []float64
}

// Valid reports whether row i holds a value.
func (c Column) Valid(i int) bool {
	return !math.IsNaN(c.Values[i])
}

// NotNull returns the number of present values in the column.
func (c Column) NotNull() int {
	n := 0
	for _, v := range c.Values {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

// Table is a row-indexed set of columns sharing the same length.
type Table struct {
	Index   []string
	Columns []Column
}

// New builds a table and checks that every column matches the index length.
func New(index []string, columns ...Column) (*Table, error) {
	for _, col := range columns {
		if len(col.Values) != len(index) {
			return nil, fmt.Errorf("column %q: %d values for %d rows", col.Name, len(col.Values), len(index))
		}
	}
	return &Table{Index: index, Columns: columns}, nil
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	if t == nil {
		return 0
	}
	return len(t.Index)
}

// ColumnNames lists the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// Column looks up a column by exact name.
func (t *Table) Column(name string) (Column, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// ColumnsSearch returns a view holding only the columns whose name contains
// keyword. Column values are shared with t.
func (t *Table) ColumnsSearch(keyword string) *Table {
	view := &Table{Index: t.Index}
	for _, col := range t.Columns {
		if strings.Contains(col.Name, keyword) {
			view.Columns = append(view.Columns, col)
		}
	}
	return view
}

// NotNull returns the number of present cells across all columns.
func (t *Table) NotNull() int {
	total := 0
	for _, col := range t.Columns {
		total += col.NotNull()
	}
	return total
}

// CountComplete returns the number of rows where every column holds a value.
// A table without columns has no complete rows.
func (t *Table) CountComplete() int {
	if len(t.Columns) == 0 {
		return 0
	}
	count := 0
	for row := range t.Index {
		complete := true
		for _, col := range t.Columns {
			if !col.Valid(row) {
				complete = false
				break
			}
		}
		if complete {
			count++
		}
	}
	return count
}

// UniqueIndex returns the distinct identifiers in order of first appearance.
func (t *Table) UniqueIndex() []string {
	seen := make(map[string]struct{}, 16)
	var ids []string
	for _, id := range t.Index {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// Groups maps each identifier to its row positions in source order.
func (t *Table) Groups() map[string][]int {
	groups := make(map[string][]int, 16)
	for row, id := range t.Index {
		groups[id] = append(groups[id], row)
	}
	return groups
}

// Loc returns the rows labelled id as a new table. A single match still
// yields a one-row table; no match yields an empty table with the same columns.
func (t *Table) Loc(id string) *Table {
	var rows []int
	for row, label := range t.Index {
		if label == id {
			rows = append(rows, row)
		}
	}
	return t.Take(rows)
}

// Take copies the given rows, in the given order, into a new table.
func (t *Table) Take(rows []int) *Table {
	out := &Table{
		Index:   make([]string, len(rows)),
		Columns: make([]Column, len(t.Columns)),
	}
	for i, row := range rows {
		out.Index[i] = t.Index[row]
	}
	for c, col := range t.Columns {
		values := make([]float64, len(rows))
		for i, row := range rows {
			values[i] = col.Values[row]
		}
		out.Columns[c] = Column{Name: col.Name, Values: values}
	}
	return out
}

// Concat stacks tables with identical column layouts.
func Concat(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return &Table{}, nil
	}
	names := tables[0].ColumnNames()
	out := &Table{Columns: make([]Column, len(names))}
	for i, name := range names {
		out.Columns[i].Name = name
	}
	for _, t := range tables {
		if len(t.Columns) != len(names) {
			return nil, fmt.Errorf("concat: %d columns, want %d", len(t.Columns), len(names))
		}
		for i, col := range t.Columns {
			if col.Name != names[i] {
				return nil, fmt.Errorf("concat: column %d is %q, want %q", i, col.Name, names[i])
			}
			out.Columns[i].Values = append(out.Columns[i].Values, col.Values...)
		}
		out.Index = append(out.Index, t.Index...)
	}
	return out, nil
}
