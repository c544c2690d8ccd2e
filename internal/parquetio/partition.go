package parquetio

import (
	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
)

// Partition is the slice of a Dataset belonging to one sequence id. Table
// keeps the source schema and metadata; a single source row still yields a
// one-row table.
type Partition struct {
	ID    string
	Rows  int
	Table arrow.Table
}

// Release frees the partition's references to the source buffers.
func (p *Partition) Release() {
	if p.Table != nil {
		p.Table.Release()
		p.Table = nil
	}
}

type rowRun struct {
	start, end int64
}

// Partition splits the dataset by sequence id, in order of first appearance.
// Rows keep their source order. Slices share buffers with the dataset, which
// can be released independently once the partitions are built.
func (d *Dataset) Partition() []Partition {
	order, runs := d.runs()
	parts := make([]Partition, 0, len(order))
	for _, id := range order {
		parts = append(parts, d.buildPartition(id, runs[id]))
	}
	return parts
}

// runs groups consecutive rows that share a sequence id.
func (d *Dataset) runs() ([]string, map[string][]rowRun) {
	var order []string
	runs := make(map[string][]rowRun, 64)
	for row, id := range d.index {
		pos := int64(row)
		existing, ok := runs[id]
		if !ok {
			order = append(order, id)
		}
		if n := len(existing); n > 0 && existing[n-1].end == pos {
			existing[n-1].end = pos + 1
			continue
		}
		runs[id] = append(existing, rowRun{start: pos, end: pos + 1})
	}
	return order, runs
}

func (d *Dataset) buildPartition(id string, runs []rowRun) Partition {
	schema := d.Table.Schema()
	cols := make([]arrow.Column, d.Table.NumCols())
	var rows int64
	for _, r := range runs {
		rows += r.end - r.start
	}

	for i := range cols {
		src := d.Table.Column(i)
		var pieces []arrow.Array
		for _, r := range runs {
			pieces = append(pieces, sliceChunks(src.Data().Chunks(), r.start, r.end)...)
		}
		chunked := arrow.NewChunked(src.DataType(), pieces)
		cols[i] = *arrow.NewColumn(schema.Field(i), chunked)
		chunked.Release()
		for _, p := range pieces {
			p.Release()
		}
	}

	tbl := array.NewTable(schema, cols, rows)
	for i := range cols {
		cols[i].Release()
	}
	return Partition{ID: id, Rows: int(rows), Table: tbl}
}

// sliceChunks returns zero-copy slices covering rows [start, end) of a
// chunked column. Callers own the returned arrays.
func sliceChunks(chunks []arrow.Array, start, end int64) []arrow.Array {
	var out []arrow.Array
	var offset int64
	for _, chunk := range chunks {
		n := int64(chunk.Len())
		lo, hi := offset, offset+n
		offset = hi
		if hi <= start || lo >= end {
			continue
		}
		from := max(start, lo) - lo
		to := min(end, hi) - lo
		out = append(out, array.NewSlice(chunk, from, to))
	}
	return out
}
