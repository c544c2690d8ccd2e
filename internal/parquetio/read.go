package parquetio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/memory"
	"github.com/apache/arrow/go/v14/parquet/file"
	"github.com/apache/arrow/go/v14/parquet/pqarrow"

	"landmarkprep/internal/frame"
)

const (
	pandasMetadataKey  = "pandas"
	defaultIndexColumn = "sequence_id"
	readBatchSize      = 64 * 1024
)

// ErrIndexColumn reports that the sequence-id column could not be found.
var ErrIndexColumn = errors.New("sequence id column not found")

// Options controls how files are read and written.
type Options struct {
	// IndexColumn names the sequence-id column when the file carries no
	// pandas index metadata.
	IndexColumn string
	// Compression is one of snappy, zstd, gzip or none.
	Compression string
	// Allocator defaults to memory.DefaultAllocator.
	Allocator memory.Allocator
}

func (o Options) allocator() memory.Allocator {
	if o.Allocator != nil {
		return o.Allocator
	}
	return memory.DefaultAllocator
}

func (o Options) indexColumn() string {
	if name := strings.TrimSpace(o.IndexColumn); name != "" {
		return name
	}
	return defaultIndexColumn
}

// Dataset is one loaded Parquet file.
type Dataset struct {
	Path        string
	Table       arrow.Table
	IndexColumn string

	indexPos int
	index    []string
	alloc    memory.Allocator
}

// ReadFile loads the whole file at path.
func ReadFile(ctx context.Context, path string, opts Options) (*Dataset, error) {
	rdr, err := file.OpenParquetFile(path, false)
	if err != nil {
		return nil, fmt.Errorf("open parquet %s: %w", path, err)
	}
	defer rdr.Close()

	fr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{BatchSize: readBatchSize}, opts.allocator())
	if err != nil {
		return nil, fmt.Errorf("arrow reader %s: %w", path, err)
	}
	tbl, err := fr.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", path, err)
	}
	if pandas := rdr.MetaData().KeyValueMetadata().FindValue(pandasMetadataKey); pandas != nil {
		tbl = withSchemaMetadata(tbl, pandasMetadataKey, *pandas)
	}

	ds, err := newDataset(path, tbl, opts)
	if err != nil {
		tbl.Release()
		return nil, err
	}
	return ds, nil
}

func newDataset(path string, tbl arrow.Table, opts Options) (*Dataset, error) {
	schema := tbl.Schema()
	name := pandasIndexColumn(schema.Metadata())
	if name == "" {
		name = opts.indexColumn()
	}
	positions := schema.FieldIndices(name)
	if len(positions) == 0 {
		return nil, fmt.Errorf("%s: %w: %q", path, ErrIndexColumn, name)
	}

	ds := &Dataset{
		Path:        path,
		Table:       tbl,
		IndexColumn: name,
		indexPos:    positions[0],
		alloc:       opts.allocator(),
	}
	index, err := columnStrings(tbl.Column(ds.indexPos))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	ds.index = index
	return ds, nil
}

// withSchemaMetadata returns tbl with key set in its schema metadata. The
// reader keeps file key-value metadata out of the Arrow schema, so it is
// copied back here and travels into partitions and written files.
// tbl is released.
func withSchemaMetadata(tbl arrow.Table, key, value string) arrow.Table {
	old := tbl.Schema().Metadata()
	keys := make([]string, 0, old.Len()+1)
	values := make([]string, 0, old.Len()+1)
	for i, k := range old.Keys() {
		if k == key {
			continue
		}
		keys = append(keys, k)
		values = append(values, old.Values()[i])
	}
	keys = append(keys, key)
	values = append(values, value)
	md := arrow.NewMetadata(keys, values)

	cols := make([]arrow.Column, tbl.NumCols())
	for i := range cols {
		cols[i] = *tbl.Column(i)
	}
	out := array.NewTable(arrow.NewSchema(tbl.Schema().Fields(), &md), cols, tbl.NumRows())
	tbl.Release()
	return out
}

// Release frees the Arrow buffers held by the dataset.
func (d *Dataset) Release() {
	if d == nil || d.Table == nil {
		return
	}
	d.Table.Release()
	d.Table = nil
}

// NumRows returns the row count of the file.
func (d *Dataset) NumRows() int {
	return len(d.index)
}

// SequenceIDs returns the distinct sequence ids in order of first appearance.
func (d *Dataset) SequenceIDs() []string {
	seen := make(map[string]struct{}, 64)
	var ids []string
	for _, id := range d.index {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// Frame converts every non-index column to float64. Nulls become NaN.
func (d *Dataset) Frame() (*frame.Table, error) {
	schema := d.Table.Schema()
	out := &frame.Table{Index: d.index}
	for i := 0; i < int(d.Table.NumCols()); i++ {
		if i == d.indexPos {
			continue
		}
		values, err := columnFloats(d.Table.Column(i))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.Path, err)
		}
		out.Columns = append(out.Columns, frame.Column{Name: schema.Field(i).Name, Values: values})
	}
	return out, nil
}

// pandasIndexColumn returns the first named index column recorded by pandas,
// or "" when the metadata is absent or only describes a RangeIndex.
func pandasIndexColumn(md arrow.Metadata) string {
	pos := md.FindKey(pandasMetadataKey)
	if pos < 0 {
		return ""
	}
	var payload struct {
		IndexColumns []json.RawMessage `json:"index_columns"`
	}
	if err := json.Unmarshal([]byte(md.Values()[pos]), &payload); err != nil {
		return ""
	}
	for _, raw := range payload.IndexColumns {
		var name string
		if err := json.Unmarshal(raw, &name); err == nil && name != "" {
			return name
		}
	}
	return ""
}

func columnStrings(col *arrow.Column) ([]string, error) {
	out := make([]string, 0, col.Len())
	for _, chunk := range col.Data().Chunks() {
		for i := 0; i < chunk.Len(); i++ {
			if chunk.IsNull(i) {
				return nil, fmt.Errorf("column %q: null sequence id at row %d", col.Name(), len(out))
			}
			switch arr := chunk.(type) {
			case *array.String:
				out = append(out, arr.Value(i))
			case *array.LargeString:
				out = append(out, arr.Value(i))
			case *array.Int64:
				out = append(out, strconv.FormatInt(arr.Value(i), 10))
			case *array.Int32:
				out = append(out, strconv.FormatInt(int64(arr.Value(i)), 10))
			case *array.Int16:
				out = append(out, strconv.FormatInt(int64(arr.Value(i)), 10))
			case *array.Uint64:
				out = append(out, strconv.FormatUint(arr.Value(i), 10))
			case *array.Uint32:
				out = append(out, strconv.FormatUint(uint64(arr.Value(i)), 10))
			default:
				return nil, fmt.Errorf("column %q: unsupported sequence id type %s", col.Name(), chunk.DataType())
			}
		}
	}
	return out, nil
}

func columnFloats(col *arrow.Column) ([]float64, error) {
	out := make([]float64, 0, col.Len())
	for _, chunk := range col.Data().Chunks() {
		switch arr := chunk.(type) {
		case *array.Float64:
			out = appendFloats[float64](out, arr)
		case *array.Float32:
			out = appendFloats[float32](out, arr)
		case *array.Int64:
			out = appendFloats[int64](out, arr)
		case *array.Int32:
			out = appendFloats[int32](out, arr)
		case *array.Int16:
			out = appendFloats[int16](out, arr)
		case *array.Int8:
			out = appendFloats[int8](out, arr)
		case *array.Uint64:
			out = appendFloats[uint64](out, arr)
		case *array.Uint32:
			out = appendFloats[uint32](out, arr)
		case *array.Uint16:
			out = appendFloats[uint16](out, arr)
		case *array.Uint8:
			out = appendFloats[uint8](out, arr)
		default:
			return nil, fmt.Errorf("column %q: unsupported type %s", col.Name(), chunk.DataType())
		}
	}
	return out, nil
}

type number interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64
}

type numericArray[T number] interface {
	Len() int
	IsNull(i int) bool
	Value(i int) T
}

func appendFloats[T number](out []float64, arr numericArray[T]) []float64 {
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			out = append(out, math.NaN())
			continue
		}
		out = append(out, float64(arr.Value(i)))
	}
	return out
}
