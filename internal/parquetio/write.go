package parquetio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/memory"
	"github.com/apache/arrow/go/v14/parquet"
	"github.com/apache/arrow/go/v14/parquet/compress"
	"github.com/apache/arrow/go/v14/parquet/pqarrow"

	"landmarkprep/internal/frame"
)

const rowGroupSize = 64 * 1024

// ParseCompression maps a configuration value onto a Parquet codec.
func ParseCompression(name string) (compress.Compression, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "snappy":
		return compress.Codecs.Snappy, nil
	case "zstd":
		return compress.Codecs.Zstd, nil
	case "gzip":
		return compress.Codecs.Gzip, nil
	case "none", "uncompressed":
		return compress.Codecs.Uncompressed, nil
	default:
		return compress.Codecs.Uncompressed, fmt.Errorf("unsupported compression %q", name)
	}
}

// WriteArrow writes tbl to path through a temp file in the same directory and
// renames it into place, replacing any existing file. It returns the number
// of bytes written.
func WriteArrow(path string, tbl arrow.Table, opts Options) (int64, error) {
	codec, err := ParseCompression(opts.Compression)
	if err != nil {
		return 0, err
	}
	props := parquet.NewWriterProperties(
		parquet.WithCompression(codec),
		parquet.WithAllocator(opts.allocator()),
	)
	arrProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	return writeAtomic(path, func(w io.Writer) error {
		return pqarrow.WriteTable(tbl, w, rowGroupSize, props, arrProps)
	})
}

// WriteFrame writes a frame.Table with its index stored as the sequence-id
// column. Integer-looking ids are stored as int64, anything else as strings.
// NaN cells are written as nulls.
func WriteFrame(path string, t *frame.Table, opts Options) (int64, error) {
	tbl, err := FrameToArrow(t, opts)
	if err != nil {
		return 0, err
	}
	defer tbl.Release()
	return WriteArrow(path, tbl, opts)
}

// FrameToArrow converts t into an Arrow table carrying pandas-style index
// metadata so readers resolve the sequence-id column without configuration.
func FrameToArrow(t *frame.Table, opts Options) (arrow.Table, error) {
	mem := opts.allocator()
	indexName := opts.indexColumn()

	indexArr, indexType := buildIndex(t.Index, mem)
	defer indexArr.Release()

	fields := []arrow.Field{{Name: indexName, Type: indexType}}
	arrays := []arrow.Array{indexArr}
	for _, col := range t.Columns {
		if len(col.Values) != len(t.Index) {
			return nil, fmt.Errorf("column %q: %d values for %d rows", col.Name, len(col.Values), len(t.Index))
		}
		b := array.NewFloat64Builder(mem)
		b.Reserve(len(col.Values))
		for _, v := range col.Values {
			if math.IsNaN(v) {
				b.AppendNull()
				continue
			}
			b.Append(v)
		}
		arr := b.NewArray()
		b.Release()
		defer arr.Release()
		fields = append(fields, arrow.Field{Name: col.Name, Type: arrow.PrimitiveTypes.Float64, Nullable: true})
		arrays = append(arrays, arr)
	}

	md, err := pandasMetadata(indexName)
	if err != nil {
		return nil, err
	}
	schema := arrow.NewSchema(fields, &md)
	rec := array.NewRecord(schema, arrays, int64(len(t.Index)))
	defer rec.Release()
	return array.NewTableFromRecords(schema, []arrow.Record{rec}), nil
}

func buildIndex(index []string, mem memory.Allocator) (arrow.Array, arrow.DataType) {
	ints := make([]int64, len(index))
	numeric := true
	for i, id := range index {
		v, err := strconv.ParseInt(id, 10, 64)
		if err != nil || strconv.FormatInt(v, 10) != id {
			numeric = false
			break
		}
		ints[i] = v
	}
	if numeric {
		b := array.NewInt64Builder(mem)
		defer b.Release()
		b.AppendValues(ints, nil)
		return b.NewArray(), arrow.PrimitiveTypes.Int64
	}
	b := array.NewStringBuilder(mem)
	defer b.Release()
	b.AppendValues(index, nil)
	return b.NewArray(), arrow.BinaryTypes.String
}

func pandasMetadata(indexName string) (arrow.Metadata, error) {
	payload, err := json.Marshal(map[string]any{
		"index_columns": []string{indexName},
	})
	if err != nil {
		return arrow.Metadata{}, fmt.Errorf("encode pandas metadata: %w", err)
	}
	return arrow.NewMetadata([]string{pandasMetadataKey}, []string{string(payload)}), nil
}

// writeAtomic streams into a temp file next to path and renames it over path.
func writeAtomic(path string, write func(io.Writer) error) (int64, error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	counter := &countingWriter{w: tmp}
	buf := bufio.NewWriterSize(counter, 256*1024)
	if err := write(buf); err != nil {
		cleanup()
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	if err := buf.Flush(); err != nil {
		cleanup()
		return 0, fmt.Errorf("flush %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return 0, fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return 0, fmt.Errorf("rename %s: %w", path, err)
	}
	return counter.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
