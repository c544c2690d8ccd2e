// Package parquetio reads and writes landmark tables stored as Parquet.
//
// Files are loaded whole into Arrow tables through pqarrow. A Dataset keeps
// the Arrow table together with the resolved sequence-id column so callers can
// either convert it into a frame.Table for counting, or partition it into
// per-sequence Arrow tables that keep the source schema and types intact for
// re-writing. The sequence-id column is taken from the pandas schema metadata
// when the writer recorded one, otherwise from Options.IndexColumn.
package parquetio
