// Package frame holds the in-memory table model used by the landmark jobs.
//
// A Table is a set of equal-length float columns whose rows are labelled by a
// non-unique sequence identifier. Missing cells are NaN, which covers both
// Parquet nulls and NaN payloads so counts follow the same "not missing"
// semantics the dataset tooling has always used. Row selection by identifier
// always yields a Table, even when a single row matches, so callers never
// deal with a bare row.
package frame
