// Package core implements the CTD import pipeline: header reconciliation
// against the declared table registry, surrogate-key mapping for the
// mappable domains, chunked bulk loading, and one-to-many expansion of
// pipe-delimited columns. It has no CLI dependencies and talks to the
// database only through the DBTX and RowWriter interfaces.
package core

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// CopyDB is the subset of pgx used for bulk appends.
type CopyDB interface {
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// FieldType is the destination type of a source column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldInt
	FieldNumeric
)

// ColumnSpec maps one file column onto its destination column.
type ColumnSpec struct {
	FileColumn string
	DBColumn   string
	Type       FieldType
	// Normalizer, when set, rewrites the raw file value before type
	// conversion and before any foreign-key substitution.
	Normalizer func(string) string
}

// OneToManySpec declares a pipe-delimited file column that is exploded
// into a side table named <parent>__<ChildColumn>.
type OneToManySpec struct {
	FileColumn  string
	ChildColumn string
}

// TableSpec is the immutable declaration of one source table: which file
// it comes from, which columns to read, and which columns fan out into
// one-to-many side tables. A table with a DomainIDColumn is a mappable
// domain: its rows define the natural-id to surrogate-key mapping that
// other tables join against.
type TableSpec struct {
	Name      string
	FileName  string
	Columns   []ColumnSpec
	OneToMany []OneToManySpec

	// DomainIDColumn points at the file column holding the domain's
	// natural identifier. Only set on mappable domain tables.
	DomainIDColumn *ColumnSpec
}

// Mappable reports whether the table defines a surrogate-key domain.
func (t TableSpec) Mappable() bool {
	return t.DomainIDColumn != nil
}

// ExpectedColumns returns the ordered file column names the spec declares.
func (t TableSpec) ExpectedColumns() []string {
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = c.FileColumn
	}
	return cols
}

// RenameMap returns the file-column to db-column rename map.
func (t TableSpec) RenameMap() map[string]string {
	m := make(map[string]string, len(t.Columns))
	for _, c := range t.Columns {
		m[c.FileColumn] = c.DBColumn
	}
	return m
}

// columnByFile returns the ColumnSpec for a file column name.
func (t TableSpec) columnByFile(name string) (ColumnSpec, bool) {
	for _, c := range t.Columns {
		if c.FileColumn == name {
			return c, true
		}
	}
	return ColumnSpec{}, false
}

// Chunk is one row-count-bounded batch of data rows from a source file.
// Start is the 0-based ordinal of the first row, counting data rows only;
// the surrogate key of row i within the chunk is Start+i+1.
type Chunk struct {
	Start int64
	Rows  [][]string
}

// DriftPolicy decides what happens when a table's declared columns are
// not a subset of the columns actually found in its source file.
type DriftPolicy int

const (
	// DriftAbort fails the whole import run.
	DriftAbort DriftPolicy = iota
	// DriftSkip logs the drift and skips the table entirely.
	DriftSkip
	// DriftWarn logs the drift and loads the columns that do exist.
	DriftWarn
)

// ParseDriftPolicy converts a config string to a DriftPolicy.
func ParseDriftPolicy(s string) (DriftPolicy, bool) {
	switch s {
	case "abort", "":
		return DriftAbort, true
	case "skip":
		return DriftSkip, true
	case "warn":
		return DriftWarn, true
	}
	return DriftAbort, false
}

// RowWriter appends rows to a destination table. The pipeline is
// write-only: nothing is ever read back or updated in place.
type RowWriter interface {
	WriteRows(ctx context.Context, table string, columns []string, rows [][]any) error
}
