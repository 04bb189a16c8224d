package tablespan

import (
	"fmt"
	"slices"
)

// Frame is the tabular data a [Table] draws its columns from. Columns must
// all have Len values.
type Frame interface {
	Columns() []string
	Column(name string) ([]any, bool)
	Len() int
}

// DataFrame is a column-oriented in-memory [Frame]. Duplicate column names
// are allowed; lookups by name find the first one.
type DataFrame struct {
	names []string
	cols  [][]any
	index map[string]int
	rows  int
}

// NewDataFrame builds a frame from parallel name and column slices. The
// columns are used as given, not copied.
func NewDataFrame(names []string, cols [][]any) (*DataFrame, error) {
	if len(names) != len(cols) {
		return nil, fmt.Errorf("%w: %d names for %d columns", ErrShape, len(names), len(cols))
	}
	df := &DataFrame{
		names: slices.Clone(names),
		cols:  cols,
		index: make(map[string]int, len(names)),
	}
	for i, name := range names {
		if i == 0 {
			df.rows = len(cols[i])
		} else if len(cols[i]) != df.rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d", ErrShape, name, len(cols[i]), df.rows)
		}
		if _, ok := df.index[name]; !ok {
			df.index[name] = i
		}
	}
	return df, nil
}

// FromRecords builds a frame from row-oriented records.
func FromRecords(names []string, records [][]any) (*DataFrame, error) {
	cols := make([][]any, len(names))
	for i := range cols {
		cols[i] = make([]any, len(records))
	}
	for r, rec := range records {
		if len(rec) != len(names) {
			return nil, fmt.Errorf("%w: record %d has %d fields, want %d", ErrShape, r, len(rec), len(names))
		}
		for c, v := range rec {
			cols[c][r] = v
		}
	}
	return NewDataFrame(names, cols)
}

// Columns returns the column names in order.
func (df *DataFrame) Columns() []string { return slices.Clone(df.names) }

// Column returns the values of the named column.
func (df *DataFrame) Column(name string) ([]any, bool) {
	i, ok := df.index[name]
	if !ok {
		return nil, false
	}
	return df.cols[i], true
}

// Len returns the number of rows.
func (df *DataFrame) Len() int {
	if df == nil {
		return 0
	}
	return df.rows
}

// Width returns the number of columns.
func (df *DataFrame) Width() int {
	if df == nil {
		return 0
	}
	return len(df.names)
}

// Select returns a new frame holding the named columns in order.
func (df *DataFrame) Select(names ...string) (*DataFrame, error) {
	return Select(df, names)
}

// Row returns row i across all columns.
func (df *DataFrame) Row(i int) []any {
	row := make([]any, len(df.cols))
	for c, col := range df.cols {
		row[c] = col[i]
	}
	return row
}

// Value returns the cell at row i, column j.
func (df *DataFrame) Value(i, j int) any { return df.cols[j][i] }

// values returns column j by position.
func (df *DataFrame) values(j int) []any { return df.cols[j] }
