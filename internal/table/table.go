// Package table holds the tabular inputs every analytics operation works on:
// an observation table of timestamped numeric columns and ranking tables of
// labeled scores. Construction validates shape so downstream code can rely on
// sorted unique timestamps and consistent row lengths.
package table

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	// ErrUnknownColumn is returned when a requested column does not exist.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrInvalidParameter is returned when an operation parameter is out of range.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Table is an ordered set of observations: one timestamp per row, one numeric
// value per column. Timestamps are strictly ascending and unique. Missing
// values are math.NaN().
type Table struct {
	times   []time.Time
	columns []string
	values  [][]float64 // values[i][j] belongs to times[i], columns[j]
	index   map[string]int
}

// New builds a Table from parallel slices. Rows are sorted ascending by
// timestamp; inputs are copied. It rejects duplicate timestamps, empty or
// duplicate column names, and rows whose length does not match the header.
func New(times []time.Time, columns []string, values [][]float64) (*Table, error) {
	if len(values) != len(times) {
		return nil, fmt.Errorf("row count mismatch: %d timestamps, %d value rows", len(times), len(values))
	}

	index := make(map[string]int, len(columns))
	for j, name := range columns {
		if name == "" {
			return nil, fmt.Errorf("column %d has an empty name", j)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		index[name] = j
	}

	t := &Table{
		times:   make([]time.Time, len(times)),
		columns: append([]string(nil), columns...),
		values:  make([][]float64, len(values)),
		index:   index,
	}
	copy(t.times, times)
	for i, row := range values {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, want %d", i, len(row), len(columns))
		}
		t.values[i] = append([]float64(nil), row...)
	}

	sort.Sort(byTime{t})

	for i := 1; i < len(t.times); i++ {
		if t.times[i].Equal(t.times[i-1]) {
			return nil, fmt.Errorf("duplicate timestamp %s", t.times[i].Format("2006-01-02"))
		}
	}

	return t, nil
}

// byTime sorts rows of a Table in place, keeping timestamps and values paired.
type byTime struct{ t *Table }

func (s byTime) Len() int           { return len(s.t.times) }
func (s byTime) Less(i, j int) bool { return s.t.times[i].Before(s.t.times[j]) }
func (s byTime) Swap(i, j int) {
	s.t.times[i], s.t.times[j] = s.t.times[j], s.t.times[i]
	s.t.values[i], s.t.values[j] = s.t.values[j], s.t.values[i]
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.times)
}

// Columns returns the column names in their original order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns a copy of the named column's values, row-aligned with Times.
func (t *Table) Column(name string) ([]float64, error) {
	j, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	out := make([]float64, len(t.values))
	for i, row := range t.values {
		out[i] = row[j]
	}
	return out, nil
}

// Times returns a copy of the row timestamps in ascending order.
func (t *Table) Times() []time.Time {
	return append([]time.Time(nil), t.times...)
}

// Time returns the timestamp of row i.
func (t *Table) Time(i int) time.Time {
	return t.times[i]
}

// Start returns the earliest timestamp, or the zero time for an empty table.
func (t *Table) Start() time.Time {
	if len(t.times) == 0 {
		return time.Time{}
	}
	return t.times[0]
}

// End returns the latest timestamp, or the zero time for an empty table.
func (t *Table) End() time.Time {
	if len(t.times) == 0 {
		return time.Time{}
	}
	return t.times[len(t.times)-1]
}

// Row returns a copy of the values of row i, column-aligned with Columns.
func (t *Table) Row(i int) []float64 {
	return append([]float64(nil), t.values[i]...)
}
