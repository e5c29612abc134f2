package analytics

import (
	"fmt"
	"math"

	"github.com/wonny/trendlens/internal/table"
)

// Matrix is a symmetric correlation matrix over a table's columns.
// Cells[i][j] is the Pearson correlation of Columns[i] with Columns[j].
type Matrix struct {
	Columns []string
	Cells   [][]float64
}

// Correlate computes the full pairwise Pearson correlation matrix of a table
// using pairwise-complete rows per column pair. A cell is NaN when fewer than
// two complete pairs exist or when either column has zero variance over those
// pairs. The diagonal is exactly 1 for every column with nonzero variance.
func Correlate(t *table.Table) *Matrix {
	columns := t.Columns()
	series := make([][]float64, len(columns))
	for j := range series {
		series[j] = make([]float64, t.Len())
	}
	for i := 0; i < t.Len(); i++ {
		for j, v := range t.Row(i) {
			series[j][i] = v
		}
	}

	cells := make([][]float64, len(columns))
	for i := range cells {
		cells[i] = make([]float64, len(columns))
	}
	for i := range columns {
		for j := i; j < len(columns); j++ {
			r := pearson(series[i], series[j])
			if i == j && !math.IsNaN(r) {
				r = 1
			}
			cells[i][j] = r
			cells[j][i] = r
		}
	}

	return &Matrix{Columns: columns, Cells: cells}
}

// RollingCorrelation computes the Pearson correlation of two columns over a
// sliding window of the given size. The output is aligned with the table's
// timestamps: the first window-1 positions are NaN, and so is any window with
// fewer than two complete pairs or zero variance on either side.
func RollingCorrelation(t *table.Table, first, second string, window int) ([]float64, error) {
	if window < 1 {
		return nil, fmt.Errorf("%w: window must be at least 1, got %d", table.ErrInvalidParameter, window)
	}
	xs, err := t.Column(first)
	if err != nil {
		return nil, err
	}
	ys, err := t.Column(second)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(xs))
	for i := range out {
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = pearson(xs[i-window+1:i+1], ys[i-window+1:i+1])
	}
	return out, nil
}
