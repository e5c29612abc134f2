package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/wonny/trendlens/internal/table"
)

const tolerance = 1e-9

type obsRow struct {
	date string
	vals []float64
}

func makeTable(t *testing.T, columns []string, rows []obsRow) *table.Table {
	t.Helper()
	times := make([]time.Time, len(rows))
	values := make([][]float64, len(rows))
	for i, r := range rows {
		ts, err := time.Parse("2006-01-02", r.date)
		if err != nil {
			t.Fatalf("bad test date %q: %v", r.date, err)
		}
		times[i] = ts
		values[i] = r.vals
	}
	tbl, err := table.New(times, columns, values)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return tbl
}

func approx(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Abs(a-b) < tolerance
}

func checkSeries(t *testing.T, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("series length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !approx(got[i], want[i]) {
			t.Errorf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPearson(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name string
		xs   []float64
		ys   []float64
		want float64
	}{
		{
			name: "perfect positive",
			xs:   []float64{1, 2, 3, 4},
			ys:   []float64{10, 20, 30, 40},
			want: 1,
		},
		{
			name: "perfect negative",
			xs:   []float64{1, 2, 3, 4},
			ys:   []float64{40, 30, 20, 10},
			want: -1,
		},
		{
			name: "pairwise complete skips NaN rows",
			xs:   []float64{1, nan, 2, 3, 4},
			ys:   []float64{2, 99, 4, nan, 8},
			want: 1,
		},
		{
			name: "fewer than two pairs",
			xs:   []float64{1, nan, nan},
			ys:   []float64{2, 3, nan},
			want: nan,
		},
		{
			name: "zero variance",
			xs:   []float64{5, 5, 5, 5},
			ys:   []float64{1, 2, 3, 4},
			want: nan,
		},
		{
			name: "uncorrelated symmetric",
			xs:   []float64{1, 2, 3, 4, 5},
			ys:   []float64{2, 1, 3, 1, 2},
			want: pearson([]float64{2, 1, 3, 1, 2}, []float64{1, 2, 3, 4, 5}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pearson(tt.xs, tt.ys)
			if !approx(got, tt.want) {
				t.Errorf("pearson() = %v, want %v", got, tt.want)
			}
		})
	}
}
