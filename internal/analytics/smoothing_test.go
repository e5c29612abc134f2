package analytics

import (
	"errors"
	"math"
	"testing"

	"github.com/wonny/trendlens/internal/table"
)

func TestMovingAverage(t *testing.T) {
	nan := math.NaN()
	base := []obsRow{
		{"2024-01-01", []float64{1}},
		{"2024-01-08", []float64{2}},
		{"2024-01-15", []float64{3}},
		{"2024-01-22", []float64{4}},
		{"2024-01-29", []float64{5}},
	}

	tests := []struct {
		name   string
		rows   []obsRow
		window int
		want   []float64
	}{
		{
			name:   "window three",
			rows:   base,
			window: 3,
			want:   []float64{nan, nan, 2, 3, 4},
		},
		{
			name:   "window one is identity",
			rows:   base,
			window: 1,
			want:   []float64{1, 2, 3, 4, 5},
		},
		{
			name:   "window equals length",
			rows:   base,
			window: 5,
			want:   []float64{nan, nan, nan, nan, 3},
		},
		{
			name:   "window larger than series",
			rows:   base,
			window: 8,
			want:   []float64{nan, nan, nan, nan, nan},
		},
		{
			name: "NaN poisons every window containing it",
			rows: []obsRow{
				{"2024-01-01", []float64{1}},
				{"2024-01-08", []float64{2}},
				{"2024-01-15", []float64{nan}},
				{"2024-01-22", []float64{4}},
				{"2024-01-29", []float64{5}},
				{"2024-02-05", []float64{6}},
			},
			window: 2,
			want:   []float64{nan, 1.5, nan, nan, 4.5, 5.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := makeTable(t, []string{"kw"}, tt.rows)
			got, err := MovingAverage(tbl, "kw", tt.window)
			if err != nil {
				t.Fatalf("MovingAverage() failed: %v", err)
			}
			checkSeries(t, got, tt.want)
		})
	}
}

func TestMovingAverageErrors(t *testing.T) {
	tbl := makeTable(t, []string{"kw"}, []obsRow{
		{"2024-01-01", []float64{1}},
	})

	_, err := MovingAverage(tbl, "kw", 0)
	if !errors.Is(err, table.ErrInvalidParameter) {
		t.Errorf("window 0 error = %v, want ErrInvalidParameter", err)
	}

	_, err = MovingAverage(tbl, "missing", 3)
	if !errors.Is(err, table.ErrUnknownColumn) {
		t.Errorf("unknown column error = %v, want ErrUnknownColumn", err)
	}
}
