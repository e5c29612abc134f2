package analytics

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/wonny/trendlens/internal/table"
)

func TestTopPeaks(t *testing.T) {
	// Two years of monthly rows climbing from 10 to 33; the five largest are
	// the last five months in reverse.
	rows := make([]obsRow, 0, 24)
	months := []string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11", "12"}
	v := 10.0
	for _, year := range []string{"2023", "2024"} {
		for _, m := range months {
			rows = append(rows, obsRow{year + "-" + m + "-01", []float64{v}})
			v++
		}
	}
	tbl := makeTable(t, []string{"kw"}, rows)

	peaks, err := TopPeaks(tbl, "kw", 5)
	if err != nil {
		t.Fatalf("TopPeaks() failed: %v", err)
	}
	if len(peaks) != 5 {
		t.Fatalf("len = %d, want 5", len(peaks))
	}

	wantValues := []float64{33, 32, 31, 30, 29}
	wantMonths := []time.Month{12, 11, 10, 9, 8}
	for i := range wantValues {
		if peaks[i].Value != wantValues[i] {
			t.Errorf("peaks[%d].Value = %v, want %v", i, peaks[i].Value, wantValues[i])
		}
		if peaks[i].Time.Year() != 2024 || peaks[i].Time.Month() != wantMonths[i] {
			t.Errorf("peaks[%d].Time = %v, want 2024-%02d", i, peaks[i].Time, wantMonths[i])
		}
	}
}

func TestTopPeaksTiesPreferEarlier(t *testing.T) {
	tbl := makeTable(t, []string{"kw"}, []obsRow{
		{"2024-01-01", []float64{7}},
		{"2024-01-08", []float64{9}},
		{"2024-01-15", []float64{9}},
		{"2024-01-22", []float64{3}},
	})

	peaks, err := TopPeaks(tbl, "kw", 2)
	if err != nil {
		t.Fatalf("TopPeaks() failed: %v", err)
	}
	if len(peaks) != 2 {
		t.Fatalf("len = %d, want 2", len(peaks))
	}
	if !peaks[0].Time.Before(peaks[1].Time) {
		t.Errorf("tied peaks out of order: %v then %v", peaks[0].Time, peaks[1].Time)
	}
	if peaks[0].Value != 9 || peaks[1].Value != 9 {
		t.Errorf("tied peak values = %v, %v, want 9, 9", peaks[0].Value, peaks[1].Value)
	}
}

func TestTopPeaksSkipsNaNAndTruncates(t *testing.T) {
	nan := math.NaN()
	tbl := makeTable(t, []string{"kw"}, []obsRow{
		{"2024-01-01", []float64{nan}},
		{"2024-01-08", []float64{4}},
		{"2024-01-15", []float64{nan}},
		{"2024-01-22", []float64{8}},
	})

	peaks, err := TopPeaks(tbl, "kw", 10)
	if err != nil {
		t.Fatalf("TopPeaks() failed: %v", err)
	}
	if len(peaks) != 2 {
		t.Fatalf("len = %d, want 2 (NaN rows skipped, k capped by data)", len(peaks))
	}
	if peaks[0].Value != 8 || peaks[1].Value != 4 {
		t.Errorf("values = %v, %v, want 8, 4", peaks[0].Value, peaks[1].Value)
	}
}

func TestTopPeaksErrors(t *testing.T) {
	tbl := makeTable(t, []string{"kw"}, []obsRow{
		{"2024-01-01", []float64{1}},
	})

	_, err := TopPeaks(tbl, "kw", 0)
	if !errors.Is(err, table.ErrInvalidParameter) {
		t.Errorf("k 0 error = %v, want ErrInvalidParameter", err)
	}

	_, err = TopPeaks(tbl, "missing", 5)
	if !errors.Is(err, table.ErrUnknownColumn) {
		t.Errorf("unknown column error = %v, want ErrUnknownColumn", err)
	}
}
