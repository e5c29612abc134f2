package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/wonny/trendlens/internal/table"
)

// Peak is one observation selected by TopPeaks.
type Peak struct {
	Time  time.Time
	Value float64
}

// TopPeaks returns the k largest observations of a column, NaN values
// skipped, ordered by descending value. Equal values are ordered by earlier
// timestamp. Fewer than k results are returned when the column has fewer
// non-NaN observations.
func TopPeaks(t *table.Table, column string, k int) ([]Peak, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be at least 1, got %d", table.ErrInvalidParameter, k)
	}
	xs, err := t.Column(column)
	if err != nil {
		return nil, err
	}

	peaks := make([]Peak, 0, len(xs))
	for i, v := range xs {
		if math.IsNaN(v) {
			continue
		}
		peaks = append(peaks, Peak{Time: t.Time(i), Value: v})
	}

	sort.Slice(peaks, func(i, j int) bool {
		if peaks[i].Value != peaks[j].Value {
			return peaks[i].Value > peaks[j].Value
		}
		return peaks[i].Time.Before(peaks[j].Time)
	})

	if len(peaks) > k {
		peaks = peaks[:k]
	}
	return peaks, nil
}
