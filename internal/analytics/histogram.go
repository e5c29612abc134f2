package analytics

import (
	"fmt"
	"math"

	"github.com/wonny/trendlens/internal/table"
)

// Bucket is one equal-width histogram bin.
type Bucket struct {
	RangeStart float64
	RangeEnd   float64
	Count      int
}

// Histogram distributes a column's non-NaN values into binCount equal-width
// bins spanning [min, max]. Bins are half-open; the maximum value lands in
// the last bin. When all values are equal the result collapses to a single
// bin, and when every value is NaN the result is empty.
func Histogram(t *table.Table, column string, binCount int) ([]Bucket, error) {
	if binCount < 1 {
		return nil, fmt.Errorf("%w: bins must be at least 1, got %d", table.ErrInvalidParameter, binCount)
	}
	xs, err := t.Column(column)
	if err != nil {
		return nil, err
	}

	values := make([]float64, 0, len(xs))
	for _, v := range xs {
		if !math.IsNaN(v) {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return nil, nil
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if min == max {
		return []Bucket{{RangeStart: min, RangeEnd: max, Count: len(values)}}, nil
	}

	width := (max - min) / float64(binCount)
	buckets := make([]Bucket, binCount)
	for b := range buckets {
		buckets[b].RangeStart = min + float64(b)*width
		buckets[b].RangeEnd = min + float64(b+1)*width
	}
	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= binCount {
			idx = binCount - 1
		}
		buckets[idx].Count++
	}
	return buckets, nil
}
