package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/wonny/trendlens/internal/table"
)

// Period selects the calendar bucket size for Resample.
type Period string

const (
	PeriodYearly  Period = "yearly"
	PeriodMonthly Period = "monthly"
)

// ParsePeriod normalizes a user-supplied period string.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yearly", "year", "y", "annual":
		return PeriodYearly, nil
	case "monthly", "month", "m":
		return PeriodMonthly, nil
	}
	return "", fmt.Errorf("%w: unknown period %q", table.ErrInvalidParameter, s)
}

// Resample aggregates a table into calendar buckets, taking the arithmetic
// mean of the non-NaN observations per column. Only buckets that contain at
// least one source row appear; a column with no observations in a bucket
// yields NaN there. Output rows are labeled with the last day of their
// period and keep the source column order.
func Resample(t *table.Table, period Period) (*table.Table, error) {
	var keyOf func(time.Time) int
	var labelOf func(int) time.Time

	switch period {
	case PeriodYearly:
		keyOf = func(ts time.Time) int { return ts.Year() }
		labelOf = func(k int) time.Time {
			return time.Date(k, time.December, 31, 0, 0, 0, 0, time.UTC)
		}
	case PeriodMonthly:
		keyOf = func(ts time.Time) int { return ts.Year()*12 + int(ts.Month()) - 1 }
		labelOf = func(k int) time.Time {
			// Day 0 of the following month is the last day of this one.
			return time.Date(k/12, time.Month(k%12+1)+1, 0, 0, 0, 0, 0, time.UTC)
		}
	default:
		return nil, fmt.Errorf("%w: unknown period %q", table.ErrInvalidParameter, period)
	}

	columns := t.Columns()
	sums := make(map[int][]float64)
	counts := make(map[int][]int)

	for i := 0; i < t.Len(); i++ {
		key := keyOf(t.Time(i))
		if _, ok := sums[key]; !ok {
			sums[key] = make([]float64, len(columns))
			counts[key] = make([]int, len(columns))
		}
		for j, v := range t.Row(i) {
			if math.IsNaN(v) {
				continue
			}
			sums[key][j] += v
			counts[key][j]++
		}
	}

	keys := make([]int, 0, len(sums))
	for key := range sums {
		keys = append(keys, key)
	}
	sort.Ints(keys)

	times := make([]time.Time, 0, len(keys))
	values := make([][]float64, 0, len(keys))
	for _, key := range keys {
		means := make([]float64, len(columns))
		for j := range columns {
			if counts[key][j] == 0 {
				means[j] = math.NaN()
			} else {
				means[j] = sums[key][j] / float64(counts[key][j])
			}
		}
		times = append(times, labelOf(key))
		values = append(values, means)
	}

	return table.New(times, columns, values)
}
