package analytics

import (
	"fmt"
	"math"

	"github.com/wonny/trendlens/internal/table"
)

// MovingAverage computes a simple moving average of one column with a sliding
// sum. The output is aligned with the table's timestamps: the first window-1
// positions are NaN, and so is every window that contains a NaN observation.
// A window of 1 returns the column unchanged.
func MovingAverage(t *table.Table, column string, window int) ([]float64, error) {
	if window < 1 {
		return nil, fmt.Errorf("%w: window must be at least 1, got %d", table.ErrInvalidParameter, window)
	}
	xs, err := t.Column(column)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(xs))
	var sum float64
	var missing int
	for i, v := range xs {
		if math.IsNaN(v) {
			missing++
		} else {
			sum += v
		}
		if i >= window {
			if old := xs[i-window]; math.IsNaN(old) {
				missing--
			} else {
				sum -= old
			}
		}
		if i < window-1 || missing > 0 {
			out[i] = math.NaN()
		} else {
			out[i] = sum / float64(window)
		}
	}
	return out, nil
}
