// Package analytics implements the chart computations behind the dashboard:
// calendar resampling, correlation matrices, rolling statistics, peak
// detection, histograms and score rankings. Every function is a pure
// computation over its inputs; nothing is cached between calls.
package analytics

import "math"

// pearson computes the Pearson correlation of two equal-length series over
// pairwise-complete rows. Rows where either value is NaN are skipped.
// Returns NaN when fewer than two complete pairs remain or when either side
// has zero variance over the complete pairs.
func pearson(xs, ys []float64) float64 {
	var n, sumX, sumY, sumXX, sumYY, sumXY float64
	for i := range xs {
		x, y := xs[i], ys[i]
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		n++
		sumX += x
		sumY += y
		sumXX += x * x
		sumYY += y * y
		sumXY += x * y
	}
	if n < 2 {
		return math.NaN()
	}
	varX := n*sumXX - sumX*sumX
	varY := n*sumYY - sumY*sumY
	if varX <= 0 || varY <= 0 {
		return math.NaN()
	}
	return (n*sumXY - sumX*sumY) / math.Sqrt(varX*varY)
}
