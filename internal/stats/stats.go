// Package stats provides the small set of statistical primitives shared by
// every analyzer: mean, sample standard deviation, interpolated percentiles,
// and z-scores over finite in-memory samples.
package stats

import (
	"math"
	"sort"
	"time"
)

// Mean returns the arithmetic mean of xs, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// StdDev returns the sample standard deviation of xs (n-1 denominator),
// matching SQL STDDEV semantics. It returns 0 when fewer than two samples
// are present.
func StdDev(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	m := Mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}

// Percentile returns the p-th percentile (0 <= p <= 1) of xs using linear
// interpolation between order statistics, matching PERCENTILE_CONT. It
// returns 0 for an empty slice. xs is not modified.
func Percentile(xs []float64, p float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return xs[0]
	}
	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	rank := p * float64(n-1)
	lo := int(math.Floor(rank))
	hi := lo + 1
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// ZScore returns how many standard deviations x sits from the mean. The
// second return is false when stddev is 0, where the z-score is undefined.
func ZScore(x, mean, stddev float64) (float64, bool) {
	if stddev == 0 {
		return 0, false
	}
	return (x - mean) / stddev, true
}

// DaysBetween returns the whole-day difference to - from, matching date
// subtraction in SQL. Times are truncated to their UTC calendar date first
// so partial days do not shift the count.
func DaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// Round rounds x to the given number of decimal places.
func Round(x float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(x*pow) / pow
}
