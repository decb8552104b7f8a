package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 5.0, Mean([]float64{5}))
	assert.Equal(t, 2.5, Mean([]float64{1, 2, 3, 4}))
}

func TestStdDev_Sample(t *testing.T) {
	// Sample stddev of [2, 4, 4, 4, 5, 5, 7, 9]:
	// mean = 5, sum of squared deviations = 32, 32/7 ≈ 4.5714, sqrt ≈ 2.138.
	got := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 2.138, got, 0.001)
}

func TestStdDev_DegenerateSamples(t *testing.T) {
	assert.Equal(t, 0.0, StdDev(nil))
	assert.Equal(t, 0.0, StdDev([]float64{42}))
	assert.Equal(t, 0.0, StdDev([]float64{3, 3, 3, 3}))
}

func TestStdDev_BumperExample(t *testing.T) {
	// Eleven orders at 100 plus one at 1000: mean = 175, sample stddev ≈ 259.8.
	xs := []float64{100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 1000}
	assert.InDelta(t, 175.0, Mean(xs), 0.0001)
	assert.InDelta(t, 259.81, StdDev(xs), 0.01)

	z, ok := ZScore(1000, Mean(xs), StdDev(xs))
	assert.True(t, ok)
	assert.InDelta(t, 3.17, z, 0.01)
}

func TestPercentile_LinearInterpolation(t *testing.T) {
	xs := []float64{1, 2, 3, 4}

	// rank = p*(n-1): p50 -> 1.5 -> 2 + 0.5*(3-2) = 2.5.
	assert.InDelta(t, 2.5, Percentile(xs, 0.5), 0.0001)
	// p25 -> 0.75 -> 1 + 0.75*(2-1) = 1.75.
	assert.InDelta(t, 1.75, Percentile(xs, 0.25), 0.0001)
	// p90 -> 2.7 -> 3 + 0.7*(4-3) = 3.7.
	assert.InDelta(t, 3.7, Percentile(xs, 0.9), 0.0001)
}

func TestPercentile_Bounds(t *testing.T) {
	xs := []float64{9, 1, 5}
	assert.Equal(t, 1.0, Percentile(xs, 0))
	assert.Equal(t, 9.0, Percentile(xs, 1))
	assert.Equal(t, 0.0, Percentile(nil, 0.5))
	assert.Equal(t, 7.0, Percentile([]float64{7}, 0.9))
}

func TestPercentile_DoesNotMutateInput(t *testing.T) {
	xs := []float64{3, 1, 2}
	_ = Percentile(xs, 0.5)
	assert.Equal(t, []float64{3, 1, 2}, xs)
}

func TestZScore_UndefinedOnZeroStdDev(t *testing.T) {
	_, ok := ZScore(10, 5, 0)
	assert.False(t, ok)

	z, ok := ZScore(10, 5, 2.5)
	assert.True(t, ok)
	assert.Equal(t, 2.0, z)
}

func TestDaysBetween(t *testing.T) {
	order := time.Date(2025, 3, 10, 23, 50, 0, 0, time.UTC)
	delivery := time.Date(2025, 3, 14, 0, 5, 0, 0, time.UTC)
	assert.Equal(t, 4, DaysBetween(order, delivery))

	assert.Equal(t, 0, DaysBetween(delivery, delivery))
	assert.Equal(t, -4, DaysBetween(delivery, order))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 3.17, Round(3.1749, 2))
	assert.Equal(t, 3.2, Round(3.16, 1))
	assert.Equal(t, 100.0, Round(99.5, 0))
}
