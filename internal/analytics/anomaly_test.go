package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partsight/insight-cli/internal/model"
)

func pricedFact(partTypeID int64, partType string, price float64) model.OrderFact {
	return model.OrderFact{
		PartTypeID: i64p(partTypeID),
		PartType:   partType,
		Price:      price,
	}
}

func TestDetectPriceAnomalies_OutlierFlagged(t *testing.T) {
	// Eleven bumpers at 100 and one at 1000:
	// mean = (11*100 + 1000) / 12 = 175
	// sample variance = (11*75^2 + 825^2) / 11 = 742500 / 11 = 67500
	// stddev = sqrt(67500) ~= 259.81
	// z(1000) = 825 / 259.81 ~= 3.18, z(100) = -75 / 259.81 ~= -0.29
	var facts []model.OrderFact
	for i := 0; i < 11; i++ {
		facts = append(facts, pricedFact(1, "Bumper", 100))
	}
	facts = append(facts, pricedFact(1, "Bumper", 1000))

	out := DetectPriceAnomalies(facts, testCfg())

	require.Len(t, out, 1)
	assert.Equal(t, "Bumper", out[0].PartType)
	assert.Equal(t, 1000.0, out[0].Price)
	assert.Equal(t, 175.0, out[0].AvgPrice)
	assert.Equal(t, 259.81, out[0].StdDev)
	assert.Equal(t, 3.18, out[0].ZScore)
	assert.Equal(t, model.AnomalyHigh, out[0].AnomalyType)
}

func TestDetectPriceAnomalies_LowOutlier(t *testing.T) {
	var facts []model.OrderFact
	for i := 0; i < 11; i++ {
		facts = append(facts, pricedFact(1, "Bumper", 1000))
	}
	facts = append(facts, pricedFact(1, "Bumper", 100))

	out := DetectPriceAnomalies(facts, testCfg())

	require.Len(t, out, 1)
	assert.Equal(t, 100.0, out[0].Price)
	assert.Negative(t, out[0].ZScore)
	assert.Equal(t, model.AnomalyLow, out[0].AnomalyType)
}

func TestDetectPriceAnomalies_SampleFloor(t *testing.T) {
	// Nine priced orders is below the ten-sample floor, so the part type
	// has no profile and the extreme price is not flagged.
	var facts []model.OrderFact
	for i := 0; i < 8; i++ {
		facts = append(facts, pricedFact(1, "Bumper", 100))
	}
	facts = append(facts, pricedFact(1, "Bumper", 10000))

	assert.Empty(t, DetectPriceAnomalies(facts, testCfg()))
}

func TestDetectPriceAnomalies_ZeroVariance(t *testing.T) {
	var facts []model.OrderFact
	for i := 0; i < 20; i++ {
		facts = append(facts, pricedFact(1, "Bumper", 250))
	}

	assert.Empty(t, DetectPriceAnomalies(facts, testCfg()))
}

func TestDetectPriceAnomalies_UnpricedExcluded(t *testing.T) {
	// Zero-price rows neither enter the profile nor get scored.
	var facts []model.OrderFact
	for i := 0; i < 11; i++ {
		facts = append(facts, pricedFact(1, "Bumper", 100))
	}
	facts = append(facts, pricedFact(1, "Bumper", 1000))
	facts = append(facts, pricedFact(1, "Bumper", 0))

	out := DetectPriceAnomalies(facts, testCfg())

	require.Len(t, out, 1)
	assert.Equal(t, 1000.0, out[0].Price)
	// Profile unchanged by the zero-price row.
	assert.Equal(t, 175.0, out[0].AvgPrice)
}

func TestDetectPriceAnomalies_OrderedByAbsZAndCapped(t *testing.T) {
	// Two part types, each with one outlier. A single outlier among n-1
	// identical prices scores z = (n-1)/sqrt(n), so the bigger group's
	// outlier carries the larger |z|: 19/sqrt(20) ~= 4.25 vs
	// 11/sqrt(12) ~= 3.18.
	var facts []model.OrderFact
	for i := 0; i < 11; i++ {
		facts = append(facts, pricedFact(1, "Bumper", 100))
	}
	for i := 0; i < 19; i++ {
		facts = append(facts, pricedFact(2, "Headlight", 100))
	}
	facts = append(facts, pricedFact(1, "Bumper", 500))
	facts = append(facts, pricedFact(2, "Headlight", 1000))

	cfg := testCfg()
	out := DetectPriceAnomalies(facts, cfg)
	require.Len(t, out, 2)
	assert.Equal(t, "Headlight", out[0].PartType)
	assert.Equal(t, "Bumper", out[1].PartType)

	cfg.AnomalyMaxRows = 1
	out = DetectPriceAnomalies(facts, cfg)
	require.Len(t, out, 1)
	assert.Equal(t, "Headlight", out[0].PartType)
}

func TestDetectPriceAnomalies_Empty(t *testing.T) {
	assert.Empty(t, DetectPriceAnomalies(nil, testCfg()))
}
