package analytics

import (
	"math"
	"sort"

	"github.com/partsight/insight-cli/internal/config"
	"github.com/partsight/insight-cli/internal/model"
	"github.com/partsight/insight-cli/internal/stats"
)

// priceProfile is the cached per-part-type price distribution. Profiles are
// built once, then the fact set is streamed against them; no per-row
// recomputation.
type priceProfile struct {
	partType string
	mean     float64
	stddev   float64
	n        int
}

// DetectPriceAnomalies flags orders whose price deviates more than the
// configured z-score cutoff from their part-type's price profile. Part types
// with fewer than the minimum priced samples, or with zero price variance,
// contribute no anomalies. Rows are ordered by |z| descending and capped.
func DetectPriceAnomalies(facts []model.OrderFact, cfg config.AnalyticsConfig) []model.PriceAnomaly {
	profiles := buildPriceProfiles(facts, cfg.AnomalyMinSample)

	var out []model.PriceAnomaly
	for i := range facts {
		f := &facts[i]
		if f.Price <= 0 || f.PartTypeID == nil {
			continue
		}
		prof, ok := profiles[*f.PartTypeID]
		if !ok {
			continue
		}
		z, ok := stats.ZScore(f.Price, prof.mean, prof.stddev)
		if !ok || math.Abs(z) <= cfg.AnomalyZCutoff {
			continue
		}

		anomalyType := model.AnomalyHigh
		if z < 0 {
			anomalyType = model.AnomalyLow
		}
		out = append(out, model.PriceAnomaly{
			PartType:     prof.partType,
			PartName:     displayName(f.PartName),
			SupplierName: displayName(f.SupplierName),
			ClaimNumber:  f.ClaimNumber,
			Price:        f.Price,
			AvgPrice:     round2(prof.mean),
			StdDev:       round2(prof.stddev),
			ZScore:       round2(z),
			AnomalyType:  anomalyType,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].ZScore) > math.Abs(out[j].ZScore)
	})
	if len(out) > cfg.AnomalyMaxRows {
		out = out[:cfg.AnomalyMaxRows]
	}
	return out
}

// buildPriceProfiles groups priced orders by part type and keeps only
// groups meeting the sample-size floor with non-zero variance.
func buildPriceProfiles(facts []model.OrderFact, minSample int) map[int64]priceProfile {
	prices := make(map[int64][]float64)
	names := make(map[int64]string)
	for i := range facts {
		f := &facts[i]
		if f.Price <= 0 || f.PartTypeID == nil {
			continue
		}
		prices[*f.PartTypeID] = append(prices[*f.PartTypeID], f.Price)
		if names[*f.PartTypeID] == "" {
			names[*f.PartTypeID] = f.PartType
		}
	}

	profiles := make(map[int64]priceProfile, len(prices))
	for id, xs := range prices {
		if len(xs) < minSample {
			continue
		}
		sd := stats.StdDev(xs)
		if sd == 0 {
			continue
		}
		profiles[id] = priceProfile{
			partType: displayName(names[id]),
			mean:     stats.Mean(xs),
			stddev:   sd,
			n:        len(xs),
		}
	}
	return profiles
}
