package analytics

import (
	"math"

	"github.com/partsight/insight-cli/internal/config"
	"github.com/partsight/insight-cli/internal/model"
	"github.com/partsight/insight-cli/internal/stats"
)

// Summarize computes the headline counters for the patterns page: how many
// orders are price anomalies, how many suppliers run a high cancellation
// rate, how many claims are complex, and the automation adoption rates.
func Summarize(facts []model.OrderFact, cfg config.AnalyticsConfig) *model.Summary {
	out := &model.Summary{}

	// Anomalous orders against cached part-type profiles.
	profiles := buildPriceProfiles(facts, cfg.AnomalyMinSample)
	for i := range facts {
		f := &facts[i]
		if f.Price <= 0 || f.PartTypeID == nil {
			continue
		}
		prof, ok := profiles[*f.PartTypeID]
		if !ok {
			continue
		}
		if z, ok := stats.ZScore(f.Price, prof.mean, prof.stddev); ok && math.Abs(z) > cfg.AnomalyZCutoff {
			out.PriceAnomalies++
		}
	}

	// Suppliers with a high any-cause cancellation rate. The 10-order floor
	// and 15% cutoff match the headline counter, which is intentionally
	// stricter than the risk scorer's 5-order floor.
	for _, agg := range buildSupplierAggs(facts) {
		if agg.totalOrders >= 10 && float64(agg.cancelled)*100/float64(agg.totalOrders) > 15 {
			out.HighRiskSuppliers++
		}
	}

	// Claims spread wide across parts and suppliers.
	type claimSpread struct {
		parts     int
		suppliers map[int64]struct{}
	}
	claims := make(map[int64]*claimSpread)
	var autoAssigned, autoQuoted int
	for i := range facts {
		f := &facts[i]
		if f.IsAutoAssigned {
			autoAssigned++
		}
		if f.IsAutoQuoted {
			autoQuoted++
		}
		if f.ClaimID == nil {
			continue
		}
		c := claims[*f.ClaimID]
		if c == nil {
			c = &claimSpread{suppliers: make(map[int64]struct{})}
			claims[*f.ClaimID] = c
		}
		c.parts++
		if f.SupplierID != nil {
			c.suppliers[*f.SupplierID] = struct{}{}
		}
	}
	for _, c := range claims {
		if c.parts > 8 && len(c.suppliers) > 4 {
			out.ComplexClaims++
		}
	}

	if len(facts) > 0 {
		out.AutoAssignRate = pct(autoAssigned, len(facts))
		out.AutoQuoteRate = pct(autoQuoted, len(facts))
	}
	return out
}
