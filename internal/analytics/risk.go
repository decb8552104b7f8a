package analytics

import (
	"math"
	"sort"

	"github.com/partsight/insight-cli/internal/config"
	"github.com/partsight/insight-cli/internal/model"
)

// ScoreSupplierRisk computes the bounded composite risk score and tier for
// every supplier meeting the minimum order floor.
//
// The 2x/3x weighting deliberately penalizes supplier-initiated
// cancellations more than any-cause cancellations: supplier-attributable
// failures are the actionable signal.
func ScoreSupplierRisk(facts []model.OrderFact, cfg config.AnalyticsConfig) []model.SupplierRisk {
	return scoreSupplierAggs(buildSupplierAggs(facts), cfg)
}

func scoreSupplierAggs(aggs []*supplierAgg, cfg config.AnalyticsConfig) []model.SupplierRisk {
	var out []model.SupplierRisk
	for _, agg := range aggs {
		if agg.totalOrders < cfg.RiskMinOrders {
			continue
		}

		total := float64(agg.totalOrders)
		cancelRate := float64(agg.cancelled) * 100 / total
		supplierCancelRate := float64(agg.supplierCancels) * 100 / total
		avgDays := agg.avgDeliveryDays()

		raw := cancelRate*2 + supplierCancelRate*3 + deliveryPenalty(avgDays)
		score := clampInt(int(math.Round(raw)), 0, 100)

		row := model.SupplierRisk{
			SupplierName:       agg.name,
			TotalOrders:        agg.totalOrders,
			Delivered:          agg.delivered,
			Cancelled:          agg.cancelled,
			SupplierCancels:    agg.supplierCancels,
			DeliveryRate:       pct(agg.delivered, agg.totalOrders),
			CancelRate:         round1(cancelRate),
			SupplierCancelRate: round1(supplierCancelRate),
			TotalValue:         round2(agg.totalValue),
			RiskScore:          score,
			RiskTier:           riskTier(cancelRate, supplierCancelRate),
		}
		if avgDays != nil {
			v := round1(*avgDays)
			row.AvgDeliveryDays = &v
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RiskScore != out[j].RiskScore {
			return out[i].RiskScore > out[j].RiskScore
		}
		return out[i].TotalOrders > out[j].TotalOrders
	})
	if len(out) > cfg.RiskMaxRows {
		out = out[:cfg.RiskMaxRows]
	}
	return out
}

// deliveryPenalty maps mean delivery duration onto the stepped score
// penalty. An undefined duration carries no penalty.
func deliveryPenalty(avgDays *float64) float64 {
	if avgDays == nil {
		return 0
	}
	switch {
	case *avgDays > 7:
		return 20
	case *avgDays > 5:
		return 10
	case *avgDays > 3:
		return 5
	default:
		return 0
	}
}

func riskTier(cancelRate, supplierCancelRate float64) model.RiskTier {
	switch {
	case cancelRate < 5 && supplierCancelRate < 3:
		return model.RiskLow
	case cancelRate < 15 && supplierCancelRate < 10:
		return model.RiskMedium
	default:
		return model.RiskHigh
	}
}
