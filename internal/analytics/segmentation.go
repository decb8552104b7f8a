package analytics

import (
	"sort"

	"github.com/partsight/insight-cli/internal/config"
	"github.com/partsight/insight-cli/internal/model"
)

// SegmentSuppliers tiers each qualifying supplier along three independent,
// non-exclusive axes: delivery performance, catalog/geographic reach, and
// value contribution. Output is sorted by total value descending.
//
// The value tier has no upstream formula; the policy here bands suppliers
// by their share of the segmented population's total order value, with the
// band thresholds configurable.
func SegmentSuppliers(facts []model.OrderFact, cfg config.AnalyticsConfig) []model.SupplierSegment {
	aggs := buildSupplierAggs(facts)

	var qualified []*supplierAgg
	var valueTotal float64
	for _, agg := range aggs {
		if agg.totalOrders < cfg.SegmentMinOrders {
			continue
		}
		qualified = append(qualified, agg)
		valueTotal += agg.totalValue
	}

	out := make([]model.SupplierSegment, 0, len(qualified))
	for _, agg := range qualified {
		deliveryRate := pct(agg.delivered, agg.totalOrders)
		avgDays := agg.avgDeliveryDays()

		var share float64
		if valueTotal > 0 {
			share = agg.totalValue * 100 / valueTotal
		}

		row := model.SupplierSegment{
			SupplierName:    agg.name,
			TotalOrders:     agg.totalOrders,
			DeliveryRate:    deliveryRate,
			TotalValue:      round2(agg.totalValue),
			PartTypesServed: len(agg.partTypes),
			WorkshopsServed: len(agg.workshops),
			PerformanceTier: performanceTier(deliveryRate, avgDays, agg.totalOrders),
			ReachTier:       reachTier(len(agg.partTypes), len(agg.workshops)),
			ValueTier:       valueTier(share, cfg),
			ValueSharePct:   round1(share),
		}
		if avg := agg.avgPrice(); avg != nil {
			row.AvgPrice = round2(*avg)
		}
		if avgDays != nil {
			v := round1(*avgDays)
			row.AvgDeliveryDays = &v
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalValue != out[j].TotalValue {
			return out[i].TotalValue > out[j].TotalValue
		}
		return out[i].SupplierName < out[j].SupplierName
	})
	return out
}

// performanceTier checks tiers in priority order; first match wins. An
// undefined delivery duration fails the tiers that bound it.
func performanceTier(deliveryRate float64, avgDays *float64, totalOrders int) model.PerformanceTier {
	switch {
	case deliveryRate >= 90 && avgDays != nil && *avgDays <= 3 && totalOrders >= 100:
		return model.TierPremium
	case deliveryRate >= 80 && avgDays != nil && *avgDays <= 5:
		return model.TierReliable
	case deliveryRate >= 60:
		return model.TierStandard
	default:
		return model.TierUnderperforming
	}
}

func reachTier(partTypes, workshops int) model.ReachTier {
	switch {
	case partTypes >= 5 && workshops >= 10:
		return model.ReachBroad
	case partTypes >= 3 || workshops >= 5:
		return model.ReachModerate
	default:
		return model.ReachSpecialized
	}
}

func valueTier(sharePct float64, cfg config.AnalyticsConfig) model.ValueTier {
	switch {
	case sharePct >= cfg.KeyAccountSharePct:
		return model.ValueKeyAccount
	case sharePct >= cfg.GrowthSharePct:
		return model.ValueGrowth
	default:
		return model.ValueEmerging
	}
}
