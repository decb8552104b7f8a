package analytics

import (
	"sort"

	"github.com/partsight/insight-cli/internal/config"
	"github.com/partsight/insight-cli/internal/model"
)

// ClassifyCancelSource attributes a cancellation to the party that caused
// it, by which reason field is present, checked in priority order.
func ClassifyCancelSource(f *model.OrderFact) model.CancelSource {
	switch {
	case f.SupplierCancelReason != nil:
		return model.CancelBySupplier
	case f.InsurerReassignReason != nil:
		return model.CancelByInsurer
	case f.ManualQuoteReason != nil:
		return model.CancelByManual
	default:
		return model.CancelByOther
	}
}

// AnalyzeCancellations builds the three cancellation views: attribution by
// source, the top supplier-stated reasons, and per-supplier cancel rates
// for suppliers above the order floor.
func AnalyzeCancellations(facts []model.OrderFact, cfg config.AnalyticsConfig) *model.CancellationAnalysis {
	out := &model.CancellationAnalysis{}

	// Attribution by source, over cancelled orders only.
	sourceCounts := make(map[model.CancelSource]int)
	reasonCounts := make(map[string]int)
	var cancelledTotal int
	for i := range facts {
		f := &facts[i]
		if f.StatusCategory != model.StatusCancelled {
			continue
		}
		cancelledTotal++
		sourceCounts[ClassifyCancelSource(f)]++
		if f.SupplierCancelReason != nil {
			reasonCounts[*f.SupplierCancelReason]++
		}
	}

	for source, count := range sourceCounts {
		out.BySource = append(out.BySource, model.CancellationBySource{
			CancelSource: source,
			CancelCount:  count,
			PctOfTotal:   pct(count, cancelledTotal),
		})
	}
	sort.SliceStable(out.BySource, func(i, j int) bool {
		if out.BySource[i].CancelCount != out.BySource[j].CancelCount {
			return out.BySource[i].CancelCount > out.BySource[j].CancelCount
		}
		return out.BySource[i].CancelSource < out.BySource[j].CancelSource
	})

	for reason, count := range reasonCounts {
		out.TopReasons = append(out.TopReasons, model.CancelReasonCount{Reason: reason, Count: count})
	}
	sort.SliceStable(out.TopReasons, func(i, j int) bool {
		if out.TopReasons[i].Count != out.TopReasons[j].Count {
			return out.TopReasons[i].Count > out.TopReasons[j].Count
		}
		return out.TopReasons[i].Reason < out.TopReasons[j].Reason
	})
	if len(out.TopReasons) > cfg.CancelReasonMaxRows {
		out.TopReasons = out.TopReasons[:cfg.CancelReasonMaxRows]
	}

	// Per-supplier cancel rates, suppliers above the order floor with at
	// least one cancellation.
	for _, agg := range buildSupplierAggs(facts) {
		if agg.totalOrders < cfg.CancelSupplierMinOrders || agg.cancelled == 0 {
			continue
		}
		out.BySupplier = append(out.BySupplier, model.SupplierCancelRate{
			SupplierName: agg.name,
			TotalOrders:  agg.totalOrders,
			Cancelled:    agg.cancelled,
			CancelRate:   pct(agg.cancelled, agg.totalOrders),
		})
	}
	sort.SliceStable(out.BySupplier, func(i, j int) bool {
		if out.BySupplier[i].CancelRate != out.BySupplier[j].CancelRate {
			return out.BySupplier[i].CancelRate > out.BySupplier[j].CancelRate
		}
		return out.BySupplier[i].TotalOrders > out.BySupplier[j].TotalOrders
	})
	if len(out.BySupplier) > cfg.CancelSupplierMaxRows {
		out.BySupplier = out.BySupplier[:cfg.CancelSupplierMaxRows]
	}

	return out
}
