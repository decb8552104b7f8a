package analytics

import (
	"sort"

	"github.com/partsight/insight-cli/internal/model"
	"github.com/partsight/insight-cli/internal/stats"
)

// ClassifyAutomation assigns an order its mutually exclusive automation
// level, evaluated in priority order.
func ClassifyAutomation(f *model.OrderFact) model.AutomationLevel {
	switch {
	case f.IsAutoAssigned && f.IsAutoQuoted:
		return model.AutomationFull
	case f.IsAutoAssigned:
		return model.AutomationAssignOnly
	case f.IsAutoQuoted:
		return model.AutomationQuoteOnly
	default:
		return model.AutomationManual
	}
}

// AnalyzeAutomationImpact compares outcome metrics across automation levels.
// Only levels present in the fact set appear; output is ordered by order
// count descending.
func AnalyzeAutomationImpact(facts []model.OrderFact) []model.AutomationImpact {
	type levelAgg struct {
		orders    int
		delivered int
		cancelled int

		deliveryDaysSum int
		deliveryDaysN   int

		priceSum float64
		priceN   int

		quoteDaysSum float64
		quoteDaysN   int
	}
	levels := make(map[model.AutomationLevel]*levelAgg)

	for i := range facts {
		f := &facts[i]
		agg := levels[ClassifyAutomation(f)]
		if agg == nil {
			agg = &levelAgg{}
			levels[ClassifyAutomation(f)] = agg
		}
		agg.orders++
		switch f.StatusCategory {
		case model.StatusComplete:
			agg.delivered++
		case model.StatusCancelled:
			agg.cancelled++
		}
		if f.Delivered() {
			agg.deliveryDaysSum += stats.DaysBetween(*f.OrderDate, *f.DeliveryDate)
			agg.deliveryDaysN++
		}
		if f.Price > 0 {
			agg.priceSum += f.Price
			agg.priceN++
		}
		if f.QuoteDays != nil {
			agg.quoteDaysSum += *f.QuoteDays
			agg.quoteDaysN++
		}
	}

	total := len(facts)
	out := make([]model.AutomationImpact, 0, len(levels))
	for level, agg := range levels {
		row := model.AutomationImpact{
			AutomationLevel: level,
			OrderCount:      agg.orders,
			PctOfTotal:      pct(agg.orders, total),
			Delivered:       agg.delivered,
			Cancelled:       agg.cancelled,
		}
		rate := pct(agg.delivered, agg.orders)
		row.DeliveryRate = &rate
		if agg.deliveryDaysN > 0 {
			v := round1(float64(agg.deliveryDaysSum) / float64(agg.deliveryDaysN))
			row.AvgDeliveryDays = &v
		}
		if agg.priceN > 0 {
			v := round2(agg.priceSum / float64(agg.priceN))
			row.AvgPrice = &v
		}
		if agg.quoteDaysN > 0 {
			v := round1(agg.quoteDaysSum / float64(agg.quoteDaysN))
			row.AvgQuoteDays = &v
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OrderCount != out[j].OrderCount {
			return out[i].OrderCount > out[j].OrderCount
		}
		return out[i].AutomationLevel < out[j].AutomationLevel
	})
	return out
}
