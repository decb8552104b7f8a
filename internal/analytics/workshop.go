package analytics

import (
	"sort"
	"time"

	"github.com/partsight/insight-cli/internal/config"
	"github.com/partsight/insight-cli/internal/model"
	"github.com/partsight/insight-cli/internal/stats"
)

// AnalyzeWorkshopDemand classifies each workshop's ordering pattern over the
// trailing demand window by the volatility of its weekly order volume
// (coefficient of variation). Workshops active in fewer than the minimum
// number of weeks are dropped. Output is ordered by total orders descending
// and capped.
func AnalyzeWorkshopDemand(facts []model.OrderFact, now time.Time, cfg config.AnalyticsConfig) []model.WorkshopDemand {
	cutoff := now.AddDate(0, -cfg.DemandMonths, 0)

	type shopAgg struct {
		name   string
		weeks  map[string]int // week start -> order count
		value  float64
		orders int
	}
	shops := make(map[int64]*shopAgg)

	for i := range facts {
		f := &facts[i]
		if f.WorkshopID == nil || f.OrderDate == nil || f.OrderDate.Before(cutoff) {
			continue
		}
		agg := shops[*f.WorkshopID]
		if agg == nil {
			agg = &shopAgg{name: displayName(f.WorkshopName), weeks: make(map[string]int)}
			shops[*f.WorkshopID] = agg
		}
		agg.weeks[weekStart(*f.OrderDate).Format("2006-01-02")]++
		agg.orders++
		agg.value += f.Price
	}

	var out []model.WorkshopDemand
	for _, agg := range shops {
		if len(agg.weeks) < cfg.DemandMinWeeks {
			continue
		}
		counts := make([]float64, 0, len(agg.weeks))
		for _, c := range agg.weeks {
			counts = append(counts, float64(c))
		}
		avg := stats.Mean(counts)
		sd := stats.StdDev(counts)

		row := model.WorkshopDemand{
			WorkshopName:    agg.name,
			ActiveWeeks:     len(agg.weeks),
			TotalOrders:     agg.orders,
			AvgWeeklyOrders: round1(avg),
			StdOrders:       round2(sd),
			TotalValue:      round2(agg.value),
		}
		if avg > 0 {
			cv := round2(sd / avg)
			row.Volatility = &cv
			row.DemandPattern = demandPattern(cv)
		} else {
			row.DemandPattern = demandPattern(0)
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalOrders != out[j].TotalOrders {
			return out[i].TotalOrders > out[j].TotalOrders
		}
		return out[i].WorkshopName < out[j].WorkshopName
	})
	if len(out) > cfg.DemandMaxRows {
		out = out[:cfg.DemandMaxRows]
	}
	return out
}

func demandPattern(cv float64) model.DemandPattern {
	switch {
	case cv < 0.3:
		return model.DemandStable
	case cv < 0.6:
		return model.DemandModerate
	default:
		return model.DemandVolatile
	}
}
