package analytics

import (
	"sort"

	"github.com/partsight/insight-cli/internal/config"
	"github.com/partsight/insight-cli/internal/model"
	"github.com/partsight/insight-cli/internal/stats"
)

// ForecastDeliveryTimes computes distributional delivery-time statistics per
// part type over completed orders. Part types with fewer than the minimum
// samples are dropped entirely; percentile estimates on tiny groups are
// noise. Output is ordered by average days descending so the slowest
// categories surface first.
func ForecastDeliveryTimes(facts []model.OrderFact, cfg config.AnalyticsConfig) []model.DeliveryForecast {
	days := make(map[int64][]float64)
	names := make(map[int64]string)
	for i := range facts {
		f := &facts[i]
		if !f.Delivered() || f.PartTypeID == nil {
			continue
		}
		days[*f.PartTypeID] = append(days[*f.PartTypeID], float64(stats.DaysBetween(*f.OrderDate, *f.DeliveryDate)))
		if names[*f.PartTypeID] == "" {
			names[*f.PartTypeID] = f.PartType
		}
	}

	var out []model.DeliveryForecast
	for id, xs := range days {
		if len(xs) < cfg.ForecastMinSample {
			continue
		}
		sort.Float64s(xs)
		out = append(out, model.DeliveryForecast{
			PartType:   displayName(names[id]),
			SampleSize: len(xs),
			AvgDays:    round1(stats.Mean(xs)),
			MedianDays: stats.Percentile(xs, 0.5),
			MinDays:    int(xs[0]),
			MaxDays:    int(xs[len(xs)-1]),
			P25Days:    stats.Percentile(xs, 0.25),
			P75Days:    stats.Percentile(xs, 0.75),
			P90Days:    stats.Percentile(xs, 0.90),
			StdDev:     round2(stats.StdDev(xs)),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AvgDays != out[j].AvgDays {
			return out[i].AvgDays > out[j].AvgDays
		}
		return out[i].PartType < out[j].PartType
	})
	return out
}
