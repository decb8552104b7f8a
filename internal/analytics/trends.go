package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/partsight/insight-cli/internal/config"
	"github.com/partsight/insight-cli/internal/model"
)

// WeeklyTrends aggregates order activity into ISO-week buckets over the
// trailing trend window ending at now. Weeks with zero orders are absent
// from the series; the moving average runs over observed weeks only, with
// no padding and no look-ahead. Output is chronological.
func WeeklyTrends(facts []model.OrderFact, now time.Time, cfg config.AnalyticsConfig) []model.WeeklyTrend {
	cutoff := now.AddDate(0, -cfg.TrendMonths, 0)

	type weekAgg struct {
		orders    int
		claims    map[int64]struct{}
		value     float64
		delivered int
		cancelled int
	}
	weeks := make(map[string]*weekAgg)

	for i := range facts {
		f := &facts[i]
		if f.OrderDate == nil || f.OrderDate.Before(cutoff) {
			continue
		}
		key := weekStart(*f.OrderDate).Format("2006-01-02")
		agg := weeks[key]
		if agg == nil {
			agg = &weekAgg{claims: make(map[int64]struct{})}
			weeks[key] = agg
		}
		agg.orders++
		agg.value += f.Price
		if f.ClaimID != nil {
			agg.claims[*f.ClaimID] = struct{}{}
		}
		switch f.StatusCategory {
		case model.StatusComplete:
			agg.delivered++
		case model.StatusCancelled:
			agg.cancelled++
		}
	}

	keys := make([]string, 0, len(weeks))
	for k := range weeks {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]model.WeeklyTrend, 0, len(keys))
	counts := make([]float64, 0, len(keys))
	for i, k := range keys {
		agg := weeks[k]
		counts = append(counts, float64(agg.orders))

		// Trailing window of at most 4 observed weeks, current inclusive.
		lo := 0
		if i > 3 {
			lo = i - 3
		}
		var sum float64
		for _, c := range counts[lo : i+1] {
			sum += c
		}
		ma4 := int(math.Round(sum / float64(i+1-lo)))

		rate := pct(agg.delivered, agg.orders)
		row := model.WeeklyTrend{
			Week:         k,
			OrderCount:   agg.orders,
			ClaimCount:   len(agg.claims),
			TotalValue:   round2(agg.value),
			Delivered:    agg.delivered,
			Cancelled:    agg.cancelled,
			DeliveryRate: &rate,
			MA4Orders:    ma4,
		}
		if i > 0 {
			change := agg.orders - weeks[keys[i-1]].orders
			row.WowChange = &change
		}
		out = append(out, row)
	}
	return out
}

// weekStart returns the Monday of t's ISO week, truncated to midnight UTC.
func weekStart(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	return d.AddDate(0, 0, -offset)
}
