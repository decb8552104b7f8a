package analytics

import (
	"sort"
	"time"

	"github.com/partsight/insight-cli/internal/config"
	"github.com/partsight/insight-cli/internal/model"
	"github.com/partsight/insight-cli/internal/stats"
)

type claimAgg struct {
	claimNumber string
	parts       int
	partTypes   map[int64]struct{}
	suppliers   map[int64]struct{}
	value       float64
	delivered   int
	cancelled   int

	deliveryDaysSum int
	deliveryDaysN   int

	minOrderDate    *time.Time
	maxDeliveryDate *time.Time
}

// ScoreClaimComplexity scores multi-part claims by how hard they are to
// fulfil: part count, part-type and supplier spread, and end-to-end cycle
// time. Single-part claims are skipped. Output is ordered by complexity
// score descending and capped.
func ScoreClaimComplexity(facts []model.OrderFact, cfg config.AnalyticsConfig) []model.ClaimComplexity {
	claims := make(map[int64]*claimAgg)
	for i := range facts {
		f := &facts[i]
		if f.ClaimID == nil {
			continue
		}
		agg := claims[*f.ClaimID]
		if agg == nil {
			agg = &claimAgg{
				claimNumber: f.ClaimNumber,
				partTypes:   make(map[int64]struct{}),
				suppliers:   make(map[int64]struct{}),
			}
			claims[*f.ClaimID] = agg
		}
		agg.parts++
		agg.value += f.Price
		if f.PartTypeID != nil {
			agg.partTypes[*f.PartTypeID] = struct{}{}
		}
		if f.SupplierID != nil {
			agg.suppliers[*f.SupplierID] = struct{}{}
		}
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
		if f.OrderDate != nil && (agg.minOrderDate == nil || f.OrderDate.Before(*agg.minOrderDate)) {
			agg.minOrderDate = f.OrderDate
		}
		if f.DeliveryDate != nil && (agg.maxDeliveryDate == nil || f.DeliveryDate.After(*agg.maxDeliveryDate)) {
			agg.maxDeliveryDate = f.DeliveryDate
		}
	}

	var out []model.ClaimComplexity
	for _, agg := range claims {
		if agg.parts < 2 {
			continue
		}

		score := agg.parts*5 + len(agg.partTypes)*10 + len(agg.suppliers)*15
		if score > 100 {
			score = 100
		}

		row := model.ClaimComplexity{
			ClaimNumber:     agg.claimNumber,
			PartCount:       agg.parts,
			UniquePartTypes: len(agg.partTypes),
			UniqueSuppliers: len(agg.suppliers),
			TotalValue:      round2(agg.value),
			Delivered:       agg.delivered,
			Cancelled:       agg.cancelled,
			FulfillmentRate: pct(agg.delivered, agg.parts),
			ComplexityScore: score,
			ComplexityTier:  complexityTier(agg.parts, len(agg.suppliers)),
		}
		if agg.deliveryDaysN > 0 {
			v := round1(float64(agg.deliveryDaysSum) / float64(agg.deliveryDaysN))
			row.AvgDeliveryDays = &v
		}
		if agg.minOrderDate != nil && agg.maxDeliveryDate != nil {
			cycle := stats.DaysBetween(*agg.minOrderDate, *agg.maxDeliveryDate)
			row.CycleTimeDays = &cycle
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ComplexityScore != out[j].ComplexityScore {
			return out[i].ComplexityScore > out[j].ComplexityScore
		}
		if out[i].TotalValue != out[j].TotalValue {
			return out[i].TotalValue > out[j].TotalValue
		}
		return out[i].ClaimNumber < out[j].ClaimNumber
	})
	if len(out) > cfg.ComplexityMaxRows {
		out = out[:cfg.ComplexityMaxRows]
	}
	return out
}

func complexityTier(parts, suppliers int) model.ComplexityTier {
	switch {
	case parts <= 3 && suppliers <= 2:
		return model.ComplexitySimple
	case parts <= 8 && suppliers <= 4:
		return model.ComplexityModerate
	default:
		return model.ComplexityComplex
	}
}
