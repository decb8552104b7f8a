package analytics

import (
	"sort"

	"github.com/partsight/insight-cli/internal/model"
	"github.com/partsight/insight-cli/internal/stats"
)

// supplierAgg is the per-supplier rollup shared by the risk scorer and the
// segmentation engine. It is built in a single pass over the fact set so
// the two analyzers never recompute per-row aggregates independently.
type supplierAgg struct {
	id   int64
	name string

	totalOrders     int
	delivered       int
	cancelled       int
	supplierCancels int

	deliveryDaysSum int // over completed orders with both dates
	deliveryDaysN   int

	priceSum float64 // over orders with price > 0
	priceN   int

	totalValue float64

	partTypes map[int64]struct{}
	workshops map[int64]struct{}
}

// avgDeliveryDays returns the mean delivery duration, or nil when the
// supplier has no completed deliveries.
func (a *supplierAgg) avgDeliveryDays() *float64 {
	if a.deliveryDaysN == 0 {
		return nil
	}
	v := float64(a.deliveryDaysSum) / float64(a.deliveryDaysN)
	return &v
}

// avgPrice returns the mean priced-order value, or nil when no order
// carries a price.
func (a *supplierAgg) avgPrice() *float64 {
	if a.priceN == 0 {
		return nil
	}
	v := a.priceSum / float64(a.priceN)
	return &v
}

// buildSupplierAggs rolls the fact set up by supplier. Records without a
// supplier are excluded (MissingDimension: the order was never assigned).
// The result is ordered by supplier id for deterministic iteration.
func buildSupplierAggs(facts []model.OrderFact) []*supplierAgg {
	byID := make(map[int64]*supplierAgg)

	for i := range facts {
		f := &facts[i]
		if f.SupplierID == nil {
			continue
		}
		agg := byID[*f.SupplierID]
		if agg == nil {
			agg = &supplierAgg{
				id:        *f.SupplierID,
				name:      displayName(f.SupplierName),
				partTypes: make(map[int64]struct{}),
				workshops: make(map[int64]struct{}),
			}
			byID[*f.SupplierID] = agg
		}

		agg.totalOrders++
		agg.totalValue += f.Price
		if f.Price > 0 {
			agg.priceSum += f.Price
			agg.priceN++
		}

		switch f.StatusCategory {
		case model.StatusComplete:
			agg.delivered++
		case model.StatusCancelled:
			agg.cancelled++
		}
		// Presence of the reason is the signal, independent of status.
		if f.SupplierCancelReason != nil {
			agg.supplierCancels++
		}

		if f.Delivered() {
			agg.deliveryDaysSum += stats.DaysBetween(*f.OrderDate, *f.DeliveryDate)
			agg.deliveryDaysN++
		}

		if f.PartTypeID != nil {
			agg.partTypes[*f.PartTypeID] = struct{}{}
		}
		if f.WorkshopID != nil {
			agg.workshops[*f.WorkshopID] = struct{}{}
		}
	}

	aggs := make([]*supplierAgg, 0, len(byID))
	for _, agg := range byID {
		aggs = append(aggs, agg)
	}
	sort.Slice(aggs, func(i, j int) bool { return aggs[i].id < aggs[j].id })
	return aggs
}
