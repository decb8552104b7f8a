// Package model defines the order-fact record, filter parameters, and the
// typed result rows produced by each analyzer.
package model

import "time"

// StatusCategory classifies the lifecycle state of a part order.
type StatusCategory string

const (
	StatusComplete  StatusCategory = "Complete"
	StatusCancelled StatusCategory = "Cancelled"
	StatusPending   StatusCategory = "Pending"
)

// OrderFact is one row of the part-order fact stream: a single part ordered
// against a claim, with its dimension names already joined in by the store.
// Nullable dimensions use pointers; a nil SupplierID means the order was
// never assigned to a supplier.
type OrderFact struct {
	ClaimID    *int64 `json:"claim_id"`
	PartTypeID *int64 `json:"part_type_id"`
	PartID     *int64 `json:"part_id"`
	SupplierID *int64 `json:"supplier_id"`
	WorkshopID *int64 `json:"workshop_id"`
	InsurerID  *int64 `json:"insurer_id"`

	ClaimNumber  string `json:"claim_number,omitempty"`
	PartType     string `json:"part_type,omitempty"`
	PartName     string `json:"part_name,omitempty"`
	SupplierName string `json:"supplier_name,omitempty"`
	WorkshopName string `json:"workshop_name,omitempty"`

	// Price is the current order price. Zero means unknown; price-based
	// analyses exclude it.
	Price float64 `json:"price"`

	StatusCategory StatusCategory `json:"status_category"`

	OrderDate    *time.Time `json:"order_date"`
	DeliveryDate *time.Time `json:"delivery_date"`
	DeadlineDate *time.Time `json:"deadline_date"`

	IsAutoAssigned bool `json:"is_auto_assigned"`
	IsAutoQuoted   bool `json:"is_auto_quoted"`

	// QuoteDays is the elapsed quoting time in days, when recorded.
	QuoteDays *float64 `json:"quote_days"`

	// Reason fields signal the cancellation source by presence, not content.
	SupplierCancelReason  *string `json:"supplier_cancel_reason"`
	InsurerReassignReason *string `json:"insurer_reassign_reason"`
	ManualQuoteReason     *string `json:"manual_quote_reason"`
}

// Delivered reports whether the order completed with both dates present,
// i.e. it carries a defined delivery duration.
func (f *OrderFact) Delivered() bool {
	return f.StatusCategory == StatusComplete && f.OrderDate != nil && f.DeliveryDate != nil
}

// FilterSpec scopes a fact fetch to an insurer and/or order-date range.
// The zero value means no filtering. It is an immutable value passed into
// every analyzer invocation so all results for one request are
// filter-consistent.
type FilterSpec struct {
	InsurerID *int64     `json:"insurer_id,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// IsZero reports whether the filter applies no restriction at all.
func (s FilterSpec) IsZero() bool {
	return s.InsurerID == nil && s.StartDate == nil && s.EndDate == nil
}

// Insurer is a dimension lookup row for the insurer filter dropdown.
type Insurer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
