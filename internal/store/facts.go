package store

import (
	"database/sql"

	"github.com/partsight/insight-cli/internal/db"
	"github.com/partsight/insight-cli/internal/model"
)

// Both drivers select fact columns in this order; scanFact is the single
// place that knows it.
//
//	claim_id, part_type_id, part_id, supplier_id, workshop_id, insurer_id,
//	claim_number, part_type, part_name, supplier_name, workshop_name,
//	price, status_category,
//	order_date, delivery_date, deadline_date,
//	is_auto_assigned, is_auto_quoted, quote_days,
//	supplier_cancel_reason, insurer_reassign_reason, manual_quote_reason
func scanFact(s scanner) (model.OrderFact, error) {
	var f model.OrderFact
	var claimID, partTypeID, partID, supplierID, workshopID, insurerID sql.NullInt64
	var claimNumber, partType, partName, supplierName, workshopName sql.NullString
	var status sql.NullString
	var orderDate, deliveryDate, deadlineDate sql.NullTime
	var quoteDays sql.NullFloat64
	var supplierCancel, insurerReassign, manualQuote sql.NullString

	if err := s.Scan(
		&claimID, &partTypeID, &partID, &supplierID, &workshopID, &insurerID,
		&claimNumber, &partType, &partName, &supplierName, &workshopName,
		&f.Price, &status,
		&orderDate, &deliveryDate, &deadlineDate,
		&f.IsAutoAssigned, &f.IsAutoQuoted, &quoteDays,
		&supplierCancel, &insurerReassign, &manualQuote,
	); err != nil {
		return f, err
	}

	f.ClaimID = db.Int64Ptr(claimID)
	f.PartTypeID = db.Int64Ptr(partTypeID)
	f.PartID = db.Int64Ptr(partID)
	f.SupplierID = db.Int64Ptr(supplierID)
	f.WorkshopID = db.Int64Ptr(workshopID)
	f.InsurerID = db.Int64Ptr(insurerID)

	f.ClaimNumber = claimNumber.String
	f.PartType = partType.String
	f.PartName = partName.String
	f.SupplierName = supplierName.String
	f.WorkshopName = workshopName.String

	f.StatusCategory = model.StatusCategory(status.String)

	f.OrderDate = db.TimePtr(orderDate)
	f.DeliveryDate = db.TimePtr(deliveryDate)
	f.DeadlineDate = db.TimePtr(deadlineDate)

	f.QuoteDays = db.Float64Ptr(quoteDays)

	f.SupplierCancelReason = db.StringPtr(supplierCancel)
	f.InsurerReassignReason = db.StringPtr(insurerReassign)
	f.ManualQuoteReason = db.StringPtr(manualQuote)

	return f, nil
}
