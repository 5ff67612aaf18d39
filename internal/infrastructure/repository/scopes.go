package repository

import "gorm.io/gorm"

// ActiveInvoices filters out soft-deleted invoices. Deletion here is a
// reversible marker column, not a GORM soft delete, because a deleted
// invoice can be restored with its note and must keep occupying its
// invoice number.
func ActiveInvoices(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at_ms IS NULL")
}

// DateBetween filters invoices to startTime <= date <= endTime, both
// bounds in epoch milliseconds and inclusive.
func DateBetween(startTime, endTime int64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("date >= ? AND date <= ?", startTime, endTime)
	}
}
