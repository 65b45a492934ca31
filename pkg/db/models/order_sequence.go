package models

import "github.com/google/uuid"

// OrderSequence backs the per-tenant order number generator. One row per
// (tenant, year); the row is incremented inside the checkout transaction so
// numbers are unique and monotonic per tenant. Gaps after aborted checkouts
// are expected.
type OrderSequence struct {
	TenantID  uuid.UUID `gorm:"column:tenant_id;type:uuid;primaryKey"`
	Year      int       `gorm:"column:year;primaryKey"`
	LastValue int64     `gorm:"column:last_value;not null;default:0"`
}
