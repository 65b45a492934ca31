package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem tracks stock per (tenant, product). Available quantity is
// derived as on_hand - reserved and must never be negative in a committed
// state; only the ledger's guarded adjustments may touch these columns.
type InventoryItem struct {
	TenantID    uuid.UUID `gorm:"column:tenant_id;type:uuid;primaryKey"`
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	OnHandQty   int       `gorm:"column:on_hand_qty;not null;default:0"`
	ReservedQty int       `gorm:"column:reserved_qty;not null;default:0"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// AvailableQty derives the quantity open to new reservations.
func (i InventoryItem) AvailableQty() int {
	return i.OnHandQty - i.ReservedQty
}
