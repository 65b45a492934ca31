package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one product line in a cart; (cart_id, product_id) is unique, so
// re-adding a product raises quantity instead of duplicating the row. The
// stored unit price is advisory display state only; checkout re-resolves it.
type CartItem struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CartID            uuid.UUID `gorm:"column:cart_id;type:uuid;not null;index:idx_cart_items_cart_product,unique,priority:1"`
	TenantID          uuid.UUID `gorm:"column:tenant_id;type:uuid;not null"`
	ProductID         uuid.UUID `gorm:"column:product_id;type:uuid;not null;index:idx_cart_items_cart_product,unique,priority:2"`
	Quantity          int       `gorm:"column:quantity;not null"`
	UnitPriceCents    int       `gorm:"column:unit_price_cents;not null"`
	LineSubtotalCents int       `gorm:"column:line_subtotal_cents;not null"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
