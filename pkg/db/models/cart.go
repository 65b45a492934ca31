package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rfigueroa/wholesale-portal-backend/pkg/enums"
)

// Cart is the mutable pre-order state for one portal user within a tenant.
// At most one active cart exists per user; a cart is created lazily on first
// mutation and is never deleted, only cleared or converted. Totals are always
// recomputed from the items after every mutation, never patched in place.
type Cart struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	TenantID     uuid.UUID        `gorm:"column:tenant_id;type:uuid;not null;index"`
	PortalUserID uuid.UUID        `gorm:"column:portal_user_id;type:uuid;not null;index"`
	Status       enums.CartStatus `gorm:"column:status;not null;default:'active'"`
	OrderID      *uuid.UUID       `gorm:"column:order_id;type:uuid"`

	SubtotalCents int `gorm:"column:subtotal_cents;not null;default:0"`
	TaxCents      int `gorm:"column:tax_cents;not null;default:0"`
	ShippingCents int `gorm:"column:shipping_cents;not null;default:0"`
	TotalCents    int `gorm:"column:total_cents;not null;default:0"`

	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`

	ConvertedAt *time.Time `gorm:"column:converted_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
