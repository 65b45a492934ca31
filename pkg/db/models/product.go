package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a sellable catalog entry. Orders snapshot sku/name/price at
// checkout, so later product edits never rewrite history.
type Product struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID       uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;index:idx_products_tenant_sku,unique,priority:1"`
	SKU            string    `gorm:"column:sku;not null;index:idx_products_tenant_sku,unique,priority:2"`
	Name           string    `gorm:"column:name;not null"`
	Category       string    `gorm:"column:category;not null;default:''"`
	Unit           string    `gorm:"column:unit;not null;default:'each'"`
	UnitsPerCase   int       `gorm:"column:units_per_case;not null;default:1"`
	BasePriceCents int       `gorm:"column:base_price_cents;not null"`
	IsActive       bool      `gorm:"column:is_active;not null;default:true"`

	Inventory *InventoryItem `gorm:"foreignKey:ProductID;references:ID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
