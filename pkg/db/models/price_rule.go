package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rfigueroa/wholesale-portal-backend/pkg/enums"
)

// PriceRule is one rung of the pricing waterfall. Customer-tier rows carry a
// customer id; price-list rows apply tenant-wide and leave it null. The base
// price lives on the product and needs no rule row.
type PriceRule struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID       uuid.UUID       `gorm:"column:tenant_id;type:uuid;not null;index"`
	ProductID      uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index"`
	CustomerID     *uuid.UUID      `gorm:"column:customer_id;type:uuid"`
	Tier           enums.PriceTier `gorm:"column:tier;not null"`
	UnitPriceCents int             `gorm:"column:unit_price_cents;not null"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
