package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rfigueroa/wholesale-portal-backend/pkg/enums"
)

// Tenant is the isolation boundary. Every other row carries a tenant id and
// every repository predicate includes it; there is no default tenant.
type Tenant struct {
	ID   uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name string    `gorm:"column:name;not null"`
	Slug string    `gorm:"column:slug;not null;uniqueIndex"`

	// Charge settings consumed by the charge calculator.
	Currency                   enums.Currency  `gorm:"column:currency;not null;default:'USD'"`
	TaxRate                    decimal.Decimal `gorm:"column:tax_rate;type:numeric(6,4);not null;default:0"`
	FreeShippingThresholdCents int             `gorm:"column:free_shipping_threshold_cents;not null;default:0"`
	FlatShippingFeeCents       int             `gorm:"column:flat_shipping_fee_cents;not null;default:0"`
	DefaultSampleAllowance     int             `gorm:"column:default_sample_allowance;not null;default:0"`

	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
