package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rfigueroa/wholesale-portal-backend/pkg/enums"
)

// Order is the immutable result of a checkout. Totals and lines are a
// denormalized snapshot taken inside the checkout transaction; only Status
// progresses afterwards.
type Order struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	TenantID     uuid.UUID         `gorm:"column:tenant_id;type:uuid;not null;index:idx_orders_tenant_number,unique,priority:1"`
	OrderNumber  string            `gorm:"column:order_number;not null;index:idx_orders_tenant_number,unique,priority:2"`
	PortalUserID uuid.UUID         `gorm:"column:portal_user_id;type:uuid;not null;index"`
	CustomerID   uuid.UUID         `gorm:"column:customer_id;type:uuid;not null"`
	Status       enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`

	SubtotalCents int `gorm:"column:subtotal_cents;not null"`
	TaxCents      int `gorm:"column:tax_cents;not null"`
	ShippingCents int `gorm:"column:shipping_cents;not null"`
	TotalCents    int `gorm:"column:total_cents;not null"`

	ShippingAddressRef    *string    `gorm:"column:shipping_address_ref"`
	BillingAddressRef     *string    `gorm:"column:billing_address_ref"`
	PaymentRef            *string    `gorm:"column:payment_ref"`
	Notes                 *string    `gorm:"column:notes"`
	RequestedDeliveryDate *time.Time `gorm:"column:requested_delivery_date"`

	Lines []OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
