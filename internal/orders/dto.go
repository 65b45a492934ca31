package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/rfigueroa/wholesale-portal-backend/pkg/db/models"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/enums"
)

// OrderDTO is the API shape for a created or listed order.
type OrderDTO struct {
	ID          uuid.UUID         `json:"id"`
	OrderNumber string            `json:"order_number"`
	Status      enums.OrderStatus `json:"status"`
	CustomerID  uuid.UUID         `json:"customer_id"`

	SubtotalCents int `json:"subtotal_cents"`
	TaxCents      int `json:"tax_cents"`
	ShippingCents int `json:"shipping_cents"`
	TotalCents    int `json:"total_cents"`

	ShippingAddressRef    *string    `json:"shipping_address_ref,omitempty"`
	BillingAddressRef     *string    `json:"billing_address_ref,omitempty"`
	PaymentRef            *string    `json:"payment_ref,omitempty"`
	Notes                 *string    `json:"notes,omitempty"`
	RequestedDeliveryDate *time.Time `json:"requested_delivery_date,omitempty"`

	Lines     []OrderLineDTO `json:"lines,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// OrderLineDTO is one frozen line of an order.
type OrderLineDTO struct {
	ID             uuid.UUID `json:"id"`
	ProductID      uuid.UUID `json:"product_id"`
	SKU            string    `json:"sku"`
	Name           string    `json:"name"`
	UnitPriceCents int       `json:"unit_price_cents"`
	Quantity       int       `json:"quantity"`
	LineTotalCents int       `json:"line_total_cents"`
}

// ToDTO maps the model, including lines when loaded.
func ToDTO(order *models.Order) *OrderDTO {
	dto := &OrderDTO{
		ID:                    order.ID,
		OrderNumber:           order.OrderNumber,
		Status:                order.Status,
		CustomerID:            order.CustomerID,
		SubtotalCents:         order.SubtotalCents,
		TaxCents:              order.TaxCents,
		ShippingCents:         order.ShippingCents,
		TotalCents:            order.TotalCents,
		ShippingAddressRef:    order.ShippingAddressRef,
		BillingAddressRef:     order.BillingAddressRef,
		PaymentRef:            order.PaymentRef,
		Notes:                 order.Notes,
		RequestedDeliveryDate: order.RequestedDeliveryDate,
		CreatedAt:             order.CreatedAt,
	}
	for _, line := range order.Lines {
		dto.Lines = append(dto.Lines, OrderLineDTO{
			ID:             line.ID,
			ProductID:      line.ProductID,
			SKU:            line.SKU,
			Name:           line.Name,
			UnitPriceCents: line.UnitPriceCents,
			Quantity:       line.Quantity,
			LineTotalCents: line.LineTotalCents,
		})
	}
	return dto
}
