package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/rfigueroa/wholesale-portal-backend/pkg/db/models"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/enums"
)

// CartDTO is the cart read model. Unit prices shown here are advisory:
// checkout re-resolves every price inside its transaction.
type CartDTO struct {
	ID        uuid.UUID        `json:"id"`
	Status    enums.CartStatus `json:"status"`
	Items     []CartItemDTO    `json:"items"`
	ItemCount int              `json:"item_count"`

	SubtotalCents int `json:"subtotal_cents"`
	TaxCents      int `json:"tax_cents"`
	ShippingCents int `json:"shipping_cents"`
	TotalCents    int `json:"total_cents"`

	UpdatedAt time.Time `json:"updated_at"`
}

// CartItemDTO is one cart line with its product snapshot. CaseCount is
// display-only: how many cases the quantity fills, rounded up.
type CartItemDTO struct {
	ID                uuid.UUID `json:"id"`
	ProductID         uuid.UUID `json:"product_id"`
	SKU               string    `json:"sku"`
	Name              string    `json:"name"`
	Quantity          int       `json:"quantity"`
	UnitsPerCase      int       `json:"units_per_case"`
	CaseCount         int       `json:"case_count"`
	UnitPriceCents    int       `json:"unit_price_cents"`
	LineSubtotalCents int       `json:"line_subtotal_cents"`
}

// emptyCartDTO is what callers see before any mutation created a cart row.
func emptyCartDTO() *CartDTO {
	return &CartDTO{Status: enums.CartStatusActive, Items: []CartItemDTO{}}
}

func toDTO(cart *models.Cart, products map[uuid.UUID]models.Product) *CartDTO {
	dto := &CartDTO{
		ID:            cart.ID,
		Status:        cart.Status,
		Items:         make([]CartItemDTO, 0, len(cart.Items)),
		SubtotalCents: cart.SubtotalCents,
		TaxCents:      cart.TaxCents,
		ShippingCents: cart.ShippingCents,
		TotalCents:    cart.TotalCents,
		UpdatedAt:     cart.UpdatedAt,
	}
	for _, item := range cart.Items {
		line := CartItemDTO{
			ID:                item.ID,
			ProductID:         item.ProductID,
			Quantity:          item.Quantity,
			UnitPriceCents:    item.UnitPriceCents,
			LineSubtotalCents: item.LineSubtotalCents,
		}
		if p, ok := products[item.ProductID]; ok {
			line.SKU = p.SKU
			line.Name = p.Name
			line.UnitsPerCase = p.UnitsPerCase
			line.CaseCount = caseCount(item.Quantity, p.UnitsPerCase)
		}
		dto.Items = append(dto.Items, line)
		dto.ItemCount += item.Quantity
	}
	return dto
}

func caseCount(qty, unitsPerCase int) int {
	if unitsPerCase <= 1 {
		return qty
	}
	return (qty + unitsPerCase - 1) / unitsPerCase
}
