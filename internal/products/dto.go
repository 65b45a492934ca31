package product

import (
	"github.com/google/uuid"

	"github.com/rfigueroa/wholesale-portal-backend/pkg/db/models"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/enums"
)

// ProductDTO is the catalog read model: the product plus the effective
// price the caller would pay and current availability.
type ProductDTO struct {
	ID                  uuid.UUID       `json:"id"`
	SKU                 string          `json:"sku"`
	Name                string          `json:"name"`
	Category            string          `json:"category"`
	Unit                string          `json:"unit"`
	UnitsPerCase        int             `json:"units_per_case"`
	BasePriceCents      int             `json:"base_price_cents"`
	EffectivePriceCents int             `json:"effective_price_cents"`
	PriceTier           enums.PriceTier `json:"price_tier"`
	AvailableQty        int             `json:"available_qty"`
}

func toDTO(row models.Product, priceCents int, tier enums.PriceTier, availableQty int) ProductDTO {
	return ProductDTO{
		ID:                  row.ID,
		SKU:                 row.SKU,
		Name:                row.Name,
		Category:            row.Category,
		Unit:                row.Unit,
		UnitsPerCase:        row.UnitsPerCase,
		BasePriceCents:      row.BasePriceCents,
		EffectivePriceCents: priceCents,
		PriceTier:           tier,
		AvailableQty:        availableQty,
	}
}
