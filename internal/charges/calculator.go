package charges

import (
	"github.com/shopspring/decimal"

	"github.com/rfigueroa/wholesale-portal-backend/internal/tenant"
)

// Charges is the computed money breakdown for a cart or order.
type Charges struct {
	SubtotalCents int
	TaxCents      int
	ShippingCents int
	TotalCents    int
}

// Compute derives tax and shipping from the subtotal and tenant settings.
// Pure: no side effects, safe to call repeatedly during cart redisplay and
// again at checkout. Tax is subtotal times the flat rate, rounded half away
// from zero to whole cents. Shipping is waived at or above the free-shipping
// threshold; a threshold of zero means the tenant has no free shipping.
func Compute(subtotalCents int, settings tenant.Settings) Charges {
	if subtotalCents < 0 {
		subtotalCents = 0
	}

	tax := decimal.NewFromInt(int64(subtotalCents)).
		Mul(settings.TaxRate).
		Round(0).
		IntPart()

	shipping := settings.FlatShippingFeeCents
	if settings.FreeShippingThresholdCents > 0 && subtotalCents >= settings.FreeShippingThresholdCents {
		shipping = 0
	}

	return Charges{
		SubtotalCents: subtotalCents,
		TaxCents:      int(tax),
		ShippingCents: shipping,
		TotalCents:    subtotalCents + int(tax) + shipping,
	}
}
