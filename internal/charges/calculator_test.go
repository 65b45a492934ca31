package charges

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rfigueroa/wholesale-portal-backend/internal/tenant"
)

func settings(taxRate string, thresholdCents, flatFeeCents int) tenant.Settings {
	return tenant.Settings{
		TaxRate:                    decimal.RequireFromString(taxRate),
		FreeShippingThresholdCents: thresholdCents,
		FlatShippingFeeCents:       flatFeeCents,
	}
}

func TestComputeBelowFreeShippingThreshold(t *testing.T) {
	// 20.00 subtotal at 9% tax, free shipping from 100.00, 5.00 flat fee.
	got := Compute(2000, settings("0.09", 10000, 500))

	if got.TaxCents != 180 {
		t.Fatalf("tax: expected 180, got %d", got.TaxCents)
	}
	if got.ShippingCents != 500 {
		t.Fatalf("shipping: expected 500, got %d", got.ShippingCents)
	}
	if got.TotalCents != 2680 {
		t.Fatalf("total: expected 2680, got %d", got.TotalCents)
	}
}

func TestComputeAtFreeShippingThreshold(t *testing.T) {
	got := Compute(10000, settings("0.09", 10000, 500))
	if got.ShippingCents != 0 {
		t.Fatalf("expected free shipping at threshold, got %d", got.ShippingCents)
	}
	if got.TotalCents != 10900 {
		t.Fatalf("total: expected 10900, got %d", got.TotalCents)
	}
}

func TestComputeZeroThresholdNeverWaivesShipping(t *testing.T) {
	got := Compute(999999, settings("0", 0, 750))
	if got.ShippingCents != 750 {
		t.Fatalf("expected flat fee with no threshold, got %d", got.ShippingCents)
	}
}

func TestComputeRoundsTaxToWholeCents(t *testing.T) {
	// 10.05 * 8.75% = 87.9375 cents, rounds to 88.
	got := Compute(1005, settings("0.0875", 0, 0))
	if got.TaxCents != 88 {
		t.Fatalf("tax: expected 88, got %d", got.TaxCents)
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	s := settings("0.09", 10000, 500)
	first := Compute(4321, s)
	second := Compute(4321, s)
	if first != second {
		t.Fatalf("expected identical results, got %+v vs %+v", first, second)
	}
}

func TestComputeClampsNegativeSubtotal(t *testing.T) {
	got := Compute(-50, settings("0.09", 0, 500))
	if got.SubtotalCents != 0 || got.TaxCents != 0 {
		t.Fatalf("expected clamped subtotal, got %+v", got)
	}
}
