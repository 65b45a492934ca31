package enums

// PriceTier identifies which rung of the pricing waterfall produced a price.
// Resolution order is fixed: customer override, then tenant price list, then
// the product base price. Exactly one tier wins per lookup.
type PriceTier string

const (
	PriceTierCustomer  PriceTier = "customer"
	PriceTierPriceList PriceTier = "price_list"
	PriceTierBase      PriceTier = "base"
)

func (t PriceTier) IsValid() bool {
	switch t {
	case PriceTierCustomer, PriceTierPriceList, PriceTierBase:
		return true
	}
	return false
}
