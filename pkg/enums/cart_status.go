package enums

// CartStatus tracks the lifecycle of a buyer cart.
type CartStatus string

const (
	CartStatusActive    CartStatus = "active"
	CartStatusConverted CartStatus = "converted"
)

func (s CartStatus) IsValid() bool {
	switch s {
	case CartStatusActive, CartStatusConverted:
		return true
	}
	return false
}
