package enums

// OrderStatus tracks order progression after checkout. Orders are created
// pending and only ever move forward; the row itself stays immutable.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusCanceled  OrderStatus = "canceled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusFulfilled, OrderStatusCanceled:
		return true
	}
	return false
}
