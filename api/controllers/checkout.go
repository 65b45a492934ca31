package controllers

import (
	"net/http"
	"time"

	"github.com/rfigueroa/wholesale-portal-backend/api/responses"
	"github.com/rfigueroa/wholesale-portal-backend/api/validators"
	checkoutsvc "github.com/rfigueroa/wholesale-portal-backend/internal/checkout"
	pkgerrors "github.com/rfigueroa/wholesale-portal-backend/pkg/errors"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/logger"
)

type checkoutRequest struct {
	ShippingAddressRef    *string    `json:"shipping_address_ref"`
	BillingAddressRef     *string    `json:"billing_address_ref"`
	PaymentRef            *string    `json:"payment_ref"`
	Notes                 *string    `json:"notes" validate:"omitempty,max=2000"`
	RequestedDeliveryDate *time.Time `json:"requested_delivery_date"`
}

// Checkout converts the caller's active cart into a pending order.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		tc, ok := requireTenant(w, r, logg)
		if !ok {
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Checkout(r.Context(), tc, checkoutsvc.Input{
			ShippingAddressRef:    payload.ShippingAddressRef,
			BillingAddressRef:     payload.BillingAddressRef,
			PaymentRef:            payload.PaymentRef,
			Notes:                 payload.Notes,
			RequestedDeliveryDate: payload.RequestedDeliveryDate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}
