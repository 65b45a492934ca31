package tenant

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rfigueroa/wholesale-portal-backend/pkg/enums"
	pkgerrors "github.com/rfigueroa/wholesale-portal-backend/pkg/errors"
)

// Settings carries the tenant configuration the charge calculator reads.
type Settings struct {
	Currency                   enums.Currency
	TaxRate                    decimal.Decimal
	FreeShippingThresholdCents int
	FlatShippingFeeCents       int
	DefaultSampleAllowance     int
}

// Context is the resolved identity every data operation is scoped to.
// Repositories never see raw claims; they receive this value and include
// TenantID in every predicate.
type Context struct {
	TenantID    uuid.UUID
	UserID      uuid.UUID
	CustomerID  *uuid.UUID
	Permissions []string
	TenantName  string
	Settings    Settings
}

// HasPermission reports membership of the capability string. The portal
// checks membership only; granting lives with the identity provider.
func (c *Context) HasPermission(key string) bool {
	for _, p := range c.Permissions {
		if p == key {
			return true
		}
	}
	return false
}

// RequirePermission returns a forbidden error when the capability is absent.
func (c *Context) RequirePermission(key string) error {
	if !c.HasPermission(key) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "missing permission").
			WithDetails(map[string]any{"permission": key})
	}
	return nil
}
