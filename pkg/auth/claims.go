package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT. The
// session collaborator issues tokens; this package only defines the shape and
// the parse path the portal trusts.
type AccessTokenPayload struct {
	UserID      uuid.UUID
	TenantID    uuid.UUID
	CustomerID  *uuid.UUID
	Permissions []string
	JTI         string
}

// AccessTokenClaims is the typed JWT presented on every request. TenantID is
// the only source of tenant scoping; CustomerID links the caller to the
// customer account used for pricing and checkout.
type AccessTokenClaims struct {
	UserID      uuid.UUID  `json:"user_id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	CustomerID  *uuid.UUID `json:"customer_id,omitempty"`
	Permissions []string   `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// HasPermission reports whether the claim set carries the capability key.
func (c *AccessTokenClaims) HasPermission(key string) bool {
	if c == nil {
		return false
	}
	for _, p := range c.Permissions {
		if p == key {
			return true
		}
	}
	return false
}
