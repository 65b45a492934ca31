package middleware

import (
	"context"

	"github.com/rfigueroa/wholesale-portal-backend/internal/tenant"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/auth"
)

type contextKey string

const (
	ctxUserID   contextKey = "user_id"
	ctxTenantID contextKey = "tenant_id"
	ctxClaims   contextKey = "access_claims"
	ctxTenant   contextKey = "tenant_context"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func TenantIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxTenantID).(string); ok {
		return v
	}
	return ""
}

// ClaimsFromContext returns the verified access claims seeded by Auth.
func ClaimsFromContext(ctx context.Context) *auth.AccessTokenClaims {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxClaims).(*auth.AccessTokenClaims); ok {
		return v
	}
	return nil
}

// TenantFromContext returns the scoped tenant context seeded by Tenant.
func TenantFromContext(ctx context.Context) *tenant.Context {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxTenant).(*tenant.Context); ok {
		return v
	}
	return nil
}

// WithClaims injects verified claims into the context.
func WithClaims(ctx context.Context, claims *auth.AccessTokenClaims) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxClaims, claims)
	if claims != nil {
		ctx = context.WithValue(ctx, ctxUserID, claims.UserID.String())
		ctx = context.WithValue(ctx, ctxTenantID, claims.TenantID.String())
	}
	return ctx
}

// WithTenant injects the resolved tenant context for downstream handlers.
func WithTenant(ctx context.Context, tc *tenant.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxTenant, tc)
}
