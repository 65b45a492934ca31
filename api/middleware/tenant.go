package middleware

import (
	"net/http"

	"github.com/rfigueroa/wholesale-portal-backend/api/responses"
	"github.com/rfigueroa/wholesale-portal-backend/internal/tenant"
	pkgerrors "github.com/rfigueroa/wholesale-portal-backend/pkg/errors"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/logger"
)

// Tenant resolves the token claims into a scoped tenant context on every
// request. Runs after Auth; a request that reaches a handler always carries a
// live, active tenant.
func Tenant(resolver tenant.Resolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing access claims"))
				return
			}

			tc, err := resolver.Resolve(r.Context(), claims)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithTenant(r.Context(), tc)
			if logg != nil {
				ctx = logg.WithField(ctx, "tenant_name", tc.TenantName)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
