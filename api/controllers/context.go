package controllers

import (
	"net/http"

	"github.com/rfigueroa/wholesale-portal-backend/api/middleware"
	"github.com/rfigueroa/wholesale-portal-backend/api/responses"
	"github.com/rfigueroa/wholesale-portal-backend/internal/tenant"
	pkgerrors "github.com/rfigueroa/wholesale-portal-backend/pkg/errors"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/logger"
)

// requireTenant pulls the resolved tenant context or writes an unauthorized
// response. Handlers behind the Tenant middleware should never hit the error
// path; the guard covers misrouted wiring.
func requireTenant(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (*tenant.Context, bool) {
	tc := middleware.TenantFromContext(r.Context())
	if tc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "tenant context missing"))
		return nil, false
	}
	return tc, true
}
