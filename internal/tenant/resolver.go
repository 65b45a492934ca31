package tenant

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rfigueroa/wholesale-portal-backend/pkg/auth"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/db/models"
	pkgerrors "github.com/rfigueroa/wholesale-portal-backend/pkg/errors"
)

// Repository loads tenant rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads the tenant row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.WithContext(ctx).First(&tenant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// Resolver turns verified token claims into a scoped Context.
type Resolver interface {
	Resolve(ctx context.Context, claims *auth.AccessTokenClaims) (*Context, error)
}

type resolver struct {
	repo *Repository
}

// NewResolver constructs a tenant resolver.
func NewResolver(repo *Repository) (Resolver, error) {
	if repo == nil {
		return nil, fmt.Errorf("tenant repository required")
	}
	return &resolver{repo: repo}, nil
}

// Resolve validates the claims against the tenant row and builds the Context.
// An unknown or deactivated tenant yields unauthorized; the caller learns
// nothing about whether the tenant exists.
func (r *resolver) Resolve(ctx context.Context, claims *auth.AccessTokenClaims) (*Context, error) {
	if claims == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing access claims")
	}
	if claims.TenantID == uuid.Nil || claims.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "token missing identity")
	}

	row, err := r.repo.FindByID(ctx, claims.TenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown tenant")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading tenant")
	}
	if !row.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "tenant is deactivated")
	}

	return &Context{
		TenantID:    row.ID,
		UserID:      claims.UserID,
		CustomerID:  claims.CustomerID,
		Permissions: claims.Permissions,
		TenantName:  row.Name,
		Settings: Settings{
			Currency:                   row.Currency,
			TaxRate:                    row.TaxRate,
			FreeShippingThresholdCents: row.FreeShippingThresholdCents,
			FlatShippingFeeCents:       row.FlatShippingFeeCents,
			DefaultSampleAllowance:     row.DefaultSampleAllowance,
		},
	}, nil
}
