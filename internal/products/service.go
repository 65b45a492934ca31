package product

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rfigueroa/wholesale-portal-backend/internal/inventory"
	"github.com/rfigueroa/wholesale-portal-backend/internal/pricing"
	"github.com/rfigueroa/wholesale-portal-backend/internal/tenant"
	pkgerrors "github.com/rfigueroa/wholesale-portal-backend/pkg/errors"
)

// Service exposes the catalog read paths the portal renders.
type Service interface {
	ListProducts(ctx context.Context, tc *tenant.Context) ([]ProductDTO, error)
	GetProduct(ctx context.Context, tc *tenant.Context, productID uuid.UUID) (*ProductDTO, error)
}

type service struct {
	repo    *Repository
	pricing pricing.Service
	ledger  *inventory.Ledger
}

// NewService constructs a product service instance.
func NewService(repo *Repository, pricingSvc pricing.Service, ledger *inventory.Ledger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if pricingSvc == nil {
		return nil, fmt.Errorf("pricing service required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("inventory ledger required")
	}
	return &service{repo: repo, pricing: pricingSvc, ledger: ledger}, nil
}

// ListProducts returns the active catalog with effective prices for the
// caller's customer. Availability shown here is advisory display state.
func (s *service) ListProducts(ctx context.Context, tc *tenant.Context) ([]ProductDTO, error) {
	if tc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "tenant context required")
	}

	rows, err := s.repo.ListActive(ctx, tc.TenantID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []ProductDTO{}, nil
	}

	resolved, err := s.pricing.ResolvePrices(ctx, tc, rows)
	if err != nil {
		return nil, err
	}

	out := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		available := 0
		if item, err := s.ledger.Get(ctx, tc.TenantID, row.ID); err == nil {
			available = item.AvailableQty()
		}
		res := resolved[row.ID]
		out = append(out, toDTO(row, res.UnitPriceCents, res.Tier, available))
	}
	return out, nil
}

// GetProduct returns one product with its effective price.
func (s *service) GetProduct(ctx context.Context, tc *tenant.Context, productID uuid.UUID) (*ProductDTO, error) {
	if tc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "tenant context required")
	}

	row, err := s.repo.FindByID(ctx, tc.TenantID, productID)
	if err != nil {
		return nil, err
	}

	res, err := s.pricing.ResolvePrice(ctx, tc, *row)
	if err != nil {
		return nil, err
	}

	available := 0
	if item, err := s.ledger.Get(ctx, tc.TenantID, row.ID); err == nil {
		available = item.AvailableQty()
	}

	dto := toDTO(*row, res.UnitPriceCents, res.Tier, available)
	return &dto, nil
}
