package pricing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rfigueroa/wholesale-portal-backend/internal/tenant"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/db/models"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/enums"
	pkgerrors "github.com/rfigueroa/wholesale-portal-backend/pkg/errors"
)

// Resolution is the outcome of the waterfall for one product.
type Resolution struct {
	ProductID      uuid.UUID
	UnitPriceCents int
	Tier           enums.PriceTier
}

// Service resolves effective unit prices. The waterfall is strict: a
// customer rule wins over a price-list rule wins over the base price.
// First match wins; tiers never blend.
type Service interface {
	WithTx(tx *gorm.DB) Service
	ResolvePrices(ctx context.Context, tc *tenant.Context, products []models.Product) (map[uuid.UUID]Resolution, error)
	ResolvePrice(ctx context.Context, tc *tenant.Context, product models.Product) (Resolution, error)
}

type service struct {
	repo *Repository
}

// NewService constructs a pricing service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("pricing repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) WithTx(tx *gorm.DB) Service {
	if tx == nil {
		return s
	}
	return &service{repo: s.repo.WithTx(tx)}
}

// ResolvePrices runs the waterfall for every product in one query.
func (s *service) ResolvePrices(ctx context.Context, tc *tenant.Context, products []models.Product) (map[uuid.UUID]Resolution, error) {
	if tc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "tenant context required")
	}

	ids := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		if p.TenantID != tc.TenantID {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		ids = append(ids, p.ID)
	}

	rules, err := s.repo.ListRulesForProducts(ctx, tc.TenantID, tc.CustomerID, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading price rules")
	}

	// Rules arrive newest-first; keep the first row seen per (product, tier).
	customerRules := map[uuid.UUID]models.PriceRule{}
	listRules := map[uuid.UUID]models.PriceRule{}
	for _, rule := range rules {
		switch rule.Tier {
		case enums.PriceTierCustomer:
			if _, ok := customerRules[rule.ProductID]; !ok {
				customerRules[rule.ProductID] = rule
			}
		case enums.PriceTierPriceList:
			if _, ok := listRules[rule.ProductID]; !ok {
				listRules[rule.ProductID] = rule
			}
		}
	}

	out := make(map[uuid.UUID]Resolution, len(products))
	for _, p := range products {
		res := Resolution{ProductID: p.ID, UnitPriceCents: p.BasePriceCents, Tier: enums.PriceTierBase}
		if rule, ok := listRules[p.ID]; ok {
			res.UnitPriceCents = rule.UnitPriceCents
			res.Tier = enums.PriceTierPriceList
		}
		if rule, ok := customerRules[p.ID]; ok {
			res.UnitPriceCents = rule.UnitPriceCents
			res.Tier = enums.PriceTierCustomer
		}
		out[p.ID] = res
	}
	return out, nil
}

// ResolvePrice runs the waterfall for a single product.
func (s *service) ResolvePrice(ctx context.Context, tc *tenant.Context, product models.Product) (Resolution, error) {
	resolved, err := s.ResolvePrices(ctx, tc, []models.Product{product})
	if err != nil {
		return Resolution{}, err
	}
	return resolved[product.ID], nil
}
