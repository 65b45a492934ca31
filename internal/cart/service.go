package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rfigueroa/wholesale-portal-backend/internal/charges"
	"github.com/rfigueroa/wholesale-portal-backend/internal/inventory"
	"github.com/rfigueroa/wholesale-portal-backend/internal/pricing"
	product "github.com/rfigueroa/wholesale-portal-backend/internal/products"
	"github.com/rfigueroa/wholesale-portal-backend/internal/tenant"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/db"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/db/models"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/enums"
	pkgerrors "github.com/rfigueroa/wholesale-portal-backend/pkg/errors"
)

// PermissionCartWrite gates every cart mutation.
const PermissionCartWrite = "cart.write"

// Service owns the cart aggregate: at most one ACTIVE cart per user per
// tenant, created lazily on first mutation, never deleted. Every mutation
// runs in its own transaction and synchronously recomputes totals from the
// surviving items, so the stored totals are never stale.
type Service interface {
	GetCart(ctx context.Context, tc *tenant.Context) (*CartDTO, error)
	AddItem(ctx context.Context, tc *tenant.Context, productID uuid.UUID, qty int) (*CartDTO, error)
	UpdateItem(ctx context.Context, tc *tenant.Context, itemID uuid.UUID, qty int) (*CartDTO, error)
	RemoveItem(ctx context.Context, tc *tenant.Context, itemID uuid.UUID) (*CartDTO, error)
	Clear(ctx context.Context, tc *tenant.Context) (*CartDTO, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	products *product.Repository
	pricing  pricing.Service
	ledger   *inventory.Ledger
}

// NewService constructs a cart service instance.
func NewService(repo *Repository, dbClient *db.Client, products *product.Repository, pricingSvc pricing.Service, ledger *inventory.Ledger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if pricingSvc == nil {
		return nil, fmt.Errorf("pricing service required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("inventory ledger required")
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		products: products,
		pricing:  pricingSvc,
		ledger:   ledger,
	}, nil
}

// GetCart returns the current cart view. A user with no cart yet sees an
// empty cart; reading never creates a row.
func (s *service) GetCart(ctx context.Context, tc *tenant.Context) (*CartDTO, error) {
	if tc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "tenant context required")
	}

	cart, err := s.repo.FindActiveByUser(ctx, tc.TenantID, tc.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return emptyCartDTO(), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}

	productsByID, err := s.productsForItems(ctx, tc, cart.Items)
	if err != nil {
		return nil, err
	}
	return toDTO(cart, productsByID), nil
}

// AddItem puts qty units of the product in the cart, merging into an
// existing line instead of duplicating it. The availability check here is
// advisory; only checkout reserves stock.
func (s *service) AddItem(ctx context.Context, tc *tenant.Context, productID uuid.UUID, qty int) (*CartDTO, error) {
	if err := s.guardMutation(tc); err != nil {
		return nil, err
	}
	if qty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	var dto *CartDTO
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		prod, err := s.products.WithTx(tx).FindByID(ctx, tc.TenantID, productID)
		if err != nil {
			return err
		}
		if !prod.IsActive {
			return pkgerrors.New(pkgerrors.CodeValidation, "product is not available").
				WithDetails(map[string]any{"product_id": productID})
		}

		cart, err := s.loadOrCreateActive(ctx, repo, tc)
		if err != nil {
			return err
		}

		desired := qty
		var existing *models.CartItem
		for i := range cart.Items {
			if cart.Items[i].ProductID == productID {
				existing = &cart.Items[i]
				desired += existing.Quantity
				break
			}
		}

		ok, err := s.ledger.WithTx(tx).CheckAvailable(ctx, tc.TenantID, productID, desired)
		if err != nil {
			return err
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeConflict, "insufficient inventory").
				WithDetails(map[string]any{"product_id": productID, "requested": desired})
		}

		if existing != nil {
			existing.Quantity = desired
		} else {
			item := models.CartItem{
				ID:        uuid.New(),
				CartID:    cart.ID,
				TenantID:  tc.TenantID,
				ProductID: productID,
				Quantity:  qty,
			}
			if err := repo.CreateItem(ctx, &item); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating cart item")
			}
			cart.Items = append(cart.Items, item)
		}

		dto, err = s.recompute(ctx, tx, tc, cart)
		return err
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// UpdateItem sets the line quantity. Zero or negative is rejected; use
// RemoveItem to drop a line.
func (s *service) UpdateItem(ctx context.Context, tc *tenant.Context, itemID uuid.UUID, qty int) (*CartDTO, error) {
	if err := s.guardMutation(tc); err != nil {
		return nil, err
	}
	if qty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	var dto *CartDTO
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		cart, err := s.loadActive(ctx, repo, tc)
		if err != nil {
			return err
		}

		var target *models.CartItem
		for i := range cart.Items {
			if cart.Items[i].ID == itemID {
				target = &cart.Items[i]
				break
			}
		}
		if target == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}

		ok, err := s.ledger.WithTx(tx).CheckAvailable(ctx, tc.TenantID, target.ProductID, qty)
		if err != nil {
			return err
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeConflict, "insufficient inventory").
				WithDetails(map[string]any{"product_id": target.ProductID, "requested": qty})
		}

		target.Quantity = qty
		dto, err = s.recompute(ctx, tx, tc, cart)
		return err
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// RemoveItem drops one line and recomputes totals.
func (s *service) RemoveItem(ctx context.Context, tc *tenant.Context, itemID uuid.UUID) (*CartDTO, error) {
	if err := s.guardMutation(tc); err != nil {
		return nil, err
	}

	var dto *CartDTO
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		cart, err := s.loadActive(ctx, repo, tc)
		if err != nil {
			return err
		}

		kept := cart.Items[:0]
		found := false
		for _, item := range cart.Items {
			if item.ID == itemID {
				found = true
				continue
			}
			kept = append(kept, item)
		}
		if !found {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		if err := repo.DeleteItem(ctx, cart.ID, itemID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting cart item")
		}
		cart.Items = kept

		dto, err = s.recompute(ctx, tx, tc, cart)
		return err
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Clear removes every line. The cart row itself survives.
func (s *service) Clear(ctx context.Context, tc *tenant.Context) (*CartDTO, error) {
	if err := s.guardMutation(tc); err != nil {
		return nil, err
	}

	var dto *CartDTO
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		cart, err := repo.FindActiveByUser(ctx, tc.TenantID, tc.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				dto = emptyCartDTO()
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
		}

		if err := repo.DeleteItems(ctx, cart.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart")
		}
		cart.Items = nil

		dto, err = s.recompute(ctx, tx, tc, cart)
		return err
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *service) guardMutation(tc *tenant.Context) error {
	if tc == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "tenant context required")
	}
	return tc.RequirePermission(PermissionCartWrite)
}

func (s *service) loadActive(ctx context.Context, repo *Repository, tc *tenant.Context) (*models.Cart, error) {
	cart, err := repo.FindActiveByUser(ctx, tc.TenantID, tc.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no active cart")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}
	return cart, nil
}

func (s *service) loadOrCreateActive(ctx context.Context, repo *Repository, tc *tenant.Context) (*models.Cart, error) {
	cart, err := repo.FindActiveByUser(ctx, tc.TenantID, tc.UserID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}

	cart = &models.Cart{
		ID:           uuid.New(),
		TenantID:     tc.TenantID,
		PortalUserID: tc.UserID,
		Status:       enums.CartStatusActive,
	}
	if err := repo.Create(ctx, cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating cart")
	}
	return cart, nil
}

// recompute re-resolves advisory prices for every surviving line, derives
// the charges, and persists both. Totals are a pure function of the items:
// two recomputes without a mutation in between always agree.
func (s *service) recompute(ctx context.Context, tx *gorm.DB, tc *tenant.Context, cart *models.Cart) (*CartDTO, error) {
	repo := s.repo.WithTx(tx)

	productsByID, err := s.productsForItemsTx(ctx, tx, tc, cart.Items)
	if err != nil {
		return nil, err
	}

	rows := make([]models.Product, 0, len(productsByID))
	for _, p := range productsByID {
		rows = append(rows, p)
	}
	resolved := map[uuid.UUID]pricing.Resolution{}
	if len(rows) > 0 {
		resolved, err = s.pricing.WithTx(tx).ResolvePrices(ctx, tc, rows)
		if err != nil {
			return nil, err
		}
	}

	subtotal := 0
	for i := range cart.Items {
		item := &cart.Items[i]
		res, ok := resolved[item.ProductID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeInternal, "missing price resolution").
				WithDetails(map[string]any{"product_id": item.ProductID})
		}
		item.UnitPriceCents = res.UnitPriceCents
		item.LineSubtotalCents = res.UnitPriceCents * item.Quantity
		subtotal += item.LineSubtotalCents
		if err := repo.SaveItem(ctx, item); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving cart item")
		}
	}

	// An empty cart owes nothing; the flat shipping fee applies only once
	// there is something to ship.
	computed := charges.Charges{}
	if len(cart.Items) > 0 {
		computed = charges.Compute(subtotal, tc.Settings)
	}
	if err := repo.UpdateTotals(ctx, cart.ID, computed.SubtotalCents, computed.TaxCents, computed.ShippingCents, computed.TotalCents); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving cart totals")
	}
	cart.SubtotalCents = computed.SubtotalCents
	cart.TaxCents = computed.TaxCents
	cart.ShippingCents = computed.ShippingCents
	cart.TotalCents = computed.TotalCents

	return toDTO(cart, productsByID), nil
}

func (s *service) productsForItems(ctx context.Context, tc *tenant.Context, items []models.CartItem) (map[uuid.UUID]models.Product, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return s.products.FindManyByID(ctx, tc.TenantID, ids)
}

func (s *service) productsForItemsTx(ctx context.Context, tx *gorm.DB, tc *tenant.Context, items []models.CartItem) (map[uuid.UUID]models.Product, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return s.products.WithTx(tx).FindManyByID(ctx, tc.TenantID, ids)
}
