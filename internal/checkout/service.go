package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rfigueroa/wholesale-portal-backend/internal/cart"
	"github.com/rfigueroa/wholesale-portal-backend/internal/charges"
	"github.com/rfigueroa/wholesale-portal-backend/internal/customers"
	"github.com/rfigueroa/wholesale-portal-backend/internal/inventory"
	"github.com/rfigueroa/wholesale-portal-backend/internal/orders"
	"github.com/rfigueroa/wholesale-portal-backend/internal/pricing"
	product "github.com/rfigueroa/wholesale-portal-backend/internal/products"
	"github.com/rfigueroa/wholesale-portal-backend/internal/tenant"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/db"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/db/models"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/enums"
	pkgerrors "github.com/rfigueroa/wholesale-portal-backend/pkg/errors"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/metrics"
)

// PermissionCheckout gates order creation.
const PermissionCheckout = "orders.create"

// Input carries the optional references the buyer attaches to the order.
// Payment capture and fulfillment live with external collaborators; the
// portal only stores the references.
type Input struct {
	ShippingAddressRef    *string
	BillingAddressRef     *string
	PaymentRef            *string
	Notes                 *string
	RequestedDeliveryDate *time.Time
}

// Service converts a cart into an order.
type Service interface {
	Checkout(ctx context.Context, tc *tenant.Context, input Input) (*orders.OrderDTO, error)
}

type service struct {
	dbClient  *db.Client
	carts     *cart.Repository
	customers *customers.Repository
	products  *product.Repository
	pricing   pricing.Service
	ledger    *inventory.Ledger
	orders    orders.Repository
	numbers   *orders.NumberGenerator
	metrics   *metrics.CheckoutMetrics
	now       func() time.Time
}

// NewService constructs the checkout orchestrator.
func NewService(
	dbClient *db.Client,
	carts *cart.Repository,
	customersRepo *customers.Repository,
	products *product.Repository,
	pricingSvc pricing.Service,
	ledger *inventory.Ledger,
	ordersRepo orders.Repository,
	numbers *orders.NumberGenerator,
	checkoutMetrics *metrics.CheckoutMetrics,
) (Service, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if customersRepo == nil {
		return nil, fmt.Errorf("customers repository required")
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
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if numbers == nil {
		return nil, fmt.Errorf("number generator required")
	}
	return &service{
		dbClient:  dbClient,
		carts:     carts,
		customers: customersRepo,
		products:  products,
		pricing:   pricingSvc,
		ledger:    ledger,
		orders:    ordersRepo,
		numbers:   numbers,
		metrics:   checkoutMetrics,
		now:       time.Now,
	}, nil
}

// Checkout runs the whole pipeline in one transaction: load the ACTIVE
// non-empty cart, resolve the customer, re-resolve every price, reserve
// every line, compute charges, mint the order number, snapshot the order,
// clear and convert the cart. Any failure rolls back all of it, leaving the
// cart intact and ACTIVE, so a failed checkout is always safe to retry.
func (s *service) Checkout(ctx context.Context, tc *tenant.Context, input Input) (*orders.OrderDTO, error) {
	started := s.now()
	dto, err := s.checkout(ctx, tc, input)
	s.observe(err, s.now().Sub(started))
	return dto, err
}

func (s *service) checkout(ctx context.Context, tc *tenant.Context, input Input) (*orders.OrderDTO, error) {
	if tc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "tenant context required")
	}
	if err := tc.RequirePermission(PermissionCheckout); err != nil {
		return nil, err
	}

	var dto *orders.OrderDTO
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.carts.WithTx(tx)

		activeCart, err := cartRepo.FindActiveByUser(ctx, tc.TenantID, tc.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
		}
		if len(activeCart.Items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		customer, err := s.resolveCustomer(ctx, tx, tc)
		if err != nil {
			return err
		}

		lines, computed, err := s.priceAndReserve(ctx, tx, tc, activeCart)
		if err != nil {
			return err
		}

		now := s.now()
		orderNumber, err := s.numbers.WithTx(tx).Next(ctx, tc.TenantID, now)
		if err != nil {
			return err
		}

		order := &models.Order{
			ID:                    uuid.New(),
			TenantID:              tc.TenantID,
			OrderNumber:           orderNumber,
			PortalUserID:          tc.UserID,
			CustomerID:            customer.ID,
			Status:                enums.OrderStatusPending,
			SubtotalCents:         computed.SubtotalCents,
			TaxCents:              computed.TaxCents,
			ShippingCents:         computed.ShippingCents,
			TotalCents:            computed.TotalCents,
			ShippingAddressRef:    input.ShippingAddressRef,
			BillingAddressRef:     input.BillingAddressRef,
			PaymentRef:            input.PaymentRef,
			Notes:                 input.Notes,
			RequestedDeliveryDate: input.RequestedDeliveryDate,
		}

		ordersRepo := s.orders.WithTx(tx)
		if _, err := ordersRepo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order")
		}
		for i := range lines {
			lines[i].OrderID = order.ID
		}
		if err := ordersRepo.CreateOrderLines(ctx, lines); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order lines")
		}

		if err := cartRepo.DeleteItems(ctx, activeCart.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart")
		}
		if err := cartRepo.UpdateTotals(ctx, activeCart.ID, 0, 0, 0, 0); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resetting cart totals")
		}
		if err := cartRepo.MarkConverted(ctx, activeCart.ID, order.ID, now); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "converting cart")
		}

		order.Lines = lines
		dto = orders.ToDTO(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// resolveCustomer maps the caller to the customer account the order is
// placed for. A caller without a customer link cannot check out.
func (s *service) resolveCustomer(ctx context.Context, tx *gorm.DB, tc *tenant.Context) (*models.Customer, error) {
	if tc.CustomerID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer account required")
	}
	customer, err := s.customers.WithTx(tx).FindByID(ctx, tc.TenantID, *tc.CustomerID)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer account required")
		}
		return nil, err
	}
	if !customer.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer account is inactive")
	}
	return customer, nil
}

// priceAndReserve walks the cart lines in stable order, re-resolving the
// authoritative price and reserving stock for each. The cart's stored unit
// prices are never trusted here.
func (s *service) priceAndReserve(ctx context.Context, tx *gorm.DB, tc *tenant.Context, activeCart *models.Cart) ([]models.OrderLine, charges.Charges, error) {
	ids := make([]uuid.UUID, 0, len(activeCart.Items))
	for _, item := range activeCart.Items {
		ids = append(ids, item.ProductID)
	}
	productsByID, err := s.products.WithTx(tx).FindManyByID(ctx, tc.TenantID, ids)
	if err != nil {
		return nil, charges.Charges{}, err
	}

	rows := make([]models.Product, 0, len(productsByID))
	for _, p := range productsByID {
		rows = append(rows, p)
	}
	resolved, err := s.pricing.WithTx(tx).ResolvePrices(ctx, tc, rows)
	if err != nil {
		return nil, charges.Charges{}, err
	}

	ledger := s.ledger.WithTx(tx)
	lines := make([]models.OrderLine, 0, len(activeCart.Items))
	subtotal := 0
	for _, item := range activeCart.Items {
		prod, ok := productsByID[item.ProductID]
		if !ok || !prod.IsActive {
			return nil, charges.Charges{}, pkgerrors.New(pkgerrors.CodeValidation, "product is not available").
				WithDetails(map[string]any{"product_id": item.ProductID})
		}
		res := resolved[item.ProductID]

		if err := ledger.Reserve(ctx, tc.TenantID, item.ProductID, item.Quantity); err != nil {
			return nil, charges.Charges{}, err
		}

		lineTotal := res.UnitPriceCents * item.Quantity
		subtotal += lineTotal
		lines = append(lines, models.OrderLine{
			ID:             uuid.New(),
			TenantID:       tc.TenantID,
			ProductID:      item.ProductID,
			SKU:            prod.SKU,
			Name:           prod.Name,
			UnitPriceCents: res.UnitPriceCents,
			Quantity:       item.Quantity,
			LineTotalCents: lineTotal,
		})
	}

	return lines, charges.Compute(subtotal, tc.Settings), nil
}

func (s *service) observe(err error, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
		if typed := pkgerrors.As(err); typed != nil {
			switch typed.Code() {
			case pkgerrors.CodeConflict:
				outcome = "conflict"
			case pkgerrors.CodeValidation:
				outcome = "rejected"
			case pkgerrors.CodeForbidden:
				outcome = "forbidden"
			}
		}
	}
	s.metrics.Observe(outcome, elapsed)
}
