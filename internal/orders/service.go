package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rfigueroa/wholesale-portal-backend/internal/tenant"
	pkgerrors "github.com/rfigueroa/wholesale-portal-backend/pkg/errors"
)

// Service exposes the order read paths. Orders are immutable after
// checkout; there are no mutation operations here.
type Service interface {
	ListOrders(ctx context.Context, tc *tenant.Context) ([]OrderDTO, error)
	GetOrder(ctx context.Context, tc *tenant.Context, orderID uuid.UUID) (*OrderDTO, error)
}

type service struct {
	repo Repository
}

// NewService constructs an order read service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

// ListOrders returns the caller's orders, newest first, without lines.
func (s *service) ListOrders(ctx context.Context, tc *tenant.Context) ([]OrderDTO, error) {
	if tc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "tenant context required")
	}

	rows, err := s.repo.ListByUser(ctx, tc.TenantID, tc.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}

	out := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *ToDTO(&rows[i]))
	}
	return out, nil
}

// GetOrder returns one order with its lines. Orders belonging to another
// user or tenant are indistinguishable from missing ones.
func (s *service) GetOrder(ctx context.Context, tc *tenant.Context, orderID uuid.UUID) (*OrderDTO, error) {
	if tc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "tenant context required")
	}

	order, err := s.repo.FindByID(ctx, tc.TenantID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	if order.PortalUserID != tc.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return ToDTO(order), nil
}
