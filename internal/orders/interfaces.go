package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rfigueroa/wholesale-portal-backend/pkg/db/models"
)

// Repository persists orders and their immutable lines.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderLines(ctx context.Context, lines []models.OrderLine) error
	FindByID(ctx context.Context, tenantID, orderID uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, tenantID, portalUserID uuid.UUID) ([]models.Order, error)
}
