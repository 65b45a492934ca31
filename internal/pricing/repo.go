package pricing

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rfigueroa/wholesale-portal-backend/pkg/db/models"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/enums"
)

// Repository loads price rules for the waterfall.
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

// ListRulesForProducts loads every rule that could apply to the caller:
// tenant-wide price-list rows plus customer rows for the given customer.
// Ordered newest-first so the service can take the first row per tier.
func (r *Repository) ListRulesForProducts(ctx context.Context, tenantID uuid.UUID, customerID *uuid.UUID, productIDs []uuid.UUID) ([]models.PriceRule, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	q := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where("product_id IN ?", productIDs)

	if customerID != nil {
		q = q.Where(
			"(tier = ? AND customer_id IS NULL) OR (tier = ? AND customer_id = ?)",
			enums.PriceTierPriceList, enums.PriceTierCustomer, *customerID,
		)
	} else {
		q = q.Where("tier = ? AND customer_id IS NULL", enums.PriceTierPriceList)
	}

	var rules []models.PriceRule
	if err := q.Order("updated_at DESC").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}
