package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rfigueroa/wholesale-portal-backend/pkg/db/models"
	pkgerrors "github.com/rfigueroa/wholesale-portal-backend/pkg/errors"
)

// Ledger owns all writes to inventory quantities. Available stock is always
// derived (on_hand - reserved) and is never overwritten directly; every
// adjustment is a single guarded conditional UPDATE so that two concurrent
// checkouts can never drive it negative, whatever the isolation level.
type Ledger struct {
	db *gorm.DB
}

// NewLedger builds a ledger tied to the provided GORM DB.
func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// WithTx returns a ledger bound to the provided transaction.
func (l *Ledger) WithTx(tx *gorm.DB) *Ledger {
	if tx == nil {
		return l
	}
	return &Ledger{db: tx}
}

// Get loads the inventory row for a product.
func (l *Ledger) Get(ctx context.Context, tenantID, productID uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := l.db.WithContext(ctx).
		First(&item, "tenant_id = ? AND product_id = ?", tenantID, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product is not stocked").
				WithDetails(map[string]any{"product_id": productID})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading inventory")
	}
	return &item, nil
}

// CheckAvailable reports whether qty units could be reserved right now.
// Advisory only: the answer can be stale by the time a reservation runs,
// so checkout always relies on Reserve's guard, never on this.
func (l *Ledger) CheckAvailable(ctx context.Context, tenantID, productID uuid.UUID, qty int) (bool, error) {
	if qty <= 0 {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	item, err := l.Get(ctx, tenantID, productID)
	if err != nil {
		return false, err
	}
	return item.AvailableQty() >= qty, nil
}

// Reserve moves qty units from available to reserved, all or nothing.
// The WHERE clause carries the availability guard; zero rows affected means
// either the product is not stocked or stock was insufficient at execution
// time, and the follow-up read distinguishes the two.
func (l *Ledger) Reserve(ctx context.Context, tenantID, productID uuid.UUID, qty int) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	res := l.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("tenant_id = ? AND product_id = ? AND on_hand_qty - reserved_qty >= ?", tenantID, productID, qty).
		Update("reserved_qty", gorm.Expr("reserved_qty + ?", qty))
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, res.Error, "reserving inventory")
	}
	if res.RowsAffected > 0 {
		return nil
	}

	item, err := l.Get(ctx, tenantID, productID)
	if err != nil {
		return err
	}
	return pkgerrors.New(pkgerrors.CodeConflict, "insufficient inventory").
		WithDetails(map[string]any{
			"product_id": productID,
			"requested":  qty,
			"available":  item.AvailableQty(),
		})
}

// Release returns qty reserved units to available, e.g. when an order is
// canceled. Guarded the same way so reserved never goes negative.
func (l *Ledger) Release(ctx context.Context, tenantID, productID uuid.UUID, qty int) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	res := l.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("tenant_id = ? AND product_id = ? AND reserved_qty >= ?", tenantID, productID, qty).
		Update("reserved_qty", gorm.Expr("reserved_qty - ?", qty))
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, res.Error, "releasing inventory")
	}
	if res.RowsAffected > 0 {
		return nil
	}

	item, err := l.Get(ctx, tenantID, productID)
	if err != nil {
		return err
	}
	return pkgerrors.New(pkgerrors.CodeConflict, "release exceeds reserved quantity").
		WithDetails(map[string]any{
			"product_id": productID,
			"requested":  qty,
			"reserved":   item.ReservedQty,
		})
}
