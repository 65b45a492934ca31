package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rfigueroa/wholesale-portal-backend/pkg/db/models"
	pkgerrors "github.com/rfigueroa/wholesale-portal-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:inventory_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.InventoryItem{}); err != nil {
		t.Fatalf("migrate inventory: %v", err)
	}
	return db
}

func seedStock(t *testing.T, db *gorm.DB, tenantID, productID uuid.UUID, onHand, reserved int) {
	t.Helper()
	item := &models.InventoryItem{
		TenantID:    tenantID,
		ProductID:   productID,
		OnHandQty:   onHand,
		ReservedQty: reserved,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("seed inventory: %v", err)
	}
}

func loadStock(t *testing.T, db *gorm.DB, tenantID, productID uuid.UUID) models.InventoryItem {
	t.Helper()
	var item models.InventoryItem
	if err := db.First(&item, "tenant_id = ? AND product_id = ?", tenantID, productID).Error; err != nil {
		t.Fatalf("load inventory: %v", err)
	}
	return item
}

func TestReserveMovesAvailableToReserved(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	ctx := context.Background()

	tenantID := uuid.New()
	productID := uuid.New()
	seedStock(t, db, tenantID, productID, 5, 0)

	if err := ledger.Reserve(ctx, tenantID, productID, 3); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	item := loadStock(t, db, tenantID, productID)
	if item.OnHandQty != 5 || item.ReservedQty != 3 || item.AvailableQty() != 2 {
		t.Fatalf("unexpected state: %+v", item)
	}
}

func TestReserveFailsWhenInsufficient(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	ctx := context.Background()

	tenantID := uuid.New()
	productID := uuid.New()
	seedStock(t, db, tenantID, productID, 5, 3)

	err := ledger.Reserve(ctx, tenantID, productID, 3)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	details, ok := typed.Details().(map[string]any)
	if !ok {
		t.Fatalf("expected detail map, got %T", typed.Details())
	}
	if details["available"] != 2 {
		t.Fatalf("expected available 2 in details, got %v", details["available"])
	}

	// Nothing moved.
	item := loadStock(t, db, tenantID, productID)
	if item.ReservedQty != 3 {
		t.Fatalf("reserved changed on failed reserve: %+v", item)
	}
}

func TestReserveIsAllOrNothingPerCall(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	ctx := context.Background()

	tenantID := uuid.New()
	productID := uuid.New()
	seedStock(t, db, tenantID, productID, 1, 0)

	if err := ledger.Reserve(ctx, tenantID, productID, 1); err != nil {
		t.Fatalf("first reserve: %v", err)
	}
	// The unit is gone; a second identical reserve must conflict.
	if err := ledger.Reserve(ctx, tenantID, productID, 1); err == nil {
		t.Fatal("expected conflict on second reserve of last unit")
	}

	item := loadStock(t, db, tenantID, productID)
	if item.AvailableQty() != 0 || item.ReservedQty != 1 {
		t.Fatalf("unexpected state: %+v", item)
	}
}

func TestReserveUnknownProduct(t *testing.T) {
	ledger := NewLedger(newTestDB(t))
	err := ledger.Reserve(context.Background(), uuid.New(), uuid.New(), 1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReserveRejectsNonPositiveQty(t *testing.T) {
	ledger := NewLedger(newTestDB(t))
	for _, qty := range []int{0, -2} {
		err := ledger.Reserve(context.Background(), uuid.New(), uuid.New(), qty)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("qty %d: expected validation error, got %v", qty, err)
		}
	}
}

func TestReserveScopedToTenant(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	ctx := context.Background()

	productID := uuid.New()
	tenantA := uuid.New()
	tenantB := uuid.New()
	seedStock(t, db, tenantA, productID, 10, 0)

	// Tenant B has no stock row for this product.
	err := ledger.Reserve(ctx, tenantB, productID, 1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for other tenant, got %v", err)
	}

	item := loadStock(t, db, tenantA, productID)
	if item.ReservedQty != 0 {
		t.Fatalf("tenant A stock touched: %+v", item)
	}
}

func TestReleaseReturnsReservedStock(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	ctx := context.Background()

	tenantID := uuid.New()
	productID := uuid.New()
	seedStock(t, db, tenantID, productID, 5, 4)

	if err := ledger.Release(ctx, tenantID, productID, 3); err != nil {
		t.Fatalf("release: %v", err)
	}

	item := loadStock(t, db, tenantID, productID)
	if item.ReservedQty != 1 || item.AvailableQty() != 4 {
		t.Fatalf("unexpected state: %+v", item)
	}
}

func TestReleaseCannotExceedReserved(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	ctx := context.Background()

	tenantID := uuid.New()
	productID := uuid.New()
	seedStock(t, db, tenantID, productID, 5, 1)

	err := ledger.Release(ctx, tenantID, productID, 2)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCheckAvailable(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	ctx := context.Background()

	tenantID := uuid.New()
	productID := uuid.New()
	seedStock(t, db, tenantID, productID, 5, 2)

	ok, err := ledger.CheckAvailable(ctx, tenantID, productID, 3)
	if err != nil || !ok {
		t.Fatalf("expected 3 available: ok=%v err=%v", ok, err)
	}
	ok, err = ledger.CheckAvailable(ctx, tenantID, productID, 4)
	if err != nil || ok {
		t.Fatalf("expected 4 unavailable: ok=%v err=%v", ok, err)
	}
}
