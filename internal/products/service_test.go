package product

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rfigueroa/wholesale-portal-backend/internal/inventory"
	"github.com/rfigueroa/wholesale-portal-backend/internal/pricing"
	"github.com/rfigueroa/wholesale-portal-backend/internal/tenant"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/db/models"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/enums"
	pkgerrors "github.com/rfigueroa/wholesale-portal-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:products_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	ddl := []string{`
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  sku TEXT NOT NULL,
  name TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT '',
  unit TEXT NOT NULL DEFAULT 'each',
  units_per_case INTEGER NOT NULL DEFAULT 1,
  base_price_cents INTEGER NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS price_rules (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  customer_id TEXT,
  tier TEXT NOT NULL,
  unit_price_cents INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`}
	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create table: %v", err)
		}
	}
	if err := db.AutoMigrate(&models.InventoryItem{}); err != nil {
		t.Fatalf("migrate inventory: %v", err)
	}
	return db
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	pricingSvc, err := pricing.NewService(pricing.NewRepository(db))
	if err != nil {
		t.Fatalf("pricing service: %v", err)
	}
	svc, err := NewService(NewRepository(db), pricingSvc, inventory.NewLedger(db))
	if err != nil {
		t.Fatalf("product service: %v", err)
	}
	return svc
}

func seedProduct(t *testing.T, db *gorm.DB, tenantID uuid.UUID, name string, baseCents int, active bool) *models.Product {
	t.Helper()
	row := &models.Product{
		ID:             uuid.New(),
		TenantID:       tenantID,
		SKU:            "SKU-" + uuid.NewString(),
		Name:           name,
		UnitsPerCase:   6,
		BasePriceCents: baseCents,
		IsActive:       active,
	}
	if err := db.Create(row).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return row
}

func TestListProductsAppliesWaterfallAndAvailability(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	tenantID := uuid.New()
	customerID := uuid.New()
	widget := seedProduct(t, db, tenantID, "Widget", 1000, true)
	gadget := seedProduct(t, db, tenantID, "Gadget", 500, true)
	seedProduct(t, db, tenantID, "Retired", 100, false)
	seedProduct(t, db, uuid.New(), "Other Tenant", 100, true)

	rule := &models.PriceRule{
		ID:             uuid.New(),
		TenantID:       tenantID,
		ProductID:      widget.ID,
		CustomerID:     &customerID,
		Tier:           enums.PriceTierCustomer,
		UnitPriceCents: 850,
	}
	if err := db.Create(rule).Error; err != nil {
		t.Fatalf("seed rule: %v", err)
	}
	stock := &models.InventoryItem{TenantID: tenantID, ProductID: widget.ID, OnHandQty: 10, ReservedQty: 3}
	if err := db.Create(stock).Error; err != nil {
		t.Fatalf("seed stock: %v", err)
	}

	tc := &tenant.Context{TenantID: tenantID, UserID: uuid.New(), CustomerID: &customerID}
	list, err := svc.ListProducts(ctx, tc)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 active products, got %d", len(list))
	}

	byID := map[uuid.UUID]ProductDTO{}
	for _, dto := range list {
		byID[dto.ID] = dto
	}
	if got := byID[widget.ID]; got.EffectivePriceCents != 850 || got.PriceTier != enums.PriceTierCustomer || got.AvailableQty != 7 {
		t.Fatalf("widget dto: %+v", got)
	}
	if got := byID[gadget.ID]; got.EffectivePriceCents != 500 || got.PriceTier != enums.PriceTierBase || got.AvailableQty != 0 {
		t.Fatalf("gadget dto: %+v", got)
	}
}

func TestGetProductScopedToTenant(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)

	row := seedProduct(t, db, uuid.New(), "Widget", 1000, true)
	tc := &tenant.Context{TenantID: uuid.New(), UserID: uuid.New()}

	_, err := svc.GetProduct(context.Background(), tc, row.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found across tenants, got %v", err)
	}
}
