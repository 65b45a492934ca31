package pricing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rfigueroa/wholesale-portal-backend/internal/tenant"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/db/models"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/enums"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:pricing_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	ddl := `
CREATE TABLE IF NOT EXISTS price_rules (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  customer_id TEXT,
  tier TEXT NOT NULL,
  unit_price_cents INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	if err := db.Exec(ddl).Error; err != nil {
		t.Fatalf("create price_rules table: %v", err)
	}
	return db
}

func seedRule(t *testing.T, db *gorm.DB, tenantID, productID uuid.UUID, customerID *uuid.UUID, tier enums.PriceTier, cents int) {
	t.Helper()
	rule := &models.PriceRule{
		ID:             uuid.New(),
		TenantID:       tenantID,
		ProductID:      productID,
		CustomerID:     customerID,
		Tier:           tier,
		UnitPriceCents: cents,
	}
	if err := db.Create(rule).Error; err != nil {
		t.Fatalf("seed price rule: %v", err)
	}
}

func testContext(tenantID uuid.UUID, customerID *uuid.UUID) *tenant.Context {
	return &tenant.Context{
		TenantID:   tenantID,
		UserID:     uuid.New(),
		CustomerID: customerID,
	}
}

func testProduct(tenantID uuid.UUID, baseCents int) models.Product {
	return models.Product{
		ID:             uuid.New(),
		TenantID:       tenantID,
		SKU:            "SKU-" + uuid.NewString(),
		Name:           "Test Product",
		BasePriceCents: baseCents,
	}
}

func TestWaterfallCustomerRuleWins(t *testing.T) {
	db := newTestDB(t)
	svc, err := NewService(NewRepository(db))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	tenantID := uuid.New()
	customerID := uuid.New()
	product := testProduct(tenantID, 1000)

	seedRule(t, db, tenantID, product.ID, &customerID, enums.PriceTierCustomer, 800)
	seedRule(t, db, tenantID, product.ID, nil, enums.PriceTierPriceList, 900)

	res, err := svc.ResolvePrice(context.Background(), testContext(tenantID, &customerID), product)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.UnitPriceCents != 800 || res.Tier != enums.PriceTierCustomer {
		t.Fatalf("expected customer rule to win, got %+v", res)
	}
}

func TestWaterfallFallsThroughToPriceList(t *testing.T) {
	db := newTestDB(t)
	svc, err := NewService(NewRepository(db))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	tenantID := uuid.New()
	customerID := uuid.New()
	otherCustomer := uuid.New()
	product := testProduct(tenantID, 1000)

	// A different customer's rule must not apply.
	seedRule(t, db, tenantID, product.ID, &otherCustomer, enums.PriceTierCustomer, 700)
	seedRule(t, db, tenantID, product.ID, nil, enums.PriceTierPriceList, 900)

	res, err := svc.ResolvePrice(context.Background(), testContext(tenantID, &customerID), product)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.UnitPriceCents != 900 || res.Tier != enums.PriceTierPriceList {
		t.Fatalf("expected price list rule, got %+v", res)
	}
}

func TestWaterfallFallsThroughToBasePrice(t *testing.T) {
	db := newTestDB(t)
	svc, err := NewService(NewRepository(db))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	tenantID := uuid.New()
	product := testProduct(tenantID, 1250)

	res, err := svc.ResolvePrice(context.Background(), testContext(tenantID, nil), product)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.UnitPriceCents != 1250 || res.Tier != enums.PriceTierBase {
		t.Fatalf("expected base price, got %+v", res)
	}
}

func TestWaterfallIgnoresOtherTenantsRules(t *testing.T) {
	db := newTestDB(t)
	svc, err := NewService(NewRepository(db))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	tenantID := uuid.New()
	otherTenant := uuid.New()
	product := testProduct(tenantID, 1000)

	// Same product id under another tenant must never leak across.
	seedRule(t, db, otherTenant, product.ID, nil, enums.PriceTierPriceList, 100)

	res, err := svc.ResolvePrice(context.Background(), testContext(tenantID, nil), product)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.UnitPriceCents != 1000 || res.Tier != enums.PriceTierBase {
		t.Fatalf("expected base price, got %+v", res)
	}
}

func TestResolvePricesBatch(t *testing.T) {
	db := newTestDB(t)
	svc, err := NewService(NewRepository(db))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	tenantID := uuid.New()
	customerID := uuid.New()
	a := testProduct(tenantID, 500)
	b := testProduct(tenantID, 300)

	seedRule(t, db, tenantID, a.ID, &customerID, enums.PriceTierCustomer, 450)

	resolved, err := svc.ResolvePrices(context.Background(), testContext(tenantID, &customerID), []models.Product{a, b})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved[a.ID].UnitPriceCents != 450 {
		t.Fatalf("product a: %+v", resolved[a.ID])
	}
	if resolved[b.ID].UnitPriceCents != 300 || resolved[b.ID].Tier != enums.PriceTierBase {
		t.Fatalf("product b: %+v", resolved[b.ID])
	}
}

func TestResolvePricesRejectsCrossTenantProduct(t *testing.T) {
	svc, err := NewService(NewRepository(newTestDB(t)))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	product := testProduct(uuid.New(), 100)
	if _, err := svc.ResolvePrices(context.Background(), testContext(uuid.New(), nil), []models.Product{product}); err == nil {
		t.Fatal("expected error for cross-tenant product")
	}
}
