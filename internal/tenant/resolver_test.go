package tenant

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rfigueroa/wholesale-portal-backend/pkg/auth"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/db/models"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/enums"
	pkgerrors "github.com/rfigueroa/wholesale-portal-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:tenant_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	ddl := `
CREATE TABLE IF NOT EXISTS tenants (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  currency TEXT NOT NULL DEFAULT 'USD',
  tax_rate NUMERIC NOT NULL DEFAULT 0,
  free_shipping_threshold_cents INTEGER NOT NULL DEFAULT 0,
  flat_shipping_fee_cents INTEGER NOT NULL DEFAULT 0,
  default_sample_allowance INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	if err := db.Exec(ddl).Error; err != nil {
		t.Fatalf("create tenants table: %v", err)
	}
	return db
}

func seedTenant(t *testing.T, db *gorm.DB, active bool) *models.Tenant {
	t.Helper()
	row := &models.Tenant{
		ID:                         uuid.New(),
		Name:                       "Acme Wholesale",
		Slug:                       "acme-" + uuid.NewString(),
		Currency:                   enums.CurrencyUSD,
		TaxRate:                    decimal.RequireFromString("0.09"),
		FreeShippingThresholdCents: 10000,
		FlatShippingFeeCents:       500,
		IsActive:                   active,
	}
	if err := db.Create(row).Error; err != nil {
		t.Fatalf("seed tenant: %v", err)
	}
	return row
}

func TestResolveBuildsScopedContext(t *testing.T) {
	db := newTestDB(t)
	row := seedTenant(t, db, true)

	res, err := NewResolver(NewRepository(db))
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	customerID := uuid.New()
	claims := &auth.AccessTokenClaims{
		UserID:      uuid.New(),
		TenantID:    row.ID,
		CustomerID:  &customerID,
		Permissions: []string{"cart.write", "orders.create"},
	}

	tc, err := res.Resolve(context.Background(), claims)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if tc.TenantID != row.ID {
		t.Fatalf("tenant id mismatch: %s", tc.TenantID)
	}
	if tc.CustomerID == nil || *tc.CustomerID != customerID {
		t.Fatal("customer id not carried into context")
	}
	if !tc.Settings.TaxRate.Equal(decimal.RequireFromString("0.09")) {
		t.Fatalf("tax rate mismatch: %s", tc.Settings.TaxRate)
	}
	if tc.Settings.FreeShippingThresholdCents != 10000 || tc.Settings.FlatShippingFeeCents != 500 {
		t.Fatalf("shipping settings mismatch: %+v", tc.Settings)
	}
	if err := tc.RequirePermission("orders.create"); err != nil {
		t.Fatalf("expected permission present: %v", err)
	}
	if err := tc.RequirePermission("admin.manage"); err == nil {
		t.Fatal("expected forbidden for missing permission")
	} else if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResolveRejectsUnknownTenant(t *testing.T) {
	db := newTestDB(t)
	res, err := NewResolver(NewRepository(db))
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	_, err = res.Resolve(context.Background(), &auth.AccessTokenClaims{
		UserID:   uuid.New(),
		TenantID: uuid.New(),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestResolveRejectsDeactivatedTenant(t *testing.T) {
	db := newTestDB(t)
	row := seedTenant(t, db, false)

	res, err := NewResolver(NewRepository(db))
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	_, err = res.Resolve(context.Background(), &auth.AccessTokenClaims{
		UserID:   uuid.New(),
		TenantID: row.ID,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestResolveRejectsNilClaims(t *testing.T) {
	res, err := NewResolver(NewRepository(newTestDB(t)))
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	if _, err := res.Resolve(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil claims")
	}
}
