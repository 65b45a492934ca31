package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rfigueroa/wholesale-portal-backend/pkg/db/models"
	pkgerrors "github.com/rfigueroa/wholesale-portal-backend/pkg/errors"
)

const defaultNumberPrefix = "PO"

// NumberGenerator issues human-readable order numbers, unique and monotonic
// per tenant within a year, e.g. PO-2026-00042. It must run inside the
// checkout transaction: the sequence row upsert takes a row lock, so two
// concurrent checkouts for the same tenant serialize on it and an aborted
// checkout leaves a gap, which is acceptable.
type NumberGenerator struct {
	db     *gorm.DB
	prefix string
}

// NewNumberGenerator builds a generator bound to the provided DB.
func NewNumberGenerator(db *gorm.DB, prefix string) *NumberGenerator {
	if prefix == "" {
		prefix = defaultNumberPrefix
	}
	return &NumberGenerator{db: db, prefix: prefix}
}

// WithTx returns a generator bound to the provided transaction.
func (g *NumberGenerator) WithTx(tx *gorm.DB) *NumberGenerator {
	if tx == nil {
		return g
	}
	return &NumberGenerator{db: tx, prefix: g.prefix}
}

// Next increments and formats the tenant's sequence for the current year.
func (g *NumberGenerator) Next(ctx context.Context, tenantID uuid.UUID, now time.Time) (string, error) {
	if tenantID == uuid.Nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}

	year := now.UTC().Year()
	seed := models.OrderSequence{TenantID: tenantID, Year: year, LastValue: 1}
	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "year"}},
			DoUpdates: clause.Assignments(map[string]any{"last_value": gorm.Expr("last_value + 1")}),
		}).
		Create(&seed).Error
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "advancing order sequence")
	}

	var row models.OrderSequence
	err = g.db.WithContext(ctx).
		First(&row, "tenant_id = ? AND year = ?", tenantID, year).Error
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reading order sequence")
	}

	return fmt.Sprintf("%s-%d-%05d", g.prefix, year, row.LastValue), nil
}
