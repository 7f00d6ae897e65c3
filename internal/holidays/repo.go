package holidays

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vigilant-ops/cuadrante-api/pkg/db/models"
	"github.com/vigilant-ops/cuadrante-api/pkg/enums"
)

// Repository exposes festivo persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a holidays repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a copy of the repository bound to the supplied transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListAll returns every stored festivo.
func (r *Repository) ListAll(ctx context.Context) ([]models.Holiday, error) {
	var holidays []models.Holiday
	if err := r.db.WithContext(ctx).Find(&holidays).Error; err != nil {
		return nil, err
	}
	return holidays, nil
}

// Upsert stores a festivo, ignoring exact duplicates.
func (r *Repository) Upsert(ctx context.Context, date string, scope enums.HolidayScope) error {
	if !scope.IsValid() {
		return fmt.Errorf("invalid holiday scope %q", scope)
	}
	holiday := &models.Holiday{Date: date, Scope: scope}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(holiday).Error
}
