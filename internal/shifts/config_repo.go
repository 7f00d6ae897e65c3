package shifts

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vigilant-ops/cuadrante-api/pkg/db/models"
)

// ConfigRepository exposes config_turnos persistence operations.
type ConfigRepository struct {
	db *gorm.DB
}

// NewConfigRepository constructs a shift-config repo bound to the provided GORM DB.
func NewConfigRepository(db *gorm.DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

// WithTx returns a copy of the repository bound to the supplied transaction.
func (r *ConfigRepository) WithTx(tx *gorm.DB) *ConfigRepository {
	return &ConfigRepository{db: tx}
}

// ListAll returns every configured shift code.
func (r *ConfigRepository) ListAll(ctx context.Context) ([]models.ShiftConfig, error) {
	var configs []models.ShiftConfig
	if err := r.db.WithContext(ctx).Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}

// Upsert inserts or replaces a shift code definition.
func (r *ConfigRepository) Upsert(ctx context.Context, config *models.ShiftConfig) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "codigo"}},
			DoUpdates: clause.AssignmentColumns([]string{"descripcion", "horario", "color", "horas_total", "horas_nocturnas"}),
		}).
		Create(config).Error
}
