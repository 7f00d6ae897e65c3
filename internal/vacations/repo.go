package vacations

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vigilant-ops/cuadrante-api/pkg/db/models"
	"github.com/vigilant-ops/cuadrante-api/pkg/enums"
)

// Repository persists vacaciones rows.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, vacation *models.VacationRequest) error {
	if vacation.ID == uuid.Nil {
		vacation.ID = uuid.New()
	}
	if vacation.Status == "" {
		vacation.Status = enums.VacationStatusPending
	}
	return r.db.WithContext(ctx).Create(vacation).Error
}

func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.VacationRequest, error) {
	var vacations []models.VacationRequest
	err := r.db.WithContext(ctx).
		Where("solicitante_id = ?", userID).
		Order("fecha_solicitud DESC").
		Find(&vacations).Error
	return vacations, err
}

func (r *Repository) ListAll(ctx context.Context) ([]models.VacationRequest, error) {
	var vacations []models.VacationRequest
	err := r.db.WithContext(ctx).
		Order("fecha_solicitud DESC").
		Find(&vacations).Error
	return vacations, err
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}
