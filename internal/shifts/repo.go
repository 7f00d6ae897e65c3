package shifts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vigilant-ops/cuadrante-api/pkg/db/models"
)

// Repository exposes shift persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a shifts repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a copy of the repository bound to the supplied transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListForEmployeeYear returns every shift for one employee in a year.
func (r *Repository) ListForEmployeeYear(ctx context.Context, employeeID uuid.UUID, year int) ([]models.Shift, error) {
	var shifts []models.Shift
	if err := r.db.WithContext(ctx).
		Where("empleado_id = ? AND anio = ?", employeeID, year).
		Order("mes, dia").
		Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

// ListForEmployeeMonth returns one employee's shifts in a month ordered by day.
func (r *Repository) ListForEmployeeMonth(ctx context.Context, employeeID uuid.UUID, year, month int) ([]models.Shift, error) {
	var shifts []models.Shift
	if err := r.db.WithContext(ctx).
		Where("empleado_id = ? AND anio = ? AND mes = ?", employeeID, year, month).
		Order("dia").
		Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

// ListForMonth returns every employee's shifts in a month.
func (r *Repository) ListForMonth(ctx context.Context, year, month int) ([]models.Shift, error) {
	var shifts []models.Shift
	if err := r.db.WithContext(ctx).
		Where("anio = ? AND mes = ?", year, month).
		Order("empleado_id, dia").
		Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

// DeleteForEmployeeMonth clears an employee's month before reinsertion.
func (r *Repository) DeleteForEmployeeMonth(ctx context.Context, employeeID uuid.UUID, year, month int) error {
	return r.db.WithContext(ctx).
		Where("empleado_id = ? AND anio = ? AND mes = ?", employeeID, year, month).
		Delete(&models.Shift{}).Error
}

// BulkInsert writes replacement rows for a month in one statement.
func (r *Repository) BulkInsert(ctx context.Context, shifts []models.Shift) error {
	if len(shifts) == 0 {
		return nil
	}
	for i := range shifts {
		if shifts[i].ID == uuid.Nil {
			shifts[i].ID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).CreateInBatches(shifts, 200).Error
}
