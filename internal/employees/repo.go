package employees

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vigilant-ops/cuadrante-api/pkg/db/models"
)

// Repository exposes roster persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an employees repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a copy of the repository bound to the supplied transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads an employee by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.WithContext(ctx).First(&employee, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindByUserID loads the employee linked to the given account.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindByFullName matches the roster name ignoring case and surrounding whitespace.
func (r *Repository) FindByFullName(ctx context.Context, fullName string) (*models.Employee, error) {
	var employee models.Employee
	normalized := strings.ToLower(strings.TrimSpace(fullName))
	if err := r.db.WithContext(ctx).
		Where("lower(trim(nombre_completo)) = ?", normalized).
		First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindByEmail matches the roster contact email ignoring case.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Employee, error) {
	var employee models.Employee
	normalized := strings.ToLower(strings.TrimSpace(email))
	if err := r.db.WithContext(ctx).
		Where("lower(email) = ?", normalized).
		First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// ListAll returns every roster record ordered by name.
func (r *Repository) ListAll(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	if err := r.db.WithContext(ctx).Order("nombre_completo").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// Upsert inserts or refreshes a roster record keyed by nombre_completo.
func (r *Repository) Upsert(ctx context.Context, dto UpsertEmployeeDTO) (*models.Employee, error) {
	employee := &models.Employee{
		ID:       uuid.New(),
		FullName: strings.TrimSpace(dto.FullName),
		Email:    dto.Email,
		Phone:    dto.Phone,
		DNI:      dto.DNI,
		HireDate: dto.HireDate,
		Category: "Vigilante",
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "nombre_completo"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "telefono", "dni", "fecha_alta"}),
		}).
		Create(employee).Error
	if err != nil {
		return nil, err
	}
	return r.FindByFullName(ctx, employee.FullName)
}

// LinkUser sets the enforced account link on the roster record.
func (r *Repository) LinkUser(ctx context.Context, employeeID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("id = ?", employeeID).
		UpdateColumn("user_id", userID).Error
}
