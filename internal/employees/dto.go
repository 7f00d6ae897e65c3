package employees

import (
	"github.com/google/uuid"

	"github.com/vigilant-ops/cuadrante-api/pkg/db/models"
)

// EmployeeDTO is the transport shape for roster records.
type EmployeeDTO struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"nombre_completo"`
	Email    *string   `json:"email,omitempty"`
	Phone    *string   `json:"telefono,omitempty"`
	DNI      *string   `json:"dni,omitempty"`
	HireDate *string   `json:"fecha_alta,omitempty"`
	Category string    `json:"categoria"`
}

// UpsertEmployeeDTO carries the roster fields accepted from the sync payload.
type UpsertEmployeeDTO struct {
	FullName string
	Email    *string
	Phone    *string
	DNI      *string
	HireDate *string
}

func FromModel(e *models.Employee) *EmployeeDTO {
	if e == nil {
		return nil
	}
	return &EmployeeDTO{
		ID:       e.ID,
		FullName: e.FullName,
		Email:    e.Email,
		Phone:    e.Phone,
		DNI:      e.DNI,
		HireDate: e.HireDate,
		Category: e.Category,
	}
}
