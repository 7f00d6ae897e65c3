package vacations

import (
	"time"

	"github.com/google/uuid"

	"github.com/vigilant-ops/cuadrante-api/pkg/db/models"
	"github.com/vigilant-ops/cuadrante-api/pkg/enums"
)

// CreateVacationRequest is the payload for requesting a vacation period.
type CreateVacationRequest struct {
	StartDate string  `json:"fecha_inicio" validate:"required"`
	EndDate   string  `json:"fecha_fin" validate:"required"`
	Reason    *string `json:"motivo" validate:"omitempty,max=500"`
}

// VacationDTO is the API shape of a vacaciones row.
type VacationDTO struct {
	ID          uuid.UUID            `json:"id"`
	RequesterID uuid.UUID            `json:"solicitante_id"`
	StartDate   string               `json:"fecha_inicio"`
	EndDate     string               `json:"fecha_fin"`
	Status      enums.VacationStatus `json:"estado"`
	Reason      *string              `json:"motivo,omitempty"`
	RequestedAt time.Time            `json:"fecha_solicitud"`
}

func FromModel(vacation *models.VacationRequest) *VacationDTO {
	return &VacationDTO{
		ID:          vacation.ID,
		RequesterID: vacation.RequesterID,
		StartDate:   vacation.StartDate,
		EndDate:     vacation.EndDate,
		Status:      vacation.Status,
		Reason:      vacation.Reason,
		RequestedAt: vacation.RequestedAt,
	}
}

func fromModels(vacations []models.VacationRequest) []VacationDTO {
	out := make([]VacationDTO, 0, len(vacations))
	for i := range vacations {
		out = append(out, *FromModel(&vacations[i]))
	}
	return out
}
