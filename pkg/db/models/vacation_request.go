package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/vigilant-ops/cuadrante-api/pkg/enums"
)

// VacationRequest records a requested vacation period. Requests stay pending:
// no approval transition is exposed yet.
type VacationRequest struct {
	ID          uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RequesterID uuid.UUID            `gorm:"column:solicitante_id;type:uuid;not null;index"`
	StartDate   string               `gorm:"column:fecha_inicio;not null"`
	EndDate     string               `gorm:"column:fecha_fin;not null"`
	Status      enums.VacationStatus `gorm:"column:estado;type:text;not null;default:'pendiente'"`
	Reason      *string              `gorm:"column:motivo"`
	RequestedAt time.Time            `gorm:"column:fecha_solicitud;autoCreateTime"`
}

func (VacationRequest) TableName() string {
	return "vacaciones"
}
