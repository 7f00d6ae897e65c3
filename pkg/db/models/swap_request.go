package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/vigilant-ops/cuadrante-api/pkg/enums"
)

// SwapRequest is a permuta: a proposal to exchange the requester's shift on
// OriginDate for the receiver's shift on DestinationDate. Dates are stored in
// YYYY-MM-DD form, matching the payloads the clients exchange.
type SwapRequest struct {
	ID              uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RequesterID     uuid.UUID        `gorm:"column:solicitante_id;type:uuid;not null;index"`
	ReceiverID      uuid.UUID        `gorm:"column:receptor_id;type:uuid;not null;index"`
	OriginDate      string           `gorm:"column:fecha_origen;not null"`
	DestinationDate string           `gorm:"column:fecha_destino;not null"`
	Status          enums.SwapStatus `gorm:"column:estado;type:text;not null;default:'pendiente'"`
	Reason          *string          `gorm:"column:motivo"`
	RequestedAt     time.Time        `gorm:"column:fecha_solicitud;autoCreateTime"`
}

func (SwapRequest) TableName() string {
	return "permutas"
}
