package swaps

import (
	"time"

	"github.com/google/uuid"

	"github.com/vigilant-ops/cuadrante-api/pkg/db/models"
	"github.com/vigilant-ops/cuadrante-api/pkg/enums"
)

// CreateSwapRequest is the payload for proposing a permuta.
type CreateSwapRequest struct {
	ReceiverEmail   string  `json:"receptor_email" validate:"required,email"`
	OriginDate      string  `json:"fecha_origen" validate:"required"`
	DestinationDate string  `json:"fecha_destino" validate:"required"`
	Reason          *string `json:"motivo,omitempty"`
}

// SwapDTO is the transport shape for a permuta.
type SwapDTO struct {
	ID              uuid.UUID        `json:"id"`
	RequesterID     uuid.UUID        `json:"solicitante_id"`
	ReceiverID      uuid.UUID        `json:"receptor_id"`
	OriginDate      string           `json:"fecha_origen"`
	DestinationDate string           `json:"fecha_destino"`
	Status          enums.SwapStatus `json:"estado"`
	Reason          *string          `json:"motivo,omitempty"`
	RequestedAt     time.Time        `json:"fecha_solicitud"`
}

func FromModel(swap *models.SwapRequest) *SwapDTO {
	if swap == nil {
		return nil
	}
	return &SwapDTO{
		ID:              swap.ID,
		RequesterID:     swap.RequesterID,
		ReceiverID:      swap.ReceiverID,
		OriginDate:      swap.OriginDate,
		DestinationDate: swap.DestinationDate,
		Status:          swap.Status,
		Reason:          swap.Reason,
		RequestedAt:     swap.RequestedAt,
	}
}

func fromModels(swaps []models.SwapRequest) []SwapDTO {
	dtos := make([]SwapDTO, 0, len(swaps))
	for i := range swaps {
		dtos = append(dtos, *FromModel(&swaps[i]))
	}
	return dtos
}
