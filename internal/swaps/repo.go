package swaps

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vigilant-ops/cuadrante-api/pkg/db/models"
	"github.com/vigilant-ops/cuadrante-api/pkg/enums"
)

// Repository exposes permuta persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a swaps repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a copy of the repository bound to the supplied transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new pending swap request.
func (r *Repository) Create(ctx context.Context, swap *models.SwapRequest) error {
	if swap.ID == uuid.Nil {
		swap.ID = uuid.New()
	}
	if swap.Status == "" {
		swap.Status = enums.SwapStatusPendiente
	}
	return r.db.WithContext(ctx).Create(swap).Error
}

// FindByID loads a swap request.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.SwapRequest, error) {
	var swap models.SwapRequest
	if err := r.db.WithContext(ctx).First(&swap, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &swap, nil
}

// ListForUser returns requests where the user is requester or receiver.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.SwapRequest, error) {
	var swaps []models.SwapRequest
	if err := r.db.WithContext(ctx).
		Where("solicitante_id = ? OR receptor_id = ?", userID, userID).
		Order("fecha_solicitud DESC").
		Find(&swaps).Error; err != nil {
		return nil, err
	}
	return swaps, nil
}

// ListPendingReceived returns pending requests addressed to the user.
func (r *Repository) ListPendingReceived(ctx context.Context, userID uuid.UUID) ([]models.SwapRequest, error) {
	var swaps []models.SwapRequest
	if err := r.db.WithContext(ctx).
		Where("receptor_id = ? AND estado = ?", userID, enums.SwapStatusPendiente).
		Order("fecha_solicitud DESC").
		Find(&swaps).Error; err != nil {
		return nil, err
	}
	return swaps, nil
}

// ListAll returns every swap request, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]models.SwapRequest, error) {
	var swaps []models.SwapRequest
	if err := r.db.WithContext(ctx).
		Order("fecha_solicitud DESC").
		Find(&swaps).Error; err != nil {
		return nil, err
	}
	return swaps, nil
}

// TransitionFromPending applies a terminal state only when the row is still
// pending. Returns false when another transition won the race.
func (r *Repository) TransitionFromPending(ctx context.Context, id uuid.UUID, to enums.SwapStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("id = ? AND estado = ?", id, enums.SwapStatusPendiente).
		UpdateColumn("estado", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
