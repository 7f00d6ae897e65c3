package swaps

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vigilant-ops/cuadrante-api/pkg/db/models"
	"github.com/vigilant-ops/cuadrante-api/pkg/enums"
	pkgerrors "github.com/vigilant-ops/cuadrante-api/pkg/errors"
)

const dateLayout = "2006-01-02"

type swapRepository interface {
	Create(ctx context.Context, swap *models.SwapRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.SwapRequest, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.SwapRequest, error)
	ListPendingReceived(ctx context.Context, userID uuid.UUID) ([]models.SwapRequest, error)
	ListAll(ctx context.Context) ([]models.SwapRequest, error)
	TransitionFromPending(ctx context.Context, id uuid.UUID, to enums.SwapStatus) (bool, error)
}

type userFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type notifier interface {
	SwapRequested(ctx context.Context, recipientEmail string, swap *models.SwapRequest)
}

// Service drives the permuta state machine.
type Service struct {
	repo     swapRepository
	users    userFinder
	notifier notifier
	now      func() time.Time
}

// ServiceParams bundles the dependencies for the swap workflow.
type ServiceParams struct {
	Repo     swapRepository
	Users    userFinder
	Notifier notifier
	Now      func() time.Time
}

// NewService constructs a swap service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("swap repository is required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user finder is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:     params.Repo,
		users:    params.Users,
		notifier: params.Notifier,
		now:      now,
	}, nil
}

// Create validates and stores a new pending permuta, then notifies the
// receiver fire-and-forget.
func (s *Service) Create(ctx context.Context, requesterID uuid.UUID, req CreateSwapRequest) (*SwapDTO, error) {
	origin, err := s.parseFutureDate("fecha_origen", req.OriginDate)
	if err != nil {
		return nil, err
	}
	destination, err := s.parseFutureDate("fecha_destino", req.DestinationDate)
	if err != nil {
		return nil, err
	}
	if origin.Equal(destination) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "las fechas de la permuta deben ser distintas")
	}

	receiver, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.ReceiverEmail)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "receptor no encontrado")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup receiver")
	}
	if receiver.ID == requesterID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no puedes permutar contigo mismo")
	}

	swap := &models.SwapRequest{
		RequesterID:     requesterID,
		ReceiverID:      receiver.ID,
		OriginDate:      origin.Format(dateLayout),
		DestinationDate: destination.Format(dateLayout),
		Status:          enums.SwapStatusPendiente,
		Reason:          req.Reason,
	}
	if err := s.repo.Create(ctx, swap); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create swap")
	}

	if s.notifier != nil {
		s.notifier.SwapRequested(ctx, receiver.Email, swap)
	}

	return FromModel(swap), nil
}

// Accept moves a pending permuta to aceptada. Only the receiver may accept.
func (s *Service) Accept(ctx context.Context, actorID, swapID uuid.UUID) (*SwapDTO, error) {
	swap, err := s.load(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if swap.ReceiverID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "solo el receptor puede aceptar la permuta")
	}
	return s.transition(ctx, swapID, enums.SwapStatusAceptada)
}

// Reject resolves a pending permuta: the receiver rejects it, the requester
// withdraws it (cancelada). Anyone else is forbidden.
func (s *Service) Reject(ctx context.Context, actorID, swapID uuid.UUID) (*SwapDTO, error) {
	swap, err := s.load(ctx, swapID)
	if err != nil {
		return nil, err
	}

	var target enums.SwapStatus
	switch actorID {
	case swap.ReceiverID:
		target = enums.SwapStatusRechazada
	case swap.RequesterID:
		target = enums.SwapStatusCancelada
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "no participas en esta permuta")
	}
	return s.transition(ctx, swapID, target)
}

// ListForUser returns the caller's permutas in either role.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]SwapDTO, error) {
	swaps, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list swaps")
	}
	return fromModels(swaps), nil
}

// ListPendingReceived returns pending permutas awaiting the caller's decision.
func (s *Service) ListPendingReceived(ctx context.Context, userID uuid.UUID) ([]SwapDTO, error) {
	swaps, err := s.repo.ListPendingReceived(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pending swaps")
	}
	return fromModels(swaps), nil
}

// ListAll returns every permuta for coordinators.
func (s *Service) ListAll(ctx context.Context) ([]SwapDTO, error) {
	swaps, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list all swaps")
	}
	return fromModels(swaps), nil
}

func (s *Service) load(ctx context.Context, swapID uuid.UUID) (*models.SwapRequest, error) {
	swap, err := s.repo.FindByID(ctx, swapID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "permuta no encontrada")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load swap")
	}
	return swap, nil
}

func (s *Service) transition(ctx context.Context, swapID uuid.UUID, to enums.SwapStatus) (*SwapDTO, error) {
	applied, err := s.repo.TransitionFromPending(ctx, swapID, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "transition swap")
	}
	if !applied {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "la permuta ya no esta pendiente")
	}
	swap, err := s.load(ctx, swapID)
	if err != nil {
		return nil, err
	}
	return FromModel(swap), nil
}

func (s *Service) parseFutureDate(field, raw string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "la fecha debe usar el formato YYYY-MM-DD").
			WithDetails(map[string]any{"field": field})
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if parsed.Before(today) {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "la fecha no puede estar en el pasado").
			WithDetails(map[string]any{"field": field})
	}
	return parsed, nil
}
