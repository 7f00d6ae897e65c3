package vacations

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vigilant-ops/cuadrante-api/pkg/db/models"
	pkgerrors "github.com/vigilant-ops/cuadrante-api/pkg/errors"
)

const dateLayout = "2006-01-02"

type vacationRepository interface {
	Create(ctx context.Context, vacation *models.VacationRequest) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.VacationRequest, error)
	ListAll(ctx context.Context) ([]models.VacationRequest, error)
}

type notifier interface {
	VacationRequested(ctx context.Context, recipientEmail string, vacation *models.VacationRequest)
}

// Service handles vacation requests. Requests are created pending and listed;
// no approval transition exists yet.
type Service struct {
	repo     vacationRepository
	notifier notifier
}

// ServiceParams bundles the dependencies for the vacation workflow.
type ServiceParams struct {
	Repo     vacationRepository
	Notifier notifier
}

// NewService constructs a vacation service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("vacation repository is required")
	}
	return &Service{repo: params.Repo, notifier: params.Notifier}, nil
}

// Create validates the period and stores a pending request. The requester
// gets a confirmation email when notifications are configured.
func (s *Service) Create(ctx context.Context, requesterID uuid.UUID, requesterEmail string, req CreateVacationRequest) (*VacationDTO, error) {
	start, err := parseDate("fecha_inicio", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("fecha_fin", req.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "la fecha de fin no puede ser anterior a la de inicio")
	}

	vacation := &models.VacationRequest{
		RequesterID: requesterID,
		StartDate:   start.Format(dateLayout),
		EndDate:     end.Format(dateLayout),
		Reason:      req.Reason,
	}
	if err := s.repo.Create(ctx, vacation); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vacation request")
	}

	if s.notifier != nil && requesterEmail != "" {
		s.notifier.VacationRequested(ctx, requesterEmail, vacation)
	}

	return FromModel(vacation), nil
}

// ListMine returns the caller's vacation requests, newest first.
func (s *Service) ListMine(ctx context.Context, userID uuid.UUID) ([]VacationDTO, error) {
	vacations, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vacation requests")
	}
	return fromModels(vacations), nil
}

// ListAll returns every vacation request for coordinators.
func (s *Service) ListAll(ctx context.Context) ([]VacationDTO, error) {
	vacations, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list all vacation requests")
	}
	return fromModels(vacations), nil
}

func parseDate(field, raw string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "la fecha debe usar el formato YYYY-MM-DD").
			WithDetails(map[string]any{"field": field})
	}
	return parsed, nil
}
