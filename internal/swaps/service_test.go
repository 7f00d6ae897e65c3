package swaps

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vigilant-ops/cuadrante-api/pkg/db/models"
	"github.com/vigilant-ops/cuadrante-api/pkg/enums"
	pkgerrors "github.com/vigilant-ops/cuadrante-api/pkg/errors"
)

type stubSwapRepo struct {
	swaps       map[uuid.UUID]*models.SwapRequest
	createErr   error
	transitions []enums.SwapStatus
	refuse      bool
}

func newStubSwapRepo() *stubSwapRepo {
	return &stubSwapRepo{swaps: make(map[uuid.UUID]*models.SwapRequest)}
}

func (s *stubSwapRepo) Create(_ context.Context, swap *models.SwapRequest) error {
	if s.createErr != nil {
		return s.createErr
	}
	if swap.ID == uuid.Nil {
		swap.ID = uuid.New()
	}
	if swap.Status == "" {
		swap.Status = enums.SwapStatusPendiente
	}
	s.swaps[swap.ID] = swap
	return nil
}

func (s *stubSwapRepo) FindByID(_ context.Context, id uuid.UUID) (*models.SwapRequest, error) {
	swap, ok := s.swaps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return swap, nil
}

func (s *stubSwapRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]models.SwapRequest, error) {
	var out []models.SwapRequest
	for _, swap := range s.swaps {
		if swap.RequesterID == userID || swap.ReceiverID == userID {
			out = append(out, *swap)
		}
	}
	return out, nil
}

func (s *stubSwapRepo) ListPendingReceived(_ context.Context, userID uuid.UUID) ([]models.SwapRequest, error) {
	var out []models.SwapRequest
	for _, swap := range s.swaps {
		if swap.ReceiverID == userID && swap.Status == enums.SwapStatusPendiente {
			out = append(out, *swap)
		}
	}
	return out, nil
}

func (s *stubSwapRepo) ListAll(_ context.Context) ([]models.SwapRequest, error) {
	var out []models.SwapRequest
	for _, swap := range s.swaps {
		out = append(out, *swap)
	}
	return out, nil
}

func (s *stubSwapRepo) TransitionFromPending(_ context.Context, id uuid.UUID, to enums.SwapStatus) (bool, error) {
	s.transitions = append(s.transitions, to)
	if s.refuse {
		return false, nil
	}
	swap, ok := s.swaps[id]
	if !ok || swap.Status != enums.SwapStatusPendiente {
		return false, nil
	}
	swap.Status = to
	return true, nil
}

type stubSwapUserFinder struct {
	users map[string]*models.User
}

func (s *stubSwapUserFinder) FindByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

type recordingNotifier struct {
	emails []string
}

func (r *recordingNotifier) SwapRequested(_ context.Context, recipientEmail string, _ *models.SwapRequest) {
	r.emails = append(r.emails, recipientEmail)
}

func fixedNow() time.Time {
	return time.Date(2025, time.May, 10, 12, 0, 0, 0, time.UTC)
}

func newSwapService(t *testing.T, repo *stubSwapRepo, users *stubSwapUserFinder, note *recordingNotifier) *Service {
	t.Helper()
	var n notifier
	if note != nil {
		n = note
	}
	svc, err := NewService(ServiceParams{Repo: repo, Users: users, Notifier: n, Now: fixedNow})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func assertSwapCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	var typed *pkgerrors.Error
	if !errors.As(err, &typed) {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s, got %s (%v)", code, typed.Code(), err)
	}
}

func TestCreateSwapNotifiesReceiver(t *testing.T) {
	repo := newStubSwapRepo()
	receiver := &models.User{ID: uuid.New(), Email: "luis@empresa.es"}
	users := &stubSwapUserFinder{users: map[string]*models.User{receiver.Email: receiver}}
	note := &recordingNotifier{}
	svc := newSwapService(t, repo, users, note)

	requester := uuid.New()
	dto, err := svc.Create(context.Background(), requester, CreateSwapRequest{
		ReceiverEmail:   "Luis@Empresa.es",
		OriginDate:      "2025-06-01",
		DestinationDate: "2025-06-02",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if dto.Status != enums.SwapStatusPendiente {
		t.Fatalf("expected pendiente, got %s", dto.Status)
	}
	if len(note.emails) != 1 || note.emails[0] != "luis@empresa.es" {
		t.Fatalf("expected one notification to the receiver, got %v", note.emails)
	}
}

func TestCreateSwapReceiverNotFound(t *testing.T) {
	svc := newSwapService(t, newStubSwapRepo(), &stubSwapUserFinder{users: map[string]*models.User{}}, nil)

	_, err := svc.Create(context.Background(), uuid.New(), CreateSwapRequest{
		ReceiverEmail:   "nadie@empresa.es",
		OriginDate:      "2025-06-01",
		DestinationDate: "2025-06-02",
	})
	assertSwapCode(t, err, pkgerrors.CodeNotFound)
}

func TestCreateSwapRejectsSelf(t *testing.T) {
	requester := uuid.New()
	users := &stubSwapUserFinder{users: map[string]*models.User{
		"yo@empresa.es": {ID: requester, Email: "yo@empresa.es"},
	}}
	svc := newSwapService(t, newStubSwapRepo(), users, nil)

	_, err := svc.Create(context.Background(), requester, CreateSwapRequest{
		ReceiverEmail:   "yo@empresa.es",
		OriginDate:      "2025-06-01",
		DestinationDate: "2025-06-02",
	})
	assertSwapCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateSwapRejectsPastAndEqualDates(t *testing.T) {
	receiver := &models.User{ID: uuid.New(), Email: "luis@empresa.es"}
	users := &stubSwapUserFinder{users: map[string]*models.User{receiver.Email: receiver}}
	svc := newSwapService(t, newStubSwapRepo(), users, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, uuid.New(), CreateSwapRequest{
		ReceiverEmail:   receiver.Email,
		OriginDate:      "2025-05-01",
		DestinationDate: "2025-06-02",
	})
	assertSwapCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Create(ctx, uuid.New(), CreateSwapRequest{
		ReceiverEmail:   receiver.Email,
		OriginDate:      "2025-06-01",
		DestinationDate: "2025-06-01",
	})
	assertSwapCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Create(ctx, uuid.New(), CreateSwapRequest{
		ReceiverEmail:   receiver.Email,
		OriginDate:      "01/06/2025",
		DestinationDate: "2025-06-02",
	})
	assertSwapCode(t, err, pkgerrors.CodeValidation)
}

func TestAcceptOnlyReceiver(t *testing.T) {
	repo := newStubSwapRepo()
	receiver := uuid.New()
	swap := &models.SwapRequest{RequesterID: uuid.New(), ReceiverID: receiver}
	if err := repo.Create(context.Background(), swap); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := newSwapService(t, repo, &stubSwapUserFinder{}, nil)

	_, err := svc.Accept(context.Background(), swap.RequesterID, swap.ID)
	assertSwapCode(t, err, pkgerrors.CodeForbidden)

	dto, err := svc.Accept(context.Background(), receiver, swap.ID)
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if dto.Status != enums.SwapStatusAceptada {
		t.Fatalf("expected aceptada, got %s", dto.Status)
	}
}

func TestRejectResolvesByActor(t *testing.T) {
	ctx := context.Background()
	requester := uuid.New()
	receiver := uuid.New()

	repo := newStubSwapRepo()
	byReceiver := &models.SwapRequest{RequesterID: requester, ReceiverID: receiver}
	byRequester := &models.SwapRequest{RequesterID: requester, ReceiverID: receiver}
	for _, swap := range []*models.SwapRequest{byReceiver, byRequester} {
		if err := repo.Create(ctx, swap); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	svc := newSwapService(t, repo, &stubSwapUserFinder{}, nil)

	dto, err := svc.Reject(ctx, receiver, byReceiver.ID)
	if err != nil {
		t.Fatalf("Reject by receiver: %v", err)
	}
	if dto.Status != enums.SwapStatusRechazada {
		t.Fatalf("expected rechazada, got %s", dto.Status)
	}

	dto, err = svc.Reject(ctx, requester, byRequester.ID)
	if err != nil {
		t.Fatalf("Reject by requester: %v", err)
	}
	if dto.Status != enums.SwapStatusCancelada {
		t.Fatalf("expected cancelada, got %s", dto.Status)
	}

	_, err = svc.Reject(ctx, uuid.New(), byReceiver.ID)
	assertSwapCode(t, err, pkgerrors.CodeForbidden)
}

func TestTransitionRaceReturnsStateConflict(t *testing.T) {
	repo := newStubSwapRepo()
	receiver := uuid.New()
	swap := &models.SwapRequest{RequesterID: uuid.New(), ReceiverID: receiver}
	if err := repo.Create(context.Background(), swap); err != nil {
		t.Fatalf("seed: %v", err)
	}
	repo.refuse = true
	svc := newSwapService(t, repo, &stubSwapUserFinder{}, nil)

	_, err := svc.Accept(context.Background(), receiver, swap.ID)
	assertSwapCode(t, err, pkgerrors.CodeStateConflict)
}

func TestAcceptUnknownSwap(t *testing.T) {
	svc := newSwapService(t, newStubSwapRepo(), &stubSwapUserFinder{}, nil)

	_, err := svc.Accept(context.Background(), uuid.New(), uuid.New())
	assertSwapCode(t, err, pkgerrors.CodeNotFound)
}
