package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vigilant-ops/cuadrante-api/internal/auth"
	"github.com/vigilant-ops/cuadrante-api/internal/balance"
	"github.com/vigilant-ops/cuadrante-api/internal/employees"
	"github.com/vigilant-ops/cuadrante-api/internal/holidays"
	"github.com/vigilant-ops/cuadrante-api/internal/shifts"
	"github.com/vigilant-ops/cuadrante-api/internal/swaps"
	syncsvc "github.com/vigilant-ops/cuadrante-api/internal/sync"
	"github.com/vigilant-ops/cuadrante-api/internal/users"
	"github.com/vigilant-ops/cuadrante-api/internal/vacations"
	pkgAuth "github.com/vigilant-ops/cuadrante-api/pkg/auth"
	"github.com/vigilant-ops/cuadrante-api/pkg/config"
	"github.com/vigilant-ops/cuadrante-api/pkg/db/models"
	"github.com/vigilant-ops/cuadrante-api/pkg/enums"
	"github.com/vigilant-ops/cuadrante-api/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{TokenType: "bearer"}, nil
}

func (stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*users.UserDTO, error) {
	return &users.UserDTO{ID: uuid.New(), Email: req.Email}, nil
}

func (stubAuthService) Profile(ctx context.Context, userID uuid.UUID) (*auth.ProfileResponse, error) {
	return &auth.ProfileResponse{User: &users.UserDTO{ID: userID}}, nil
}

func (stubAuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req auth.ChangePasswordRequest) error {
	return nil
}

type stubEmployeeFinder struct{}

func (stubEmployeeFinder) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Employee, error) {
	return &models.Employee{ID: uuid.New(), FullName: "Guardia Prueba"}, nil
}

func (stubEmployeeFinder) FindByFullName(ctx context.Context, fullName string) (*models.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}

func (stubEmployeeFinder) FindByEmail(ctx context.Context, email string) (*models.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}

func (stubEmployeeFinder) LinkUser(ctx context.Context, employeeID, userID uuid.UUID) error {
	return nil
}

type stubShiftStore struct{}

func (stubShiftStore) ListForEmployeeMonth(ctx context.Context, employeeID uuid.UUID, year, month int) ([]models.Shift, error) {
	return nil, nil
}

func (stubShiftStore) ListForMonth(ctx context.Context, year, month int) ([]models.Shift, error) {
	return nil, nil
}

func (stubShiftStore) ListForEmployeeYear(ctx context.Context, employeeID uuid.UUID, year int) ([]models.Shift, error) {
	return nil, nil
}

type stubConfigStore struct{}

func (stubConfigStore) ListAll(ctx context.Context) ([]models.ShiftConfig, error) {
	return nil, nil
}

type stubEmployeeStore struct{}

func (stubEmployeeStore) ListAll(ctx context.Context) ([]models.Employee, error) {
	return nil, nil
}

type stubHolidayStore struct{}

func (stubHolidayStore) ListAll(ctx context.Context) ([]models.Holiday, error) {
	return nil, nil
}

type stubSwapStore struct{}

func (stubSwapStore) Create(ctx context.Context, swap *models.SwapRequest) error {
	return nil
}

func (stubSwapStore) FindByID(ctx context.Context, id uuid.UUID) (*models.SwapRequest, error) {
	return nil, gorm.ErrRecordNotFound
}

func (stubSwapStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.SwapRequest, error) {
	return nil, nil
}

func (stubSwapStore) ListPendingReceived(ctx context.Context, userID uuid.UUID) ([]models.SwapRequest, error) {
	return nil, nil
}

func (stubSwapStore) ListAll(ctx context.Context) ([]models.SwapRequest, error) {
	return nil, nil
}

func (stubSwapStore) TransitionFromPending(ctx context.Context, id uuid.UUID, to enums.SwapStatus) (bool, error) {
	return true, nil
}

type stubUserFinder struct{}

func (stubUserFinder) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

type stubVacationStore struct{}

func (stubVacationStore) Create(ctx context.Context, vacation *models.VacationRequest) error {
	return nil
}

func (stubVacationStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.VacationRequest, error) {
	return nil, nil
}

func (stubVacationStore) ListAll(ctx context.Context) ([]models.VacationRequest, error) {
	return nil, nil
}

type stubSyncService struct {
	runs int
}

func (s *stubSyncService) Run(ctx context.Context, payload syncsvc.Payload) (*syncsvc.Result, error) {
	s.runs++
	return &syncsvc.Result{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
		AuthRateLimit: config.AuthRateLimitConfig{
			LoginWindow:     time.Minute,
			LoginEmailLimit: 5,
			LoginIPLimit:    100,
		},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config, syncStub *stubSyncService) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test-routing", Output: io.Discard})

	resolver, err := employees.NewResolver(stubEmployeeFinder{})
	if err != nil {
		t.Fatalf("build resolver: %v", err)
	}
	calendar, err := holidays.NewCalendar(stubHolidayStore{})
	if err != nil {
		t.Fatalf("build calendar: %v", err)
	}
	balanceSvc, err := balance.NewService(balance.ServiceParams{Shifts: stubShiftStore{}, Calendar: calendar})
	if err != nil {
		t.Fatalf("build balance service: %v", err)
	}
	shiftSvc, err := shifts.NewService(shifts.ServiceParams{
		Shifts:    stubShiftStore{},
		Configs:   stubConfigStore{},
		Employees: stubEmployeeStore{},
		Calendar:  calendar,
	})
	if err != nil {
		t.Fatalf("build shift service: %v", err)
	}
	swapSvc, err := swaps.NewService(swaps.ServiceParams{Repo: stubSwapStore{}, Users: stubUserFinder{}})
	if err != nil {
		t.Fatalf("build swap service: %v", err)
	}
	vacationSvc, err := vacations.NewService(vacations.ServiceParams{Repo: stubVacationStore{}})
	if err != nil {
		t.Fatalf("build vacation service: %v", err)
	}
	if syncStub == nil {
		syncStub = &stubSyncService{}
	}

	return NewRouter(RouterParams{
		Config:    cfg,
		Logger:    logg,
		DB:        stubPinger{},
		Auth:      stubAuthService{},
		Resolver:  resolver,
		Balance:   balanceSvc,
		Shifts:    shiftSvc,
		Swaps:     swapSvc,
		Vacations: vacationSvc,
		Sync:      syncStub,
	})
}

func buildToken(t *testing.T, cfg *config.Config, role enums.Role) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:   uuid.New(),
		Email:    "vigilante@example.com",
		FullName: "Guardia Prueba",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
}

func TestHealthReadyChecksDependencies(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for readiness got %d", resp.Code)
	}
}

func TestPrivateGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)
	req := httptest.NewRequest(http.MethodGet, "/api/vacaciones/mis-solicitudes", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestPrivateGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/vacaciones/mis-solicitudes", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleVigilante))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with token got %d", resp.Code)
	}
}

func TestProfileResolvesRosterRecord(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/empleados/perfil", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleVigilante))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for perfil got %d", resp.Code)
	}
}

func TestCalendarRequiresCoordinator(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg, nil)

	vigilante := httptest.NewRequest(http.MethodGet, "/api/turnos/calendario/2025/6", nil)
	vigilante.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleVigilante))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, vigilante)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for vigilante got %d", resp.Code)
	}

	coordinador := httptest.NewRequest(http.MethodGet, "/api/turnos/calendario/2025/6", nil)
	coordinador.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleCoordinador))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, coordinador)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for coordinador got %d", resp.Code)
	}
}

func TestSwapAdminListRequiresCoordinator(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg, nil)

	vigilante := httptest.NewRequest(http.MethodGet, "/api/permutas/admin/all", nil)
	vigilante.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleVigilante))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, vigilante)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for vigilante got %d", resp.Code)
	}

	coordinador := httptest.NewRequest(http.MethodGet, "/api/permutas/admin/all", nil)
	coordinador.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleCoordinador))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, coordinador)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for coordinador got %d", resp.Code)
	}
}

func TestSyncFullRequiresCoordinator(t *testing.T) {
	cfg := testConfig()
	syncStub := &stubSyncService{}
	router := newTestRouter(t, cfg, syncStub)
	body := `{"empleados":{}}`

	vigilante := httptest.NewRequest(http.MethodPost, "/api/sync/full", strings.NewReader(body))
	vigilante.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleVigilante))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, vigilante)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for vigilante got %d", resp.Code)
	}
	if syncStub.runs != 0 {
		t.Fatalf("expected sync untouched for vigilante, ran %d times", syncStub.runs)
	}

	coordinador := httptest.NewRequest(http.MethodPost, "/api/sync/full", strings.NewReader(body))
	coordinador.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleCoordinador))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, coordinador)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for coordinador got %d", resp.Code)
	}
	if syncStub.runs != 1 {
		t.Fatalf("expected one sync run got %d", syncStub.runs)
	}
}

func TestRegisterHiddenInProduction(t *testing.T) {
	cfg := testConfig()
	cfg.App.Env = "production"
	router := newTestRouter(t, cfg, nil)
	body := `{"email":"nuevo@example.com","password":"supersegura","nombre":"Nuevo Vigilante"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound && resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected register route missing in production got %d", resp.Code)
	}
}

func TestRegisterAvailableOutsideProduction(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg, nil)
	body := `{"email":"nuevo@example.com","password":"supersegura","nombre":"Nuevo Vigilante"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for register got %d", resp.Code)
	}
}

func TestLoginIsPublic(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)
	body := `{"email":"vigilante@example.com","password":"supersegura"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for login got %d", resp.Code)
	}
}
