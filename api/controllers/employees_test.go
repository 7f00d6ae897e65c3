package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vigilant-ops/cuadrante-api/api/middleware"
	"github.com/vigilant-ops/cuadrante-api/internal/employees"
	"github.com/vigilant-ops/cuadrante-api/pkg/db/models"
)

func withYearMonth(req *http.Request, year, month string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("anio", year)
	if month != "" {
		routeCtx.URLParams.Add("mes", month)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestYearParamBounds(t *testing.T) {
	maxYear := time.Now().Year() + 5

	cases := []struct {
		raw   string
		valid bool
	}{
		{"2025", true},
		{"2000", true},
		{strconv.Itoa(maxYear), true},
		{"1999", false},
		{strconv.Itoa(maxYear + 1), false},
		{"abc", false},
		{"", false},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = withYearMonth(req, tc.raw, "")
		_, err := yearParam(req)
		if tc.valid && err != nil {
			t.Fatalf("year %q: unexpected error %v", tc.raw, err)
		}
		if !tc.valid && err == nil {
			t.Fatalf("year %q: expected error", tc.raw)
		}
	}
}

func TestMonthParamBounds(t *testing.T) {
	for _, raw := range []string{"1", "12"} {
		req := withYearMonth(httptest.NewRequest(http.MethodGet, "/", nil), "2025", raw)
		if _, err := monthParam(req); err != nil {
			t.Fatalf("month %q: unexpected error %v", raw, err)
		}
	}
	for _, raw := range []string{"0", "13", "junio"} {
		req := withYearMonth(httptest.NewRequest(http.MethodGet, "/", nil), "2025", raw)
		if _, err := monthParam(req); err == nil {
			t.Fatalf("month %q: expected error", raw)
		}
	}
}

type nameOnlyFinder struct {
	fullName string
	employee *models.Employee
	linked   bool
}

func (f *nameOnlyFinder) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *nameOnlyFinder) FindByFullName(ctx context.Context, fullName string) (*models.Employee, error) {
	if fullName == f.fullName {
		return f.employee, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *nameOnlyFinder) FindByEmail(ctx context.Context, email string) (*models.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *nameOnlyFinder) LinkUser(ctx context.Context, employeeID, userID uuid.UUID) error {
	f.linked = true
	return nil
}

// A roster row synced before the account existed carries no user link and may
// have no email; the nombre claim must still reach the resolver on read paths.
func TestEmployeeProfileResolvesByClaimedName(t *testing.T) {
	finder := &nameOnlyFinder{
		fullName: "Ana Prueba",
		employee: &models.Employee{ID: uuid.New(), FullName: "Ana Prueba"},
	}
	resolver, err := employees.NewResolver(finder)
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/empleados/perfil", nil)
	ctx := middleware.WithUserID(req.Context(), uuid.New().String())
	ctx = middleware.WithUserFullName(ctx, "Ana Prueba")
	req = req.WithContext(ctx)

	resp := httptest.NewRecorder()
	EmployeeProfile(resolver, testLogger())(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if !finder.linked {
		t.Fatal("expected resolver to backfill the user link")
	}
}

func TestResolveCallerEmployeeUsesClaimedName(t *testing.T) {
	employeeID := uuid.New()
	finder := &nameOnlyFinder{
		fullName: "Ana Prueba",
		employee: &models.Employee{ID: employeeID, FullName: "Ana Prueba"},
	}
	resolver, err := employees.NewResolver(finder)
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := middleware.WithUserID(req.Context(), uuid.New().String())
	ctx = middleware.WithUserFullName(ctx, "Ana Prueba")
	req = req.WithContext(ctx)

	resolved, err := resolveCallerEmployee(req, resolver)
	if err != nil {
		t.Fatalf("resolve caller: %v", err)
	}
	if resolved == nil || *resolved != employeeID {
		t.Fatalf("expected employee %s, got %v", employeeID, resolved)
	}
}

func TestCallerIDParsesContextValue(t *testing.T) {
	userID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))

	parsed, err := callerID(req)
	if err != nil {
		t.Fatalf("callerID: %v", err)
	}
	if parsed != userID {
		t.Fatalf("expected %s, got %s", userID, parsed)
	}
}

func TestCallerIDRejectsGarbage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), "not-a-uuid"))

	if _, err := callerID(req); err == nil {
		t.Fatal("expected error for malformed user id")
	}
}
