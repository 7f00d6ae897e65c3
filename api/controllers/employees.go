package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vigilant-ops/cuadrante-api/api/middleware"
	"github.com/vigilant-ops/cuadrante-api/api/responses"
	"github.com/vigilant-ops/cuadrante-api/internal/balance"
	"github.com/vigilant-ops/cuadrante-api/internal/employees"
	pkgerrors "github.com/vigilant-ops/cuadrante-api/pkg/errors"
	"github.com/vigilant-ops/cuadrante-api/pkg/logger"
)

const minBalanceYear = 2000

// EmployeeProfile returns the caller's roster record.
func EmployeeProfile(resolver *employees.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		employee, err := resolver.Resolve(r.Context(), userID, middleware.UserFullNameFromContext(r.Context()), middleware.UserEmailFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, employees.FromModel(employee))
	}
}

// BalanceAnnual reports worked hours against the annual quota.
func BalanceAnnual(svc *balance.Service, resolver *employees.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := yearParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		employeeID, err := resolveCallerEmployee(r, resolver)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.Annual(r.Context(), employeeID, year)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// BalanceMonthly reports one month of worked hours against the prorated quota.
func BalanceMonthly(svc *balance.Service, resolver *employees.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := yearParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		month, err := monthParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		employeeID, err := resolveCallerEmployee(r, resolver)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.Monthly(r.Context(), employeeID, year, month)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// resolveCallerEmployee maps the authenticated account onto a roster record.
// An unresolvable caller yields nil: read paths degrade to an empty schedule
// instead of failing.
func resolveCallerEmployee(r *http.Request, resolver *employees.Resolver) (*uuid.UUID, error) {
	userID, err := callerID(r)
	if err != nil {
		return nil, err
	}

	employee, err := resolver.Resolve(r.Context(), userID, middleware.UserFullNameFromContext(r.Context()), middleware.UserEmailFromContext(r.Context()))
	if err != nil {
		var typed *pkgerrors.Error
		if errors.As(err, &typed) && typed.Code() == pkgerrors.CodeNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &employee.ID, nil
}

func yearParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "anio")
	year, err := strconv.Atoi(raw)
	maxYear := time.Now().Year() + 5
	if err != nil || year < minBalanceYear || year > maxYear {
		return 0, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("anio debe estar entre %d y %d", minBalanceYear, maxYear))
	}
	return year, nil
}

func monthParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "mes")
	month, err := strconv.Atoi(raw)
	if err != nil || month < 1 || month > 12 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "mes debe estar entre 1 y 12")
	}
	return month, nil
}
