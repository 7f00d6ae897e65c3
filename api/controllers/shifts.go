package controllers

import (
	"net/http"

	"github.com/vigilant-ops/cuadrante-api/api/responses"
	"github.com/vigilant-ops/cuadrante-api/api/validators"
	"github.com/vigilant-ops/cuadrante-api/internal/employees"
	"github.com/vigilant-ops/cuadrante-api/internal/shifts"
	"github.com/vigilant-ops/cuadrante-api/pkg/logger"
)

// MyShifts returns the caller's schedule for one month.
func MyShifts(svc *shifts.Service, resolver *employees.Resolver, logg *logger.Logger) http.HandlerFunc {
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

		schedule, err := svc.MyMonth(r.Context(), employeeID, year, month)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, schedule)
	}
}

// MonthCalendar returns every employee's schedule for a month. Coordinator
// access is enforced by the route group.
func MonthCalendar(svc *shifts.Service, logg *logger.Logger) http.HandlerFunc {
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

		calendar, err := svc.MonthCalendar(r.Context(), year, month)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"anio":       year,
			"mes":        month,
			"vigilantes": calendar,
		})
	}
}

// UpcomingShifts returns the caller's shifts in the next N days (default 7).
func UpcomingShifts(svc *shifts.Service, resolver *employees.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days, err := validators.ParseQueryInt(r, "dias", 7, 1, 60)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		employeeID, err := resolveCallerEmployee(r, resolver)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		upcoming, err := svc.Upcoming(r.Context(), employeeID, days)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"dias":   days,
			"turnos": upcoming,
		})
	}
}
