package controllers

import (
	"net/http"

	"github.com/vigilant-ops/cuadrante-api/api/middleware"
	"github.com/vigilant-ops/cuadrante-api/api/responses"
	"github.com/vigilant-ops/cuadrante-api/api/validators"
	"github.com/vigilant-ops/cuadrante-api/internal/vacations"
	"github.com/vigilant-ops/cuadrante-api/pkg/logger"
)

// CreateVacation registers a pending vacation request for the caller.
func CreateVacation(svc *vacations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body vacations.CreateVacationRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if body.Reason != nil {
			trimmed := validators.SanitizeString(*body.Reason, 500)
			body.Reason = &trimmed
		}

		email := middleware.UserEmailFromContext(r.Context())
		vacation, err := svc.Create(r.Context(), userID, email, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, vacation)
	}
}

// MyVacations lists the caller's vacation requests.
func MyVacations(svc *vacations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListMine(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// AllVacations lists every vacation request. Coordinator access is enforced
// by the route group.
func AllVacations(svc *vacations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}
