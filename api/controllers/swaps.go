package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vigilant-ops/cuadrante-api/api/responses"
	"github.com/vigilant-ops/cuadrante-api/api/validators"
	"github.com/vigilant-ops/cuadrante-api/internal/swaps"
	pkgerrors "github.com/vigilant-ops/cuadrante-api/pkg/errors"
	"github.com/vigilant-ops/cuadrante-api/pkg/logger"
)

// CreateSwap proposes a shift exchange with another user.
func CreateSwap(svc *swaps.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body swaps.CreateSwapRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if body.Reason != nil {
			trimmed := validators.SanitizeString(*body.Reason, 500)
			body.Reason = &trimmed
		}

		swap, err := svc.Create(r.Context(), userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, swap)
	}
}

// MySwaps lists the caller's permutas in either role.
func MySwaps(svc *swaps.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListForUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// PendingSwaps lists permutas awaiting the caller's decision.
func PendingSwaps(svc *swaps.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListPendingReceived(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// AllSwaps lists every permuta. Coordinator access is enforced by the route
// group.
func AllSwaps(svc *swaps.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// AcceptSwap moves a pending permuta to aceptada.
func AcceptSwap(svc *swaps.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		swapID, err := swapIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		swap, err := svc.Accept(r.Context(), userID, swapID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, swap)
	}
}

// RejectSwap resolves a pending permuta: rechazada when the receiver calls it,
// cancelada when the requester does.
func RejectSwap(svc *swaps.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		swapID, err := swapIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		swap, err := svc.Reject(r.Context(), userID, swapID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, swap)
	}
}

func swapIDParam(r *http.Request) (uuid.UUID, error) {
	swapID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "id de permuta invalido")
	}
	return swapID, nil
}
