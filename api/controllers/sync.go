package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vigilant-ops/cuadrante-api/api/responses"
	"github.com/vigilant-ops/cuadrante-api/internal/sync"
	pkgerrors "github.com/vigilant-ops/cuadrante-api/pkg/errors"
	"github.com/vigilant-ops/cuadrante-api/pkg/logger"
)

// SyncService is the reconciler contract the controller depends on.
type SyncService interface {
	Run(ctx context.Context, payload sync.Payload) (*sync.Result, error)
}

// SyncFull ingests the desktop snapshot. The payload's roster and config
// sections are keyed by operator-chosen strings, so the body is decoded
// without the strict unknown-field check used elsewhere.
func SyncFull(svc SyncService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "sync service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload sync.Payload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "cuerpo de sincronizacion invalido"))
			return
		}
		if payload.Employees == nil && payload.Rosters == nil && payload.Configs == nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "el snapshot no contiene datos"))
			return
		}

		result, err := svc.Run(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
