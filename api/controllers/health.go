package controllers

import (
	"context"
	"net/http"

	"github.com/vigilant-ops/cuadrante-api/api/responses"
	pkgerrors "github.com/vigilant-ops/cuadrante-api/pkg/errors"
	"github.com/vigilant-ops/cuadrante-api/pkg/logger"
)

// Pinger is the readiness contract backing dependencies implement.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks the database and, when configured, Redis. Nil pingers
// are skipped so the endpoint works with rate limiting disabled.
func HealthReady(logg *logger.Logger, pingers map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]string, len(pingers))
		for name, pinger := range pingers {
			if pinger == nil {
				continue
			}
			if err := pinger.Ping(r.Context()); err != nil {
				checks[name] = "down"
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unreachable"))
				return
			}
			checks[name] = "up"
		}
		checks["status"] = "ready"
		responses.WriteSuccess(w, checks)
	}
}
