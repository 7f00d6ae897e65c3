package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vigilant-ops/cuadrante-api/api/controllers"
	"github.com/vigilant-ops/cuadrante-api/api/middleware"
	"github.com/vigilant-ops/cuadrante-api/internal/auth"
	"github.com/vigilant-ops/cuadrante-api/internal/balance"
	"github.com/vigilant-ops/cuadrante-api/internal/employees"
	"github.com/vigilant-ops/cuadrante-api/internal/shifts"
	"github.com/vigilant-ops/cuadrante-api/internal/swaps"
	"github.com/vigilant-ops/cuadrante-api/internal/vacations"
	"github.com/vigilant-ops/cuadrante-api/pkg/config"
	"github.com/vigilant-ops/cuadrante-api/pkg/enums"
	"github.com/vigilant-ops/cuadrante-api/pkg/logger"
	"github.com/vigilant-ops/cuadrante-api/pkg/metrics"
	"github.com/vigilant-ops/cuadrante-api/pkg/redis"
)

// RouterParams carries everything the HTTP surface needs.
type RouterParams struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       controllers.Pinger
	Redis    *redis.Client
	Registry *prometheus.Registry
	HTTP     *metrics.HTTPMetrics

	Auth      auth.Service
	Resolver  *employees.Resolver
	Balance   *balance.Service
	Shifts    *shifts.Service
	Swaps     *swaps.Service
	Vacations *vacations.Service
	Sync      controllers.SyncService
}

// NewRouter assembles the route table.
func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
		middleware.Metrics(p.HTTP),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	loginLimit := middleware.AuthRateLimit(loginPolicy, nil, logg)
	if p.Redis != nil {
		loginLimit = middleware.AuthRateLimit(loginPolicy, p.Redis, logg)
	}

	r.Route("/health", func(r chi.Router) {
		pingers := map[string]controllers.Pinger{"database": p.DB}
		if p.Redis != nil {
			pingers["redis"] = p.Redis
		}
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(logg, pingers))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(loginLimit).Post("/login", controllers.AuthLogin(p.Auth, logg))
		if !cfg.App.IsProd() {
			r.Post("/register", controllers.AuthRegister(p.Auth, cfg, logg))
		}
		r.With(middleware.Auth(cfg.JWT, logg)).Get("/me", controllers.AuthMe(p.Auth, logg))
		r.With(middleware.Auth(cfg.JWT, logg)).Put("/password", controllers.AuthChangePassword(p.Auth, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/empleados", func(r chi.Router) {
			r.Get("/perfil", controllers.EmployeeProfile(p.Resolver, logg))
			r.Get("/balance/{anio}", controllers.BalanceAnnual(p.Balance, p.Resolver, logg))
			r.Get("/balance/{anio}/{mes}", controllers.BalanceMonthly(p.Balance, p.Resolver, logg))
		})

		r.Route("/turnos", func(r chi.Router) {
			r.Get("/mis-turnos/{anio}/{mes}", controllers.MyShifts(p.Shifts, p.Resolver, logg))
			r.Get("/proximos-turnos", controllers.UpcomingShifts(p.Shifts, p.Resolver, logg))
			r.With(middleware.RequireRole(enums.RoleCoordinador, logg)).
				Get("/calendario/{anio}/{mes}", controllers.MonthCalendar(p.Shifts, logg))
		})

		r.Route("/permutas", func(r chi.Router) {
			r.Post("/solicitar", controllers.CreateSwap(p.Swaps, logg))
			r.Get("/mis-solicitudes", controllers.MySwaps(p.Swaps, logg))
			r.Get("/pendientes", controllers.PendingSwaps(p.Swaps, logg))
			r.Put("/{id}/aceptar", controllers.AcceptSwap(p.Swaps, logg))
			r.Put("/{id}/rechazar", controllers.RejectSwap(p.Swaps, logg))
			r.With(middleware.RequireRole(enums.RoleCoordinador, logg)).
				Get("/admin/all", controllers.AllSwaps(p.Swaps, logg))
		})

		r.Route("/vacaciones", func(r chi.Router) {
			r.Post("/solicitar", controllers.CreateVacation(p.Vacations, logg))
			r.Get("/mis-solicitudes", controllers.MyVacations(p.Vacations, logg))
			r.With(middleware.RequireRole(enums.RoleCoordinador, logg)).
				Get("/admin/all", controllers.AllVacations(p.Vacations, logg))
		})

		r.With(middleware.RequireRole(enums.RoleCoordinador, logg)).
			Post("/sync/full", controllers.SyncFull(p.Sync, logg))
	})

	return r
}
