package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/vigilant-ops/cuadrante-api/api/routes"
	"github.com/vigilant-ops/cuadrante-api/internal/auth"
	"github.com/vigilant-ops/cuadrante-api/internal/balance"
	"github.com/vigilant-ops/cuadrante-api/internal/employees"
	"github.com/vigilant-ops/cuadrante-api/internal/holidays"
	"github.com/vigilant-ops/cuadrante-api/internal/notifications"
	"github.com/vigilant-ops/cuadrante-api/internal/shifts"
	"github.com/vigilant-ops/cuadrante-api/internal/swaps"
	syncsvc "github.com/vigilant-ops/cuadrante-api/internal/sync"
	"github.com/vigilant-ops/cuadrante-api/internal/users"
	"github.com/vigilant-ops/cuadrante-api/internal/vacations"
	"github.com/vigilant-ops/cuadrante-api/pkg/config"
	"github.com/vigilant-ops/cuadrante-api/pkg/db"
	"github.com/vigilant-ops/cuadrante-api/pkg/logger"
	"github.com/vigilant-ops/cuadrante-api/pkg/metrics"
	"github.com/vigilant-ops/cuadrante-api/pkg/migrate"
	"github.com/vigilant-ops/cuadrante-api/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, login rate limiting disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	syncMetrics := metrics.NewSyncMetrics(registry)

	gdb := dbClient.DB()
	userRepo := users.NewRepository(gdb)
	employeeRepo := employees.NewRepository(gdb)
	shiftRepo := shifts.NewRepository(gdb)
	shiftConfigRepo := shifts.NewConfigRepository(gdb)
	swapRepo := swaps.NewRepository(gdb)
	vacationRepo := vacations.NewRepository(gdb)
	holidayRepo := holidays.NewRepository(gdb)

	resolver, err := employees.NewResolver(employeeRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create employee resolver", err)
		os.Exit(1)
	}

	calendar, err := holidays.NewCalendar(holidayRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create holiday calendar", err)
		os.Exit(1)
	}

	mailer, err := notifications.NewMailer(cfg.SMTP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create mailer", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		Resolver:       resolver,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	balanceService, err := balance.NewService(balance.ServiceParams{
		Shifts:   shiftRepo,
		Calendar: calendar,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create balance service", err)
		os.Exit(1)
	}

	shiftService, err := shifts.NewService(shifts.ServiceParams{
		Shifts:    shiftRepo,
		Configs:   shiftConfigRepo,
		Employees: employeeRepo,
		Calendar:  calendar,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create shift service", err)
		os.Exit(1)
	}

	swapService, err := swaps.NewService(swaps.ServiceParams{
		Repo:     swapRepo,
		Users:    userRepo,
		Notifier: mailer,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create swap service", err)
		os.Exit(1)
	}

	vacationService, err := vacations.NewService(vacations.ServiceParams{
		Repo:     vacationRepo,
		Notifier: mailer,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create vacation service", err)
		os.Exit(1)
	}

	syncService, err := syncsvc.NewService(syncsvc.ServiceParams{
		Transactor: dbClient,
		Employees:  employeeRepo,
		Users:      userRepo,
		Shifts:     shiftRepo,
		Configs:    shiftConfigRepo,
		Holidays:   holidayRepo,
		Password:   cfg.Password,
		Metrics:    syncMetrics,
		Logger:     logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create sync service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.RouterParams{
		Config:    cfg,
		Logger:    logg,
		DB:        dbClient,
		Redis:     redisClient,
		Registry:  registry,
		HTTP:      httpMetrics,
		Auth:      authService,
		Resolver:  resolver,
		Balance:   balanceService,
		Shifts:    shiftService,
		Swaps:     swapService,
		Vacations: vacationService,
		Sync:      syncService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "error during shutdown", err)
			os.Exit(1)
		}
		logg.Info(ctx, "api server shut down gracefully")
	}
}
