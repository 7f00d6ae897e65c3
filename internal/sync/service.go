package sync

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/vigilant-ops/cuadrante-api/internal/employees"
	"github.com/vigilant-ops/cuadrante-api/internal/holidays"
	"github.com/vigilant-ops/cuadrante-api/internal/shifts"
	"github.com/vigilant-ops/cuadrante-api/internal/users"
	"github.com/vigilant-ops/cuadrante-api/pkg/config"
	"github.com/vigilant-ops/cuadrante-api/pkg/db/models"
	"github.com/vigilant-ops/cuadrante-api/pkg/enums"
	pkgerrors "github.com/vigilant-ops/cuadrante-api/pkg/errors"
	"github.com/vigilant-ops/cuadrante-api/pkg/logger"
	"github.com/vigilant-ops/cuadrante-api/pkg/metrics"
	"github.com/vigilant-ops/cuadrante-api/pkg/security"
)

type transactor interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service reconciles a desktop snapshot into the store. The whole run happens
// inside one transaction: a failure at any stage rolls everything back so a
// partial sync is never observable.
type Service struct {
	tx       transactor
	emps     *employees.Repository
	users    *users.Repository
	shifts   *shifts.Repository
	configs  *shifts.ConfigRepository
	holidays *holidays.Repository
	password config.PasswordConfig
	metrics  *metrics.SyncMetrics
	logg     *logger.Logger
}

// ServiceParams bundles the reconciler dependencies.
type ServiceParams struct {
	Transactor transactor
	Employees  *employees.Repository
	Users      *users.Repository
	Shifts     *shifts.Repository
	Configs    *shifts.ConfigRepository
	Holidays   *holidays.Repository
	Password   config.PasswordConfig
	Metrics    *metrics.SyncMetrics
	Logger     *logger.Logger
}

// NewService constructs the reconciler.
func NewService(params ServiceParams) (*Service, error) {
	if params.Transactor == nil {
		return nil, fmt.Errorf("transactor is required")
	}
	if params.Employees == nil || params.Users == nil || params.Shifts == nil ||
		params.Configs == nil || params.Holidays == nil {
		return nil, fmt.Errorf("all repositories are required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Service{
		tx:       params.Transactor,
		emps:     params.Employees,
		users:    params.Users,
		shifts:   params.Shifts,
		configs:  params.Configs,
		holidays: params.Holidays,
		password: params.Password,
		metrics:  params.Metrics,
		logg:     params.Logger,
	}, nil
}

// Run applies the full snapshot. Employees are flushed before roster
// processing so shifts for newly synced names resolve within the same run.
// Running the same payload twice yields identical rows.
func (s *Service) Run(ctx context.Context, payload Payload) (*Result, error) {
	start := time.Now()
	result := &Result{}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		emps := s.emps.WithTx(tx)
		accounts := s.users.WithTx(tx)
		shiftRepo := s.shifts.WithTx(tx)
		configRepo := s.configs.WithTx(tx)
		holidayRepo := s.holidays.WithTx(tx)

		if err := s.syncEmployees(ctx, emps, accounts, payload.Employees, result); err != nil {
			return fmt.Errorf("sync employees: %w", err)
		}

		nameIndex, err := s.loadNameIndex(ctx, emps)
		if err != nil {
			return fmt.Errorf("load employee index: %w", err)
		}

		if err := s.syncRosters(ctx, shiftRepo, nameIndex, payload.Rosters, result); err != nil {
			return fmt.Errorf("sync rosters: %w", err)
		}
		if err := s.syncConfigs(ctx, configRepo, payload.Configs, result); err != nil {
			return fmt.Errorf("sync shift configs: %w", err)
		}
		if err := s.syncHolidays(ctx, holidayRepo, payload.Holidays, result); err != nil {
			return fmt.Errorf("sync holidays: %w", err)
		}
		return nil
	})

	s.metrics.ObserveDuration("full", time.Since(start))
	if err != nil {
		s.metrics.IncFailure("full")
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "synchronization failed")
	}

	s.metrics.IncSuccess("full")
	s.metrics.AddRows("empleados", result.Employees)
	s.metrics.AddRows("turnos", result.Shifts)
	s.metrics.AddRows("config_turnos", result.Configs)
	s.metrics.AddRows("festivos", result.Holidays)

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"empleados": result.Employees,
		"turnos":    result.Shifts,
		"configs":   result.Configs,
		"festivos":  result.Holidays,
	}), "sync completed")
	return result, nil
}

func (s *Service) syncEmployees(ctx context.Context, emps *employees.Repository, accounts *users.Repository, payload map[string]EmployeePayload, result *Result) error {
	for _, name := range sortedKeys(payload) {
		entry := payload[name]
		employee, err := emps.Upsert(ctx, employees.UpsertEmployeeDTO{
			FullName: name,
			Email:    entry.Email,
			Phone:    entry.Phone,
			DNI:      entry.DNI,
			HireDate: entry.HireDate,
		})
		if err != nil {
			return fmt.Errorf("upsert %q: %w", name, err)
		}
		result.Employees++

		if entry.Password != nil && entry.Email != nil && *entry.Email != "" {
			if err := s.provisionAccount(ctx, emps, accounts, employee, name, *entry.Email, *entry.Password, result); err != nil {
				return fmt.Errorf("provision account for %q: %w", name, err)
			}
		}
	}
	return nil
}

func (s *Service) provisionAccount(ctx context.Context, emps *employees.Repository, accounts *users.Repository, employee *models.Employee, name, email, password string, result *Result) error {
	account, err := accounts.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		hash, hashErr := security.HashPassword(password, s.password)
		if hashErr != nil {
			return hashErr
		}
		account, err = accounts.Create(ctx, users.CreateUserDTO{
			Email:        email,
			PasswordHash: hash,
			FullName:     name,
			Role:         enums.RoleVigilante,
		})
		if err != nil {
			return err
		}
		result.ProvisionedUsers++
	}

	if employee.UserID == nil || *employee.UserID != account.ID {
		if err := emps.LinkUser(ctx, employee.ID, account.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) loadNameIndex(ctx context.Context, emps *employees.Repository) (map[string]uuid.UUID, error) {
	all, err := emps.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]uuid.UUID, len(all))
	for _, employee := range all {
		index[normalizeName(employee.FullName)] = employee.ID
	}
	return index, nil
}

func (s *Service) syncRosters(ctx context.Context, shiftRepo *shifts.Repository, nameIndex map[string]uuid.UUID, rosters map[string]map[string][]Roster, result *Result) error {
	for _, yearKey := range sortedKeys(rosters) {
		year, err := strconv.Atoi(strings.TrimSpace(yearKey))
		if err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "anio", yearKey), "skipping non-numeric year key")
			continue
		}
		months := rosters[yearKey]
		for _, monthKey := range sortedKeys(months) {
			// Month keys with suffixes like "11_changes" are metadata.
			month, err := strconv.Atoi(strings.TrimSpace(monthKey))
			if err != nil || month < 1 || month > 12 {
				continue
			}
			for _, roster := range months[monthKey] {
				employeeID, ok := nameIndex[normalizeName(roster.Name)]
				if !ok {
					s.logg.Warn(s.logg.WithField(ctx, "nombre", roster.Name), "roster entry without matching employee")
					continue
				}
				if err := shiftRepo.DeleteForEmployeeMonth(ctx, employeeID, year, month); err != nil {
					return err
				}
				rows := buildShifts(employeeID, year, month, roster.Shifts)
				if len(rows) == 0 {
					continue
				}
				if err := shiftRepo.BulkInsert(ctx, rows); err != nil {
					return err
				}
				result.Shifts += len(rows)
			}
		}
	}
	return nil
}

func buildShifts(employeeID uuid.UUID, year, month int, values map[string]ShiftValue) []models.Shift {
	rows := make([]models.Shift, 0, len(values))
	for _, dayKey := range sortedKeys(values) {
		day, err := strconv.Atoi(strings.TrimSpace(dayKey))
		if err != nil || day < 1 || day > 31 {
			continue
		}
		value := values[dayKey]
		code := strings.ToUpper(strings.TrimSpace(value.Code))
		if code == "" {
			continue
		}
		rows = append(rows, models.Shift{
			EmployeeID:   employeeID,
			Year:         year,
			Month:        month,
			Day:          day,
			Code:         code,
			WorkedHours:  value.WorkedHours,
			NightHours:   value.NightHours,
			HolidayHours: value.HolidayHours,
			IsHoliday:    value.IsHoliday,
		})
	}
	return rows
}

func (s *Service) syncConfigs(ctx context.Context, configRepo *shifts.ConfigRepository, configs map[string]ShiftConfigPayload, result *Result) error {
	for _, code := range sortedKeys(configs) {
		entry := configs[code]
		schedule := entry.Schedule
		if schedule == "" {
			schedule = entry.Legend
		}
		color := entry.Color
		if color == "" {
			color = entry.ColorBG
		}
		err := configRepo.Upsert(ctx, &models.ShiftConfig{
			Code:        strings.ToUpper(strings.TrimSpace(code)),
			Description: entry.Legend,
			Schedule:    schedule,
			Color:       color,
			WorkedHours: entry.Worked,
			NightHours:  entry.Night,
		})
		if err != nil {
			return fmt.Errorf("upsert config %q: %w", code, err)
		}
		result.Configs++
	}
	return nil
}

func (s *Service) syncHolidays(ctx context.Context, holidayRepo *holidays.Repository, payload map[string][]string, result *Result) error {
	var errs []error
	for _, scopeKey := range sortedKeys(payload) {
		scope := enums.HolidayScope(strings.ToLower(strings.TrimSpace(scopeKey)))
		if !scope.IsValid() {
			s.logg.Warn(s.logg.WithField(ctx, "ambito", scopeKey), "skipping unknown holiday scope")
			continue
		}
		for _, date := range payload[scopeKey] {
			date = strings.TrimSpace(date)
			if date == "" {
				continue
			}
			if err := holidayRepo.Upsert(ctx, date, scope); err != nil {
				errs = append(errs, fmt.Errorf("upsert holiday %q: %w", date, err))
				continue
			}
			result.Holidays++
		}
	}
	return multierr.Combine(errs...)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
