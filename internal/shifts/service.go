package shifts

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/vigilant-ops/cuadrante-api/internal/balance"
	"github.com/vigilant-ops/cuadrante-api/internal/holidays"
	"github.com/vigilant-ops/cuadrante-api/pkg/db/models"
	pkgerrors "github.com/vigilant-ops/cuadrante-api/pkg/errors"
)

type shiftLister interface {
	ListForEmployeeMonth(ctx context.Context, employeeID uuid.UUID, year, month int) ([]models.Shift, error)
	ListForMonth(ctx context.Context, year, month int) ([]models.Shift, error)
	ListForEmployeeYear(ctx context.Context, employeeID uuid.UUID, year int) ([]models.Shift, error)
}

type configLister interface {
	ListAll(ctx context.Context) ([]models.ShiftConfig, error)
}

type employeeLister interface {
	ListAll(ctx context.Context) ([]models.Employee, error)
}

type holidayCalendar interface {
	Load(ctx context.Context) (*holidays.Lookup, error)
}

// Service serves the schedule views.
type Service struct {
	shifts    shiftLister
	configs   configLister
	employees employeeLister
	calendar  holidayCalendar
	now       func() time.Time
}

// ServiceParams bundles the dependencies for the schedule service.
type ServiceParams struct {
	Shifts    shiftLister
	Configs   configLister
	Employees employeeLister
	Calendar  holidayCalendar
	Now       func() time.Time
}

// NewService builds the schedule service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Shifts == nil {
		return nil, fmt.Errorf("shift lister is required")
	}
	if params.Configs == nil {
		return nil, fmt.Errorf("config lister is required")
	}
	if params.Employees == nil {
		return nil, fmt.Errorf("employee lister is required")
	}
	if params.Calendar == nil {
		return nil, fmt.Errorf("holiday calendar is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		shifts:    params.Shifts,
		configs:   params.Configs,
		employees: params.Employees,
		calendar:  params.Calendar,
		now:       now,
	}, nil
}

// MyMonth returns the caller's schedule for one month. A nil employee yields
// an empty schedule.
func (s *Service) MyMonth(ctx context.Context, employeeID *uuid.UUID, year, month int) (*MonthScheduleDTO, error) {
	schedule := &MonthScheduleDTO{Year: year, Month: month, Shifts: []ShiftDTO{}}
	if employeeID == nil {
		return schedule, nil
	}

	stored, err := s.shifts.ListForEmployeeMonth(ctx, *employeeID, year, month)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list month shifts")
	}

	configs, classifier, lookup, err := s.loadContext(ctx)
	if err != nil {
		return nil, err
	}

	for _, shift := range stored {
		schedule.Shifts = append(schedule.Shifts, shiftToDTO(shift, configs, classifier, lookup))
	}
	return schedule, nil
}

// MonthCalendar returns every employee's schedule for one month.
func (s *Service) MonthCalendar(ctx context.Context, year, month int) ([]EmployeeScheduleDTO, error) {
	stored, err := s.shifts.ListForMonth(ctx, year, month)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list calendar shifts")
	}

	employees, err := s.employees.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list employees")
	}

	configs, classifier, lookup, err := s.loadContext(ctx)
	if err != nil {
		return nil, err
	}

	byEmployee := make(map[uuid.UUID][]ShiftDTO, len(employees))
	for _, shift := range stored {
		byEmployee[shift.EmployeeID] = append(byEmployee[shift.EmployeeID], shiftToDTO(shift, configs, classifier, lookup))
	}

	calendar := make([]EmployeeScheduleDTO, 0, len(employees))
	for _, employee := range employees {
		shifts := byEmployee[employee.ID]
		if shifts == nil {
			shifts = []ShiftDTO{}
		}
		calendar = append(calendar, EmployeeScheduleDTO{
			EmployeeID: employee.ID,
			FullName:   employee.FullName,
			Shifts:     shifts,
		})
	}
	return calendar, nil
}

// Upcoming returns the caller's shifts over the next N days, today included.
func (s *Service) Upcoming(ctx context.Context, employeeID *uuid.UUID, days int) ([]ShiftDTO, error) {
	if employeeID == nil {
		return []ShiftDTO{}, nil
	}
	if days <= 0 {
		days = 7
	}

	configs, classifier, lookup, err := s.loadContext(ctx)
	if err != nil {
		return nil, err
	}

	start := s.now()
	end := start.AddDate(0, 0, days)

	// The window spans at most two months plus a year boundary; fetch the
	// months it touches and filter by day.
	months := map[[2]int]struct{}{}
	for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 0, 1) {
		months[[2]int{cursor.Year(), int(cursor.Month())}] = struct{}{}
	}

	upcoming := []ShiftDTO{}
	for key := range months {
		stored, err := s.shifts.ListForEmployeeMonth(ctx, *employeeID, key[0], key[1])
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list upcoming shifts")
		}
		for _, shift := range stored {
			day := time.Date(shift.Year, time.Month(shift.Month), shift.Day, 0, 0, 0, 0, start.Location())
			startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
			if day.Before(startDay) || day.After(end) {
				continue
			}
			upcoming = append(upcoming, shiftToDTO(shift, configs, classifier, lookup))
		}
	}

	sortByDate(upcoming)
	return upcoming, nil
}

func (s *Service) loadContext(ctx context.Context) (map[string]models.ShiftConfig, *balance.Classifier, *holidays.Lookup, error) {
	stored, err := s.configs.ListAll(ctx)
	if err != nil {
		return nil, nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shift configs")
	}

	configs := make(map[string]models.ShiftConfig, len(stored))
	for _, cfg := range stored {
		configs[cfg.Code] = cfg
	}

	lookup, err := s.calendar.Load(ctx)
	if err != nil {
		return nil, nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load festivos")
	}

	return configs, balance.NewClassifier(stored), lookup, nil
}

func sortByDate(shifts []ShiftDTO) {
	sort.Slice(shifts, func(i, j int) bool {
		return shifts[i].Date < shifts[j].Date
	})
}
