package balance

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vigilant-ops/cuadrante-api/internal/holidays"
	"github.com/vigilant-ops/cuadrante-api/pkg/db/models"
	pkgerrors "github.com/vigilant-ops/cuadrante-api/pkg/errors"
)

// AnnualQuotaHours is the collective-bargaining yearly quota.
const AnnualQuotaHours = 1768.0

type shiftLister interface {
	ListForEmployeeYear(ctx context.Context, employeeID uuid.UUID, year int) ([]models.Shift, error)
	ListForEmployeeMonth(ctx context.Context, employeeID uuid.UUID, year, month int) ([]models.Shift, error)
}

type holidayCalendar interface {
	Load(ctx context.Context) (*holidays.Lookup, error)
}

// AnnualBalance reports hours worked against the yearly quota.
type AnnualBalance struct {
	Year          int     `json:"anio"`
	QuotaHours    float64 `json:"horas_convenio"`
	WorkedHours   float64 `json:"horas_trabajadas"`
	Balance       float64 `json:"balance"`
	DaysWorked    int     `json:"dias_trabajados"`
	VacationDays  int     `json:"dias_vacaciones"`
	SickLeaveDays int     `json:"dias_baja"`
}

// MonthlyBalance reports one month against the prorated quota.
type MonthlyBalance struct {
	Year            int     `json:"anio"`
	Month           int     `json:"mes"`
	ContractedHours float64 `json:"horas_contratadas"`
	WorkedHours     float64 `json:"horas_trabajadas"`
	Balance         float64 `json:"balance"`
	DaysWorked      int     `json:"dias_trabajados"`
	NightHours      float64 `json:"horas_nocturnas"`
	HolidayDays     int     `json:"dias_festivos"`
	VacationDays    int     `json:"dias_vacaciones"`
	SickLeaveDays   int     `json:"dias_baja"`
}

// Service aggregates stored shift hours into balance reports.
type Service struct {
	shifts   shiftLister
	calendar holidayCalendar
}

// ServiceParams bundles the dependencies for the balance engine.
type ServiceParams struct {
	Shifts   shiftLister
	Calendar holidayCalendar
}

// NewService builds a balance engine over the shift store.
func NewService(params ServiceParams) (*Service, error) {
	if params.Shifts == nil {
		return nil, fmt.Errorf("shift lister is required")
	}
	if params.Calendar == nil {
		return nil, fmt.Errorf("holiday calendar is required")
	}
	return &Service{shifts: params.Shifts, calendar: params.Calendar}, nil
}

// Annual computes the yearly balance. A nil employee yields the zero report
// with the quota populated.
func (s *Service) Annual(ctx context.Context, employeeID *uuid.UUID, year int) (*AnnualBalance, error) {
	report := &AnnualBalance{Year: year, QuotaHours: AnnualQuotaHours, Balance: -AnnualQuotaHours}
	if employeeID == nil {
		return report, nil
	}

	shifts, err := s.shifts.ListForEmployeeYear(ctx, *employeeID, year)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list year shifts")
	}

	for _, shift := range shifts {
		report.WorkedHours += shift.WorkedHours
		if shift.WorkedHours > 0 {
			report.DaysWorked++
		}
		switch normalizeCode(shift.Code) {
		case "V":
			report.VacationDays++
		case "B":
			report.SickLeaveDays++
		}
	}
	report.Balance = report.WorkedHours - AnnualQuotaHours
	return report, nil
}

// Monthly computes one month's balance against the prorated quota.
func (s *Service) Monthly(ctx context.Context, employeeID *uuid.UUID, year, month int) (*MonthlyBalance, error) {
	contracted := AnnualQuotaHours / 12
	report := &MonthlyBalance{Year: year, Month: month, ContractedHours: contracted, Balance: -contracted}
	if employeeID == nil {
		return report, nil
	}

	shifts, err := s.shifts.ListForEmployeeMonth(ctx, *employeeID, year, month)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list month shifts")
	}

	lookup, err := s.calendar.Load(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load festivos")
	}

	for _, shift := range shifts {
		// L, V and B days never count toward the worked tallies, whatever
		// hour values a config revision attached to them.
		code := normalizeCode(shift.Code)
		switch code {
		case "V":
			report.VacationDays++
			continue
		case "B":
			report.SickLeaveDays++
			continue
		case "L":
			continue
		}

		report.WorkedHours += shift.WorkedHours
		report.NightHours += shift.NightHours

		if shift.WorkedHours > 0 {
			report.DaysWorked++
			if shift.IsHoliday || lookup.IsHoliday(shift.Year, shift.Month, shift.Day) {
				report.HolidayDays++
			}
		}
	}
	report.Balance = report.WorkedHours - contracted
	return report, nil
}
