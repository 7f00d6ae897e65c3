package balance

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vigilant-ops/cuadrante-api/internal/holidays"
	"github.com/vigilant-ops/cuadrante-api/pkg/db/models"
)

type stubShiftLister struct {
	year  []models.Shift
	month []models.Shift
}

func (s *stubShiftLister) ListForEmployeeYear(ctx context.Context, employeeID uuid.UUID, year int) ([]models.Shift, error) {
	return s.year, nil
}

func (s *stubShiftLister) ListForEmployeeMonth(ctx context.Context, employeeID uuid.UUID, year, month int) ([]models.Shift, error) {
	return s.month, nil
}

type stubCalendar struct {
	holidays []models.Holiday
}

func (s *stubCalendar) Load(ctx context.Context) (*holidays.Lookup, error) {
	calendar, err := holidays.NewCalendar(&staticLister{holidays: s.holidays})
	if err != nil {
		return nil, err
	}
	return calendar.Load(ctx)
}

type staticLister struct {
	holidays []models.Holiday
}

func (s *staticLister) ListAll(ctx context.Context) ([]models.Holiday, error) {
	return s.holidays, nil
}

func newTestService(t *testing.T, shifts *stubShiftLister, cal *stubCalendar) *Service {
	t.Helper()
	if cal == nil {
		cal = &stubCalendar{}
	}
	svc, err := NewService(ServiceParams{Shifts: shifts, Calendar: cal})
	require.NoError(t, err)
	return svc
}

func TestAnnualSumsStoredHours(t *testing.T) {
	shifts := &stubShiftLister{year: []models.Shift{
		{Code: "N", WorkedHours: 12, NightHours: 8},
		{Code: "N", WorkedHours: 12, NightHours: 8},
		{Code: "D", WorkedHours: 12},
		{Code: "V"},
		{Code: "V"},
		{Code: "B"},
		{Code: "L"},
	}}
	svc := newTestService(t, shifts, nil)

	id := uuid.New()
	report, err := svc.Annual(context.Background(), &id, 2025)
	require.NoError(t, err)

	assert.Equal(t, 2025, report.Year)
	assert.Equal(t, AnnualQuotaHours, report.QuotaHours)
	assert.Equal(t, 36.0, report.WorkedHours)
	assert.Equal(t, 36.0-AnnualQuotaHours, report.Balance)
	assert.Equal(t, 3, report.DaysWorked)
	assert.Equal(t, 2, report.VacationDays)
	assert.Equal(t, 1, report.SickLeaveDays)
}

func TestAnnualUnresolvedEmployeeYieldsZeros(t *testing.T) {
	svc := newTestService(t, &stubShiftLister{}, nil)

	report, err := svc.Annual(context.Background(), nil, 2025)
	require.NoError(t, err)

	assert.Zero(t, report.WorkedHours)
	assert.Zero(t, report.DaysWorked)
	assert.Equal(t, AnnualQuotaHours, report.QuotaHours)
	assert.Equal(t, -AnnualQuotaHours, report.Balance)
}

func TestMonthlyCountsHolidaysAndNightHours(t *testing.T) {
	shifts := &stubShiftLister{month: []models.Shift{
		{Year: 2025, Month: 1, Day: 1, Code: "N", WorkedHours: 12, NightHours: 8},
		{Year: 2025, Month: 1, Day: 2, Code: "D", WorkedHours: 12},
		{Year: 2025, Month: 1, Day: 6, Code: "D", WorkedHours: 12, IsHoliday: true},
		{Year: 2025, Month: 1, Day: 10, Code: "V"},
		{Year: 2025, Month: 1, Day: 11, Code: "B"},
		{Year: 2025, Month: 1, Day: 12, Code: "L"},
	}}
	cal := &stubCalendar{holidays: []models.Holiday{{Date: "01-01"}}}
	svc := newTestService(t, shifts, cal)

	id := uuid.New()
	report, err := svc.Monthly(context.Background(), &id, 2025, 1)
	require.NoError(t, err)

	assert.Equal(t, 36.0, report.WorkedHours)
	assert.Equal(t, 8.0, report.NightHours)
	assert.Equal(t, 3, report.DaysWorked)
	assert.Equal(t, 2, report.HolidayDays, "one flagged day plus one festivo match")
	assert.Equal(t, 1, report.VacationDays)
	assert.Equal(t, 1, report.SickLeaveDays)
	assert.InDelta(t, AnnualQuotaHours/12, report.ContractedHours, 1e-9)
	assert.InDelta(t, 36.0-AnnualQuotaHours/12, report.Balance, 1e-9)
}

func TestMonthlyExcludesAbsenceCodesFromWorkedHours(t *testing.T) {
	// A config revision priced V at 5 hours; those hours still stay out of
	// the worked tally.
	shifts := &stubShiftLister{month: []models.Shift{
		{Year: 2025, Month: 3, Day: 3, Code: "N", WorkedHours: 12, NightHours: 8},
		{Year: 2025, Month: 3, Day: 4, Code: "V", WorkedHours: 5},
		{Year: 2025, Month: 3, Day: 5, Code: "B", WorkedHours: 5},
		{Year: 2025, Month: 3, Day: 6, Code: "L", WorkedHours: 2, NightHours: 1},
	}}
	svc := newTestService(t, shifts, nil)

	id := uuid.New()
	report, err := svc.Monthly(context.Background(), &id, 2025, 3)
	require.NoError(t, err)

	assert.Equal(t, 12.0, report.WorkedHours)
	assert.Equal(t, 8.0, report.NightHours)
	assert.Equal(t, 1, report.DaysWorked)
	assert.Equal(t, 1, report.VacationDays)
	assert.Equal(t, 1, report.SickLeaveDays)
	assert.InDelta(t, 12.0-AnnualQuotaHours/12, report.Balance, 1e-9)
}

func TestMonthlyUnresolvedEmployeeYieldsZeros(t *testing.T) {
	svc := newTestService(t, &stubShiftLister{}, nil)

	report, err := svc.Monthly(context.Background(), nil, 2025, 2)
	require.NoError(t, err)

	assert.Zero(t, report.WorkedHours)
	assert.True(t, math.Signbit(report.Balance))
	assert.InDelta(t, AnnualQuotaHours/12, report.ContractedHours, 1e-9)
}
