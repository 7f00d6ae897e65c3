package shifts

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vigilant-ops/cuadrante-api/internal/balance"
	"github.com/vigilant-ops/cuadrante-api/internal/holidays"
	"github.com/vigilant-ops/cuadrante-api/pkg/db/models"
)

// ShiftDTO is one calendar day in a schedule view, enriched with the shift
// code's display metadata.
type ShiftDTO struct {
	Date        string  `json:"fecha"`
	Day         int     `json:"dia"`
	Code        string  `json:"codigo"`
	Description string  `json:"descripcion,omitempty"`
	Schedule    string  `json:"horario,omitempty"`
	Color       string  `json:"color,omitempty"`
	WorkedHours float64 `json:"horas"`
	NightHours  float64 `json:"nocturnas"`
	IsHoliday   bool    `json:"es_festivo"`
}

// EmployeeScheduleDTO groups a month of shifts under one roster entry.
type EmployeeScheduleDTO struct {
	EmployeeID uuid.UUID  `json:"empleado_id"`
	FullName   string     `json:"nombre_completo"`
	Shifts     []ShiftDTO `json:"turnos"`
}

// MonthScheduleDTO is the caller's (or the full) calendar for one month.
type MonthScheduleDTO struct {
	Year   int        `json:"anio"`
	Month  int        `json:"mes"`
	Shifts []ShiftDTO `json:"turnos"`
}

func shiftToDTO(shift models.Shift, configs map[string]models.ShiftConfig, classifier *balance.Classifier, lookup *holidays.Lookup) ShiftDTO {
	dto := ShiftDTO{
		Date:        fmt.Sprintf("%04d-%02d-%02d", shift.Year, shift.Month, shift.Day),
		Day:         shift.Day,
		Code:        shift.Code,
		WorkedHours: shift.WorkedHours,
		NightHours:  shift.NightHours,
		IsHoliday:   shift.IsHoliday || lookup.IsHoliday(shift.Year, shift.Month, shift.Day),
	}

	if cfg, ok := configs[shift.Code]; ok {
		dto.Description = cfg.Description
		dto.Schedule = cfg.Schedule
		dto.Color = cfg.Color
	}

	// Legacy rows carry zero hour fields; fall back to the classifier so
	// schedule views still show meaningful values.
	if dto.WorkedHours == 0 && dto.NightHours == 0 {
		values := classifier.Hours(shift.Code)
		dto.WorkedHours = values.Worked
		dto.NightHours = values.Night
	}

	return dto
}
