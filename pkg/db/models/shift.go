package models

import (
	"github.com/google/uuid"
)

// Shift is one employee's assignment on one calendar day. Hour fields arrive
// pre-computed from the desktop tool; legacy payloads without them leave the
// fields at zero. The composite unique index backs the delete-then-reinsert
// reconciliation so a replay can never duplicate a day.
type Shift struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	EmployeeID   uuid.UUID `gorm:"column:empleado_id;type:uuid;not null;uniqueIndex:idx_turnos_empleado_dia,priority:1"`
	Year         int       `gorm:"column:anio;not null;uniqueIndex:idx_turnos_empleado_dia,priority:2"`
	Month        int       `gorm:"column:mes;not null;uniqueIndex:idx_turnos_empleado_dia,priority:3"`
	Day          int       `gorm:"column:dia;not null;uniqueIndex:idx_turnos_empleado_dia,priority:4"`
	Code         string    `gorm:"column:codigo_turno;not null"`
	WorkedHours  float64   `gorm:"column:horas_trabajadas;not null;default:0"`
	NightHours   float64   `gorm:"column:horas_nocturnas;not null;default:0"`
	HolidayHours float64   `gorm:"column:horas_festivas;not null;default:0"`
	IsHoliday    bool      `gorm:"column:es_festivo;not null;default:false"`
}

func (Shift) TableName() string {
	return "turnos"
}
