package models

// ShiftConfig maps a shift code ("N", "D", "V", ...) to its display metadata
// and the canonical hour values the balance engine uses.
type ShiftConfig struct {
	Code        string  `gorm:"column:codigo;primaryKey"`
	Description string  `gorm:"column:descripcion"`
	Schedule    string  `gorm:"column:horario"`
	Color       string  `gorm:"column:color"`
	WorkedHours float64 `gorm:"column:horas_total;not null;default:0"`
	NightHours  float64 `gorm:"column:horas_nocturnas;not null;default:0"`
}

func (ShiftConfig) TableName() string {
	return "config_turnos"
}
