package models

import (
	"github.com/vigilant-ops/cuadrante-api/pkg/enums"
)

// Holiday is one festivo date in a given administrative scope. Dates come in
// either MM-DD (recurring) or YYYY-MM-DD (one-off) form, preserved as-is from
// the desktop calendar.
type Holiday struct {
	Date  string             `gorm:"column:fecha;primaryKey"`
	Scope enums.HolidayScope `gorm:"column:ambito;type:text;primaryKey"`
}

func (Holiday) TableName() string {
	return "festivos"
}
