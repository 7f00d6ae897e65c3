package models

import (
	"github.com/google/uuid"
)

// Employee is the roster identity record. The full name is the join key the
// desktop tool uses, so it stays unique; UserID is the enforced link to the
// authentication account, populated at provisioning time. Rows synced before
// account provisioning existed may still have a nil UserID and are resolved
// through the legacy name/email fallback.
type Employee struct {
	ID       uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	FullName string     `gorm:"column:nombre_completo;not null;uniqueIndex"`
	Email    *string    `gorm:"column:email"`
	Phone    *string    `gorm:"column:telefono"`
	DNI      *string    `gorm:"column:dni"`
	HireDate *string    `gorm:"column:fecha_alta"`
	Category string     `gorm:"column:categoria;not null;default:'Vigilante'"`
	UserID   *uuid.UUID `gorm:"column:user_id;type:uuid;index"`
}

func (Employee) TableName() string {
	return "empleados"
}
