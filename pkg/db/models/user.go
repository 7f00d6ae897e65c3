package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/vigilant-ops/cuadrante-api/pkg/enums"
)

// User represents an authentication account. At most one active account may
// exist per email.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string     `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	FullName     string     `gorm:"column:full_name;not null"`
	Role         enums.Role `gorm:"type:text;not null;default:'vigilante'"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the table name the desktop tool expects.
func (User) TableName() string {
	return "users"
}
