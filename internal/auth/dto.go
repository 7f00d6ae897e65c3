package auth

import (
	"github.com/vigilant-ops/cuadrante-api/internal/employees"
	"github.com/vigilant-ops/cuadrante-api/internal/users"
	"github.com/vigilant-ops/cuadrante-api/pkg/enums"
)

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the token and user produced by a successful login.
type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	User        *users.UserDTO `json:"user"`
}

// RegisterRequest contains the payload for the dev-only account surface.
type RegisterRequest struct {
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=8"`
	FullName string     `json:"nombre" validate:"required"`
	Role     enums.Role `json:"rol,omitempty"`
}

// ChangePasswordRequest carries the credential rotation payload. The caller
// must prove the current password before the hash is replaced.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"password_actual" validate:"required"`
	NewPassword     string `json:"password_nueva" validate:"required,min=8"`
}

// ProfileResponse is the /me payload: the account plus its roster record when
// one resolves.
type ProfileResponse struct {
	User     *users.UserDTO         `json:"user"`
	Employee *employees.EmployeeDTO `json:"empleado,omitempty"`
}
