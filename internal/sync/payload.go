package sync

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Payload is the full snapshot the desktop tool pushes. Employee, roster and
// config sections are keyed by free-form operator strings, so every section is
// a dynamic map rather than a fixed struct.
type Payload struct {
	Employees map[string]EmployeePayload     `json:"empleados"`
	Rosters   map[string]map[string][]Roster `json:"cuadrantes"`
	Configs   map[string]ShiftConfigPayload  `json:"config_turnos"`
	Holidays  map[string][]string            `json:"festivos,omitempty"`
}

// EmployeePayload carries contact fields per roster name, plus optional
// account provisioning credentials.
type EmployeePayload struct {
	Email    *string `json:"email"`
	Phone    *string `json:"telefono"`
	DNI      *string `json:"dni"`
	HireDate *string `json:"fecha_alta"`
	Password *string `json:"password,omitempty"`
}

// Roster is one employee's shift map for a single month: day number → shift.
type Roster struct {
	Name   string                `json:"nombre"`
	Shifts map[string]ShiftValue `json:"turnos"`
}

// ShiftValue accepts the two shapes the desktop emits: a bare code string
// (legacy, zero hour fields) or an enriched object with pre-computed hours.
type ShiftValue struct {
	Code         string  `json:"codigo"`
	WorkedHours  float64 `json:"trabajadas"`
	NightHours   float64 `json:"nocturnas"`
	HolidayHours float64 `json:"festivas"`
	IsHoliday    bool    `json:"es_festivo"`
}

func (v *ShiftValue) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var code string
		if err := json.Unmarshal(data, &code); err != nil {
			return err
		}
		*v = ShiftValue{Code: code}
		return nil
	}

	type enriched ShiftValue
	var obj enriched
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("shift value must be a code string or an object: %w", err)
	}
	*v = ShiftValue(obj)
	return nil
}

// ShiftConfigPayload is one config_turnos entry. Older payloads carry the
// schedule in leyenda and the color in color_fondo only.
type ShiftConfigPayload struct {
	Legend   string  `json:"leyenda"`
	Schedule string  `json:"horario"`
	Color    string  `json:"color"`
	ColorBG  string  `json:"color_fondo"`
	Worked   float64 `json:"trabajadas"`
	Night    float64 `json:"nocturnas"`
}

// Result summarizes the rows touched by a sync run.
type Result struct {
	Employees        int `json:"empleados"`
	ProvisionedUsers int `json:"usuarios_provisionados"`
	Shifts           int `json:"turnos"`
	Configs          int `json:"config_turnos"`
	Holidays         int `json:"festivos"`
}
