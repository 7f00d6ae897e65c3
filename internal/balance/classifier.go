package balance

import (
	"strings"

	"github.com/vigilant-ops/cuadrante-api/pkg/db/models"
)

// HourValues is the worked/night hour pair a shift code maps to.
type HourValues struct {
	Worked float64
	Night  float64
}

// legacyHours is the fixed fallback table used before config_turnos existed.
// V, L, B and F count zero hours.
var legacyHours = map[string]HourValues{
	"N": {Worked: 12, Night: 8},
	"D": {Worked: 12, Night: 0},
	"V": {},
	"L": {},
	"B": {},
	"F": {},
	"R": {Worked: 5, Night: 0},
}

// Classifier resolves shift codes to hour values. Configured codes win;
// unknown codes fall back to the legacy table and finally to zero. Total over
// all inputs, never errors.
type Classifier struct {
	configured map[string]HourValues
}

// NewClassifier builds a classifier from the stored shift configuration.
func NewClassifier(configs []models.ShiftConfig) *Classifier {
	configured := make(map[string]HourValues, len(configs))
	for _, cfg := range configs {
		code := normalizeCode(cfg.Code)
		if code == "" {
			continue
		}
		configured[code] = HourValues{Worked: cfg.WorkedHours, Night: cfg.NightHours}
	}
	return &Classifier{configured: configured}
}

// Hours returns the worked and night hours for a shift code.
func (c *Classifier) Hours(code string) HourValues {
	normalized := normalizeCode(code)
	if c != nil {
		if values, ok := c.configured[normalized]; ok {
			return values
		}
	}
	return legacyHours[normalized]
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
