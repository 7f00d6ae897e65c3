package sync

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftValueAcceptsLegacyString(t *testing.T) {
	var value ShiftValue
	require.NoError(t, json.Unmarshal([]byte(`"N"`), &value))
	assert.Equal(t, "N", value.Code)
	assert.Zero(t, value.WorkedHours)
	assert.False(t, value.IsHoliday)
}

func TestShiftValueAcceptsEnrichedObject(t *testing.T) {
	raw := `{"codigo":"N","trabajadas":12,"nocturnas":8,"festivas":12,"es_festivo":true}`
	var value ShiftValue
	require.NoError(t, json.Unmarshal([]byte(raw), &value))
	assert.Equal(t, "N", value.Code)
	assert.Equal(t, 12.0, value.WorkedHours)
	assert.Equal(t, 8.0, value.NightHours)
	assert.Equal(t, 12.0, value.HolidayHours)
	assert.True(t, value.IsHoliday)
}

func TestShiftValueRejectsOtherShapes(t *testing.T) {
	var value ShiftValue
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &value))
}

func TestPayloadDecodesMixedShapes(t *testing.T) {
	raw := `{
	  "empleados": {"Ana Garcia": {"email": "ana@empresa.es", "telefono": "600111222"}},
	  "cuadrantes": {"2025": {"6": [{"nombre": "Ana Garcia", "turnos": {"1": "N", "2": {"codigo": "D", "trabajadas": 12}}}]}},
	  "config_turnos": {"N": {"leyenda": "Noche", "color_fondo": "#222222", "trabajadas": 12, "nocturnas": 8}}
	}`
	var payload Payload
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	require.Contains(t, payload.Employees, "Ana Garcia")
	shifts := payload.Rosters["2025"]["6"][0].Shifts
	assert.Equal(t, "N", shifts["1"].Code)
	assert.Equal(t, 12.0, shifts["2"].WorkedHours)
	assert.Equal(t, "Noche", payload.Configs["N"].Legend)
}
