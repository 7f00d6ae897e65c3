package shifts

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vigilant-ops/cuadrante-api/pkg/db/models"
)

func setupShiftsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	turnos := `
CREATE TABLE IF NOT EXISTS turnos (
  id TEXT PRIMARY KEY,
  empleado_id TEXT NOT NULL,
  anio INTEGER NOT NULL,
  mes INTEGER NOT NULL,
  dia INTEGER NOT NULL,
  codigo_turno TEXT NOT NULL,
  horas_trabajadas REAL NOT NULL DEFAULT 0,
  horas_nocturnas REAL NOT NULL DEFAULT 0,
  horas_festivas REAL NOT NULL DEFAULT 0,
  es_festivo INTEGER NOT NULL DEFAULT 0,
  UNIQUE (empleado_id, anio, mes, dia)
);`
	configTurnos := `
CREATE TABLE IF NOT EXISTS config_turnos (
  codigo TEXT PRIMARY KEY,
  descripcion TEXT NOT NULL DEFAULT '',
  horario TEXT NOT NULL DEFAULT '',
  color TEXT NOT NULL DEFAULT '',
  horas_total REAL NOT NULL DEFAULT 0,
  horas_nocturnas REAL NOT NULL DEFAULT 0
);`
	require.NoError(t, db.Exec(`DROP TABLE IF EXISTS turnos`).Error)
	require.NoError(t, db.Exec(`DROP TABLE IF EXISTS config_turnos`).Error)
	require.NoError(t, db.Exec(turnos).Error)
	require.NoError(t, db.Exec(configTurnos).Error)
	return db
}

func seedShift(t *testing.T, db *gorm.DB, employeeID uuid.UUID, year, month, day int, code string, worked float64) {
	t.Helper()
	shift := &models.Shift{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		Year:        year,
		Month:       month,
		Day:         day,
		Code:        code,
		WorkedHours: worked,
	}
	require.NoError(t, db.Create(shift).Error)
}

func TestListForEmployeeMonthOrdersByDay(t *testing.T) {
	db := setupShiftsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	employeeID := uuid.New()

	seedShift(t, db, employeeID, 2025, 3, 15, "N", 12)
	seedShift(t, db, employeeID, 2025, 3, 2, "D", 12)
	seedShift(t, db, employeeID, 2025, 4, 1, "N", 12)
	seedShift(t, db, uuid.New(), 2025, 3, 2, "D", 12)

	got, err := repo.ListForEmployeeMonth(ctx, employeeID, 2025, 3)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Day)
	assert.Equal(t, 15, got[1].Day)
}

func TestDeleteForEmployeeMonthThenBulkInsert(t *testing.T) {
	db := setupShiftsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	employeeID := uuid.New()

	seedShift(t, db, employeeID, 2025, 3, 1, "N", 12)
	seedShift(t, db, employeeID, 2025, 3, 2, "D", 12)

	require.NoError(t, repo.DeleteForEmployeeMonth(ctx, employeeID, 2025, 3))

	replacement := []models.Shift{
		{EmployeeID: employeeID, Year: 2025, Month: 3, Day: 1, Code: "L"},
		{EmployeeID: employeeID, Year: 2025, Month: 3, Day: 2, Code: "N", WorkedHours: 12, NightHours: 8},
	}
	require.NoError(t, repo.BulkInsert(ctx, replacement))

	got, err := repo.ListForEmployeeMonth(ctx, employeeID, 2025, 3)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "L", got[0].Code)
	assert.Equal(t, "N", got[1].Code)
	assert.Equal(t, 8.0, got[1].NightHours)
}

func TestBulkInsertDuplicateDayFails(t *testing.T) {
	db := setupShiftsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	employeeID := uuid.New()

	seedShift(t, db, employeeID, 2025, 3, 1, "N", 12)

	err := repo.BulkInsert(ctx, []models.Shift{
		{EmployeeID: employeeID, Year: 2025, Month: 3, Day: 1, Code: "D"},
	})
	assert.Error(t, err, "unique index on (empleado, anio, mes, dia) rejects replays")
}

func TestConfigUpsertReplacesValues(t *testing.T) {
	db := setupShiftsTestDB(t)
	repo := NewConfigRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &models.ShiftConfig{Code: "N", Description: "Noche", WorkedHours: 12, NightHours: 8}))
	require.NoError(t, repo.Upsert(ctx, &models.ShiftConfig{Code: "N", Description: "Noche larga", WorkedHours: 12.5, NightHours: 8}))

	configs, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "Noche larga", configs[0].Description)
	assert.Equal(t, 12.5, configs[0].WorkedHours)
}
