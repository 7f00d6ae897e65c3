package employees

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vigilant-ops/cuadrante-api/pkg/db/models"
	pkgerrors "github.com/vigilant-ops/cuadrante-api/pkg/errors"
)

type stubFinder struct {
	byUserID   *models.Employee
	byFullName *models.Employee
	byEmail    *models.Employee
	linked     []uuid.UUID
}

func (s *stubFinder) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Employee, error) {
	if s.byUserID == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.byUserID, nil
}

func (s *stubFinder) FindByFullName(ctx context.Context, fullName string) (*models.Employee, error) {
	if s.byFullName == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.byFullName, nil
}

func (s *stubFinder) FindByEmail(ctx context.Context, email string) (*models.Employee, error) {
	if s.byEmail == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.byEmail, nil
}

func (s *stubFinder) LinkUser(ctx context.Context, employeeID, userID uuid.UUID) error {
	s.linked = append(s.linked, employeeID)
	return nil
}

func TestResolvePrefersAccountLink(t *testing.T) {
	userID := uuid.New()
	linked := &models.Employee{ID: uuid.New(), FullName: "Ana Garcia", UserID: &userID}
	finder := &stubFinder{byUserID: linked, byFullName: &models.Employee{ID: uuid.New()}}

	resolver, err := NewResolver(finder)
	require.NoError(t, err)

	got, err := resolver.Resolve(context.Background(), userID, "Ana Garcia", "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, linked.ID, got.ID)
	assert.Empty(t, finder.linked)
}

func TestResolveFallsBackToNameAndBackfills(t *testing.T) {
	userID := uuid.New()
	unlinked := &models.Employee{ID: uuid.New(), FullName: "Ana Garcia"}
	finder := &stubFinder{byFullName: unlinked}

	resolver, err := NewResolver(finder)
	require.NoError(t, err)

	got, err := resolver.Resolve(context.Background(), userID, "Ana Garcia", "")
	require.NoError(t, err)
	assert.Equal(t, unlinked.ID, got.ID)
	require.NotNil(t, got.UserID)
	assert.Equal(t, userID, *got.UserID)
	assert.Equal(t, []uuid.UUID{unlinked.ID}, finder.linked)
}

func TestResolveFallsBackToEmail(t *testing.T) {
	userID := uuid.New()
	unlinked := &models.Employee{ID: uuid.New(), FullName: "Ana Garcia"}
	finder := &stubFinder{byEmail: unlinked}

	resolver, err := NewResolver(finder)
	require.NoError(t, err)

	got, err := resolver.Resolve(context.Background(), userID, "Otro Nombre", "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, unlinked.ID, got.ID)
	assert.Equal(t, []uuid.UUID{unlinked.ID}, finder.linked)
}

func TestResolveNotFound(t *testing.T) {
	resolver, err := NewResolver(&stubFinder{})
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(), uuid.New(), "Nadie", "nadie@example.com")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestResolveSkipsLinkWhenAlreadyLinked(t *testing.T) {
	userID := uuid.New()
	other := uuid.New()
	employee := &models.Employee{ID: uuid.New(), FullName: "Ana Garcia", UserID: &other}
	finder := &stubFinder{byFullName: employee}

	resolver, err := NewResolver(finder)
	require.NoError(t, err)

	got, err := resolver.Resolve(context.Background(), userID, "Ana Garcia", "")
	require.NoError(t, err)
	assert.Equal(t, employee.ID, got.ID)
	assert.Empty(t, finder.linked)
}
