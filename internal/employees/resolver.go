package employees

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vigilant-ops/cuadrante-api/pkg/db/models"
	pkgerrors "github.com/vigilant-ops/cuadrante-api/pkg/errors"
)

type employeeFinder interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Employee, error)
	FindByFullName(ctx context.Context, fullName string) (*models.Employee, error)
	FindByEmail(ctx context.Context, email string) (*models.Employee, error)
	LinkUser(ctx context.Context, employeeID, userID uuid.UUID) error
}

// Resolver maps an authenticated account onto its roster record. The user_id
// link wins; rows synced before provisioning fall back to a name match and
// then to the contact email. A fallback hit backfills the link so the next
// lookup is direct.
type Resolver struct {
	repo employeeFinder
}

// NewResolver builds a resolver over the employees repository.
func NewResolver(repo employeeFinder) (*Resolver, error) {
	if repo == nil {
		return nil, fmt.Errorf("employees repository required")
	}
	return &Resolver{repo: repo}, nil
}

// Resolve returns the roster record for the authenticated user.
func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID, fullName, email string) (*models.Employee, error) {
	employee, err := r.repo.FindByUserID(ctx, userID)
	if err == nil {
		return employee, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve employee by account")
	}

	if fullName != "" {
		employee, err = r.repo.FindByFullName(ctx, fullName)
		if err == nil {
			return r.backfill(ctx, employee, userID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve employee by name")
		}
	}

	if email != "" {
		employee, err = r.repo.FindByEmail(ctx, email)
		if err == nil {
			return r.backfill(ctx, employee, userID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve employee by email")
		}
	}

	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "empleado no encontrado")
}

func (r *Resolver) backfill(ctx context.Context, employee *models.Employee, userID uuid.UUID) (*models.Employee, error) {
	if employee.UserID == nil {
		if err := r.repo.LinkUser(ctx, employee.ID, userID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "link employee account")
		}
		linked := userID
		employee.UserID = &linked
	}
	return employee, nil
}
