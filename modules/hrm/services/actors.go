package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/iota-uz/officelife/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/officelife/pkg/authz"
)

// Actors resolves acting employees and manager edges for the executor.
type Actors struct {
	repo employee.Repository
}

func NewActors(repo employee.Repository) *Actors {
	return &Actors{repo: repo}
}

func (a *Actors) ResolveActor(ctx context.Context, employeeID uint) (authz.Actor, error) {
	e, err := a.repo.GetActor(ctx, employeeID)
	if err != nil {
		return authz.Actor{}, err
	}
	if e.IsZero() {
		return authz.Actor{}, nil
	}
	return e.Actor(), nil
}

func (a *Actors) IsDirectManager(ctx context.Context, companyID uuid.UUID, managerID, reportID uint) (bool, error) {
	return a.repo.IsDirectManager(ctx, companyID, managerID, reportID)
}
