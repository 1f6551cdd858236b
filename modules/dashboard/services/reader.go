package services

import (
	"context"

	"github.com/iota-uz/officelife/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/officelife/pkg/authz"
	"github.com/iota-uz/officelife/pkg/composables"
	"github.com/iota-uz/officelife/pkg/execution"
	"github.com/iota-uz/officelife/pkg/validation"
)

// EmployeeLister reads employees of the company in context.
type EmployeeLister interface {
	GetByID(ctx context.Context, id uint) (employee.Employee, error)
	List(ctx context.Context, params *employee.FindParams) ([]employee.Employee, error)
}

type TeamRequest struct {
	execution.Base
	TeamID uint `form:"team_id" validate:"required"`
}

type EmployeeYearRequest struct {
	execution.Base
	EmployeeID uint `form:"employee_id" validate:"required"`
	Year       int  `form:"year" validate:"required,min=1900,max=3000"`
}

type EmployeeRequest struct {
	execution.Base
	EmployeeID uint `form:"employee_id" validate:"required"`
}

// admit validates req and lets any member of the company read.
func admit(ctx context.Context, exec *execution.Executor, req execution.Request) (context.Context, error) {
	if err := validation.Struct(req); err != nil {
		return ctx, err
	}
	scope := req.Scope()
	ctx = composables.WithCompanyID(ctx, scope.CompanyID)
	call, err := exec.Admit(ctx, scope)
	if err != nil {
		return ctx, err
	}
	if err := exec.Permit(ctx, call, authz.AtLeast(authz.RoleUser), 0); err != nil {
		return ctx, err
	}
	return ctx, nil
}
