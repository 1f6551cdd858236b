package services

import (
	"context"
	"time"

	"github.com/iota-uz/officelife/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/officelife/modules/logging/domain/entities/auditlog"
	"github.com/iota-uz/officelife/modules/logging/presentation/mappers"
	"github.com/iota-uz/officelife/modules/logging/presentation/viewmodels"
	"github.com/iota-uz/officelife/pkg/audit"
	"github.com/iota-uz/officelife/pkg/authz"
	"github.com/iota-uz/officelife/pkg/composables"
	"github.com/iota-uz/officelife/pkg/execution"
	"github.com/iota-uz/officelife/pkg/validation"
)

const defaultPerPage = 15

type Pagination struct {
	Page    int `form:"page" validate:"min=0"`
	PerPage int `form:"per_page" validate:"min=0,max=100"`
}

func (p Pagination) normalized() (page, perPage int) {
	page, perPage = p.Page, p.PerPage
	if page < 1 {
		page = 1
	}
	if perPage == 0 {
		perPage = defaultPerPage
	}
	return page, perPage
}

type ListCompanyLogsRequest struct {
	execution.Base
	Pagination
}

type ListEmployeeLogsRequest struct {
	execution.Base
	Pagination
	EmployeeID uint `form:"employee_id" validate:"required"`
}

// EmployeeReader resolves employees of the company in context.
type EmployeeReader interface {
	GetByID(ctx context.Context, id uint) (employee.Employee, error)
}

type LogsService struct {
	exec      *execution.Executor
	repo      auditlog.Repository
	employees EmployeeReader
	loc       *time.Location
}

func NewLogsService(exec *execution.Executor, repo auditlog.Repository, employees EmployeeReader, loc *time.Location) *LogsService {
	return &LogsService{exec: exec, repo: repo, employees: employees, loc: loc}
}

// ListCompanyLogs is restricted to administrators.
func (s *LogsService) ListCompanyLogs(ctx context.Context, req *ListCompanyLogsRequest) (viewmodels.LogsPage, error) {
	if err := validation.Struct(req); err != nil {
		return viewmodels.LogsPage{}, err
	}
	ctx = composables.WithCompanyID(ctx, req.CompanyID)
	call, err := s.exec.Admit(ctx, req.Scope())
	if err != nil {
		return viewmodels.LogsPage{}, err
	}
	if err := s.exec.Permit(ctx, call, authz.AtLeast(authz.RoleAdministrator), 0); err != nil {
		return viewmodels.LogsPage{}, err
	}
	return s.page(ctx, &auditlog.FindParams{Stream: audit.StreamCompany}, req.Pagination)
}

// ListEmployeeLogs is open to HR, the employee and their direct manager.
func (s *LogsService) ListEmployeeLogs(ctx context.Context, req *ListEmployeeLogsRequest) (viewmodels.LogsPage, error) {
	if err := validation.Struct(req); err != nil {
		return viewmodels.LogsPage{}, err
	}
	ctx = composables.WithCompanyID(ctx, req.CompanyID)
	call, err := s.exec.Admit(ctx, req.Scope())
	if err != nil {
		return viewmodels.LogsPage{}, err
	}
	var target employee.Employee
	if err := s.exec.Tx().InTx(ctx, func(txCtx context.Context) error {
		target, err = s.employees.GetByID(txCtx, req.EmployeeID)
		return err
	}); err != nil {
		return viewmodels.LogsPage{}, err
	}
	if err := s.exec.Permit(ctx, call, authz.AtLeast(authz.RoleHR).OrSelf().OrManager(), target.ID()); err != nil {
		return viewmodels.LogsPage{}, err
	}
	return s.page(ctx, &auditlog.FindParams{Stream: audit.StreamEmployee, EmployeeID: target.ID()}, req.Pagination)
}

func (s *LogsService) page(ctx context.Context, params *auditlog.FindParams, p Pagination) (viewmodels.LogsPage, error) {
	page, perPage := p.normalized()
	params.Limit = perPage
	params.Offset = (page - 1) * perPage

	var out viewmodels.LogsPage
	err := s.exec.Tx().InTx(ctx, func(txCtx context.Context) error {
		logs, err := s.repo.List(txCtx, params)
		if err != nil {
			return err
		}
		total, err := s.repo.Count(txCtx, params)
		if err != nil {
			return err
		}
		out = viewmodels.LogsPage{
			Logs:    mappers.AuditLogsToViewModels(logs, s.loc),
			Total:   total,
			Page:    page,
			PerPage: perPage,
		}
		return nil
	})
	return out, err
}
