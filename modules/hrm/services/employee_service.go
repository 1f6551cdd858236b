package services

import (
	"context"
	"time"

	"github.com/iota-uz/officelife/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/officelife/pkg/audit"
	"github.com/iota-uz/officelife/pkg/authz"
	"github.com/iota-uz/officelife/pkg/execution"
	"github.com/iota-uz/officelife/pkg/serrors"
)

type AddEmployeeRequest struct {
	execution.Base
	FirstName       string     `form:"first_name" validate:"required,max=255"`
	LastName        string     `form:"last_name" validate:"required,max=255"`
	Email           string     `form:"email" validate:"required,email,max=255"`
	PermissionLevel int        `form:"permission_level" validate:"required,oneof=100 200 300"`
	Position        string     `form:"position" validate:"max=255"`
	HiredAt         *time.Time `form:"hired_at"`
	Birthdate       *time.Time `form:"birthdate"`
}

type SetTwitterRequest struct {
	execution.Base
	EmployeeID uint   `form:"employee_id" validate:"required"`
	Twitter    string `form:"twitter" validate:"max=255"`
}

type EmployeeService struct {
	exec *execution.Executor
	repo employee.Repository
}

func NewEmployeeService(exec *execution.Executor, repo employee.Repository) *EmployeeService {
	return &EmployeeService{exec: exec, repo: repo}
}

func (s *EmployeeService) GetByID(ctx context.Context, id uint) (employee.Employee, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *EmployeeService) AddEmployeeToCompany(ctx context.Context, req *AddEmployeeRequest) (employee.Employee, error) {
	return execution.Run(ctx, s.exec, execution.Operation[struct{}, employee.Employee]{
		Name:        "add_employee_to_company",
		Request:     req,
		Requirement: authz.AtLeast(authz.RoleHR),
		Guard: func(ctx context.Context, _ execution.Call, _ struct{}) error {
			taken, err := s.repo.ExistsByEmail(ctx, req.Email)
			if err != nil {
				return err
			}
			if taken {
				return serrors.AlreadyExists("employee", employee.NormalizeEmail(req.Email))
			}
			return nil
		},
		Mutate: func(ctx context.Context, call execution.Call, _ struct{}) (employee.Employee, error) {
			e := employee.New(call.Scope.CompanyID, req.FirstName, req.LastName, req.Email, authz.Role(req.PermissionLevel),
				employee.WithPosition(req.Position),
				employee.WithHiredAt(req.HiredAt),
				employee.WithBirthdate(req.Birthdate),
				employee.WithCreatedAt(call.Now),
				employee.WithUpdatedAt(call.Now),
			)
			return s.repo.Create(ctx, e)
		},
		Audit: func(call execution.Call, _ struct{}, e employee.Employee) []audit.Entry {
			return []audit.Entry{
				audit.ForCompany(call.Scope.CompanyID, call.Author(), call.Now, audit.EmployeeAdded{
					EmployeeID: e.ID(),
					FirstName:  e.FirstName(),
					LastName:   e.LastName(),
				}),
				audit.ForEmployee(call.Scope.CompanyID, e.ID(), call.Author(), call.Now, audit.EmployeeCreated{}),
			}
		},
		Refresh: execution.Reload(s.repo.GetByID, employee.Employee.ID),
	})
}

// SetTwitterHandle sets or, with an empty handle, resets the handle.
func (s *EmployeeService) SetTwitterHandle(ctx context.Context, req *SetTwitterRequest) (employee.Employee, error) {
	return execution.Run(ctx, s.exec, execution.Operation[employee.Employee, employee.Employee]{
		Name:        "set_twitter_handle",
		Request:     req,
		Requirement: authz.AtLeast(authz.RoleHR).OrSelf(),
		Resolve: func(ctx context.Context, _ execution.Call) (employee.Employee, error) {
			return s.repo.GetByID(ctx, req.EmployeeID)
		},
		Target: func(e employee.Employee) uint { return e.ID() },
		Mutate: func(ctx context.Context, call execution.Call, e employee.Employee) (employee.Employee, error) {
			updated := e.SetTwitter(req.Twitter, call.Now)
			if err := s.repo.Update(ctx, updated); err != nil {
				return employee.Employee{}, err
			}
			return updated, nil
		},
		Audit: func(call execution.Call, _ employee.Employee, e employee.Employee) []audit.Entry {
			var company, own audit.Payload
			if e.Twitter() == "" {
				company = audit.EmployeeTwitterReset{EmployeeID: e.ID(), EmployeeName: e.Name()}
				own = audit.TwitterReset{}
			} else {
				company = audit.EmployeeTwitterSet{EmployeeID: e.ID(), EmployeeName: e.Name(), Twitter: e.Twitter()}
				own = audit.TwitterSet{Twitter: e.Twitter()}
			}
			return []audit.Entry{
				audit.ForCompany(call.Scope.CompanyID, call.Author(), call.Now, company),
				audit.ForEmployee(call.Scope.CompanyID, e.ID(), call.Author(), call.Now, own),
			}
		},
		Refresh: execution.Reload(s.repo.GetByID, employee.Employee.ID),
	})
}
