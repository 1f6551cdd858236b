package services

import (
	"context"

	"github.com/iota-uz/officelife/modules/company/domain/aggregates/project"
	"github.com/iota-uz/officelife/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/officelife/pkg/audit"
	"github.com/iota-uz/officelife/pkg/authz"
	"github.com/iota-uz/officelife/pkg/execution"
)

type CloseProjectRequest struct {
	execution.Base
	ProjectID uint `form:"project_id" validate:"required"`
}

type UpdateProjectLeadRequest struct {
	execution.Base
	ProjectID  uint `form:"project_id" validate:"required"`
	EmployeeID uint `form:"employee_id" validate:"required"`
}

type ProjectService struct {
	exec      *execution.Executor
	repo      project.Repository
	employees EmployeeReader
}

func NewProjectService(exec *execution.Executor, repo project.Repository, employees EmployeeReader) *ProjectService {
	return &ProjectService{exec: exec, repo: repo, employees: employees}
}

func (s *ProjectService) CloseProject(ctx context.Context, req *CloseProjectRequest) (project.Project, error) {
	return execution.Run(ctx, s.exec, execution.Operation[project.Project, project.Project]{
		Name:        "close_project",
		Request:     req,
		Requirement: authz.AtLeast(authz.RoleUser),
		Resolve: func(ctx context.Context, _ execution.Call) (project.Project, error) {
			return s.repo.GetByID(ctx, req.ProjectID)
		},
		Mutate: func(ctx context.Context, call execution.Call, p project.Project) (project.Project, error) {
			closed := p.Close(call.Now)
			if err := s.repo.Update(ctx, closed); err != nil {
				return project.Project{}, err
			}
			if err := s.repo.RecordActivity(ctx, closed.ID, call.Actor.ID, call.Now); err != nil {
				return project.Project{}, err
			}
			return closed, nil
		},
		Audit: func(call execution.Call, _ project.Project, p project.Project) []audit.Entry {
			return []audit.Entry{
				audit.ForCompany(call.Scope.CompanyID, call.Author(), call.Now, audit.ProjectClosed{
					ProjectID:   p.ID,
					ProjectName: p.Name,
				}),
			}
		},
		Refresh: execution.Reload(s.repo.GetByID, func(p project.Project) uint { return p.ID }),
	})
}

type leadTarget struct {
	project project.Project
	lead    employee.Employee
}

// UpdateProjectLead makes the employee the project lead, enrolling them as
// a member first when needed.
func (s *ProjectService) UpdateProjectLead(ctx context.Context, req *UpdateProjectLeadRequest) (project.Project, error) {
	return execution.Run(ctx, s.exec, execution.Operation[leadTarget, project.Project]{
		Name:        "update_project_lead",
		Request:     req,
		Requirement: authz.AtLeast(authz.RoleUser),
		Resolve: func(ctx context.Context, _ execution.Call) (leadTarget, error) {
			p, err := s.repo.GetByID(ctx, req.ProjectID)
			if err != nil {
				return leadTarget{}, err
			}
			e, err := s.employees.GetByID(ctx, req.EmployeeID)
			if err != nil {
				return leadTarget{}, err
			}
			return leadTarget{project: p, lead: e}, nil
		},
		Mutate: func(ctx context.Context, call execution.Call, st leadTarget) (project.Project, error) {
			member, err := s.repo.IsMember(ctx, st.project.ID, st.lead.ID())
			if err != nil {
				return project.Project{}, err
			}
			if !member {
				if err := s.repo.AddMember(ctx, st.project.ID, st.lead.ID(), call.Now); err != nil {
					return project.Project{}, err
				}
			}
			updated := st.project.SetLead(st.lead.ID(), call.Now)
			if err := s.repo.Update(ctx, updated); err != nil {
				return project.Project{}, err
			}
			if err := s.repo.RecordActivity(ctx, updated.ID, call.Actor.ID, call.Now); err != nil {
				return project.Project{}, err
			}
			return updated, nil
		},
		Audit: func(call execution.Call, st leadTarget, p project.Project) []audit.Entry {
			return []audit.Entry{
				audit.ForCompany(call.Scope.CompanyID, call.Author(), call.Now, audit.ProjectLeadUpdated{
					ProjectID:    p.ID,
					ProjectName:  p.Name,
					EmployeeID:   st.lead.ID(),
					EmployeeName: st.lead.Name(),
				}),
				audit.ForEmployee(call.Scope.CompanyID, st.lead.ID(), call.Author(), call.Now, audit.ProjectLeadUpdated{
					ProjectID:   p.ID,
					ProjectName: p.Name,
				}),
			}
		},
		Refresh: execution.Reload(s.repo.GetByID, func(p project.Project) uint { return p.ID }),
	})
}
