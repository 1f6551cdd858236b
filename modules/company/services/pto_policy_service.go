package services

import (
	"context"
	"fmt"
	"time"

	"github.com/iota-uz/officelife/modules/company/domain/aggregates/ptopolicy"
	"github.com/iota-uz/officelife/pkg/audit"
	"github.com/iota-uz/officelife/pkg/authz"
	"github.com/iota-uz/officelife/pkg/constants"
	"github.com/iota-uz/officelife/pkg/execution"
	"github.com/iota-uz/officelife/pkg/serrors"
)

type CreatePTOPolicyRequest struct {
	execution.Base
	Year            int  `form:"year" validate:"required,min=1900,max=3000"`
	DefaultHolidays *int `form:"default_amount_of_allowed_holidays" validate:"required,min=0"`
	DefaultSickDays *int `form:"default_amount_of_sick_days" validate:"required,min=0"`
	DefaultPTODays  *int `form:"default_amount_of_pto_days" validate:"required,min=0"`
}

type ToggleCalendarDayRequest struct {
	execution.Base
	PolicyID uint      `form:"company_pto_policy_id" validate:"required"`
	Day      time.Time `form:"day" validate:"required"`
}

type PTOPolicyService struct {
	exec *execution.Executor
	repo ptopolicy.Repository
}

func NewPTOPolicyService(exec *execution.Executor, repo ptopolicy.Repository) *PTOPolicyService {
	return &PTOPolicyService{exec: exec, repo: repo}
}

func (s *PTOPolicyService) GetByID(ctx context.Context, id uint) (ptopolicy.Policy, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PTOPolicyService) List(ctx context.Context) ([]ptopolicy.Policy, error) {
	return s.repo.List(ctx)
}

// CreateCompanyPTOPolicy creates the single policy of a year along with its
// materialized calendar.
func (s *PTOPolicyService) CreateCompanyPTOPolicy(ctx context.Context, req *CreatePTOPolicyRequest) (ptopolicy.Policy, error) {
	return execution.Run(ctx, s.exec, execution.Operation[struct{}, ptopolicy.Policy]{
		Name:        "create_company_pto_policy",
		Request:     req,
		Requirement: authz.AtLeast(authz.RoleHR),
		Guard: func(ctx context.Context, _ execution.Call, _ struct{}) error {
			exists, err := s.repo.ExistsForYear(ctx, req.Year)
			if err != nil {
				return err
			}
			if exists {
				return serrors.AlreadyExists("company pto policy", fmt.Sprint(req.Year))
			}
			return nil
		},
		Mutate: func(ctx context.Context, call execution.Call, _ struct{}) (ptopolicy.Policy, error) {
			p := ptopolicy.New(call.Scope.CompanyID, req.Year,
				*req.DefaultHolidays, *req.DefaultSickDays, *req.DefaultPTODays, call.Now)
			return s.repo.Create(ctx, p)
		},
		Audit: func(call execution.Call, _ struct{}, p ptopolicy.Policy) []audit.Entry {
			return []audit.Entry{
				audit.ForCompany(call.Scope.CompanyID, call.Author(), call.Now, audit.PTOPolicyCreated{
					PolicyID: p.ID,
					Year:     p.Year,
				}),
			}
		},
		Refresh: execution.Reload(s.repo.GetByID, func(p ptopolicy.Policy) uint { return p.ID }),
	})
}

func (s *PTOPolicyService) ToggleCalendarDay(ctx context.Context, req *ToggleCalendarDayRequest) (ptopolicy.Policy, error) {
	return execution.Run(ctx, s.exec, execution.Operation[ptopolicy.Policy, ptopolicy.Policy]{
		Name:        "toggle_calendar_day",
		Request:     req,
		Requirement: authz.AtLeast(authz.RoleHR),
		Resolve: func(ctx context.Context, _ execution.Call) (ptopolicy.Policy, error) {
			return s.repo.GetByID(ctx, req.PolicyID)
		},
		Mutate: func(ctx context.Context, _ execution.Call, p ptopolicy.Policy) (ptopolicy.Policy, error) {
			toggled, day, err := p.Toggle(req.Day)
			if err != nil {
				return ptopolicy.Policy{}, err
			}
			if err := s.repo.UpdateDay(ctx, toggled, day); err != nil {
				return ptopolicy.Policy{}, err
			}
			return toggled, nil
		},
		Audit: func(call execution.Call, _ ptopolicy.Policy, p ptopolicy.Policy) []audit.Entry {
			return []audit.Entry{
				audit.ForCompany(call.Scope.CompanyID, call.Author(), call.Now, audit.PTOPolicyDayToggled{
					PolicyID: p.ID,
					Day:      req.Day.Format(constants.DateFormat),
				}),
			}
		},
		Refresh: execution.Reload(s.repo.GetByID, func(p ptopolicy.Policy) uint { return p.ID }),
	})
}
