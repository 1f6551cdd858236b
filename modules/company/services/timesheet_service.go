package services

import (
	"context"
	"time"

	"github.com/iota-uz/officelife/modules/company/domain/aggregates/timesheet"
	"github.com/iota-uz/officelife/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/officelife/pkg/audit"
	"github.com/iota-uz/officelife/pkg/authz"
	"github.com/iota-uz/officelife/pkg/execution"
	"github.com/iota-uz/officelife/pkg/serrors"
)

type DecideTimesheetRequest struct {
	execution.Base
	EmployeeID  uint `form:"employee_id" validate:"required"`
	TimesheetID uint `form:"timesheet_id" validate:"required"`
}

type CreateTimesheetRequest struct {
	execution.Base
	EmployeeID uint      `form:"employee_id" validate:"required"`
	Date       time.Time `form:"date" validate:"required"`
}

type TimesheetService struct {
	exec      *execution.Executor
	repo      timesheet.Repository
	employees EmployeeReader
}

func NewTimesheetService(exec *execution.Executor, repo timesheet.Repository, employees EmployeeReader) *TimesheetService {
	return &TimesheetService{exec: exec, repo: repo, employees: employees}
}

type timesheetTarget struct {
	employee  employee.Employee
	timesheet timesheet.Timesheet
}

func (s *TimesheetService) ApproveTimesheet(ctx context.Context, req *DecideTimesheetRequest) (timesheet.Timesheet, error) {
	return s.decide(ctx, req, "approve_timesheet", audit.ActionTimesheetApproved, timesheet.Timesheet.Approve)
}

func (s *TimesheetService) RejectTimesheet(ctx context.Context, req *DecideTimesheetRequest) (timesheet.Timesheet, error) {
	return s.decide(ctx, req, "reject_timesheet", audit.ActionTimesheetRejected, timesheet.Timesheet.Reject)
}

func (s *TimesheetService) decide(
	ctx context.Context,
	req *DecideTimesheetRequest,
	name, action string,
	apply func(timesheet.Timesheet, uint, string, time.Time) timesheet.Timesheet,
) (timesheet.Timesheet, error) {
	return execution.Run(ctx, s.exec, execution.Operation[timesheetTarget, timesheet.Timesheet]{
		Name:        name,
		Request:     req,
		Requirement: authz.AtLeast(authz.RoleHR).OrManager(),
		Resolve: func(ctx context.Context, _ execution.Call) (timesheetTarget, error) {
			e, err := s.employees.GetByID(ctx, req.EmployeeID)
			if err != nil {
				return timesheetTarget{}, err
			}
			t, err := s.repo.GetByID(ctx, req.TimesheetID)
			if err != nil {
				return timesheetTarget{}, err
			}
			if t.EmployeeID != e.ID() {
				return timesheetTarget{}, serrors.NotFound("timesheet")
			}
			return timesheetTarget{employee: e, timesheet: t}, nil
		},
		Target: func(st timesheetTarget) uint { return st.employee.ID() },
		Mutate: func(ctx context.Context, call execution.Call, st timesheetTarget) (timesheet.Timesheet, error) {
			decided := apply(st.timesheet, call.Actor.ID, call.Actor.Name, call.Now)
			if err := s.repo.Update(ctx, decided); err != nil {
				return timesheet.Timesheet{}, err
			}
			return decided, nil
		},
		Audit: func(call execution.Call, _ timesheetTarget, t timesheet.Timesheet) []audit.Entry {
			return timesheetEntries(call, action, t)
		},
		Refresh: execution.Reload(s.repo.GetByID, func(t timesheet.Timesheet) uint { return t.ID }),
	})
}

// CreateOrGetTimesheet returns the employee's timesheet for the week of
// req.Date, opening one when the week has none yet.
func (s *TimesheetService) CreateOrGetTimesheet(ctx context.Context, req *CreateTimesheetRequest) (timesheet.Timesheet, error) {
	var created bool
	return execution.Run(ctx, s.exec, execution.Operation[timesheetTarget, timesheet.Timesheet]{
		Name:        "create_or_get_timesheet",
		Request:     req,
		Requirement: authz.AtLeast(authz.RoleHR).OrManager().OrSelf(),
		Resolve: func(ctx context.Context, _ execution.Call) (timesheetTarget, error) {
			e, err := s.employees.GetByID(ctx, req.EmployeeID)
			if err != nil {
				return timesheetTarget{}, err
			}
			return timesheetTarget{employee: e}, nil
		},
		Target: func(st timesheetTarget) uint { return st.employee.ID() },
		Mutate: func(ctx context.Context, call execution.Call, st timesheetTarget) (timesheet.Timesheet, error) {
			fresh := timesheet.ForWeek(call.Scope.CompanyID, st.employee.ID(), req.Date)
			existing, err := s.repo.FindForWeek(ctx, st.employee.ID(), fresh.StartedAt)
			if err != nil {
				return timesheet.Timesheet{}, err
			}
			if existing.ID != 0 {
				return existing, nil
			}
			created = true
			return s.repo.Create(ctx, fresh)
		},
		Audit: func(call execution.Call, _ timesheetTarget, t timesheet.Timesheet) []audit.Entry {
			if !created {
				return nil
			}
			return timesheetEntries(call, audit.ActionTimesheetCreated, t)
		},
		Refresh: execution.Reload(s.repo.GetByID, func(t timesheet.Timesheet) uint { return t.ID }),
	})
}

func timesheetEntries(call execution.Call, action string, t timesheet.Timesheet) []audit.Entry {
	start, end := t.Week()
	own := audit.TimesheetEvent{Tag: action, TimesheetID: t.ID, StartedAt: start, EndedAt: end}
	company := own
	company.EmployeeID = t.EmployeeID
	return []audit.Entry{
		audit.ForCompany(call.Scope.CompanyID, call.Author(), call.Now, company),
		audit.ForEmployee(call.Scope.CompanyID, t.EmployeeID, call.Author(), call.Now, own),
	}
}
