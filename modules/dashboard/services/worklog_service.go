package services

import (
	"context"

	"github.com/iota-uz/officelife/modules/dashboard/domain/entities/worklog"
	"github.com/iota-uz/officelife/modules/dashboard/presentation/viewmodels"
	"github.com/iota-uz/officelife/pkg/calendar"
	"github.com/iota-uz/officelife/pkg/constants"
	"github.com/iota-uz/officelife/pkg/execution"
)

type WorklogService struct {
	exec      *execution.Executor
	repo      worklog.Repository
	employees EmployeeLister
}

func NewWorklogService(exec *execution.Executor, repo worklog.Repository, employees EmployeeLister) *WorklogService {
	return &WorklogService{exec: exec, repo: repo, employees: employees}
}

func (s *WorklogService) worklogs(ctx context.Context, req execution.Request, employeeID uint) ([]worklog.Worklog, error) {
	ctx, err := admit(ctx, s.exec, req)
	if err != nil {
		return nil, err
	}
	var logs []worklog.Worklog
	err = s.exec.Tx().InTx(ctx, func(txCtx context.Context) error {
		e, err := s.employees.GetByID(txCtx, employeeID)
		if err != nil {
			return err
		}
		logs, err = s.repo.ListForEmployee(txCtx, e.ID())
		return err
	})
	return logs, err
}

// YearlyCalendar returns one entry per day of the year, starting January 1.
func (s *WorklogService) YearlyCalendar(ctx context.Context, req *EmployeeYearRequest) ([]viewmodels.CalendarDay, error) {
	logs, err := s.worklogs(ctx, req, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	buckets := calendar.DailyBuckets(req.Year, worklog.Dates(logs))
	out := make([]viewmodels.CalendarDay, len(buckets))
	for i, b := range buckets {
		out[i] = viewmodels.CalendarDay{Date: b.Date.Format(constants.DateFormat), Count: b.Count}
	}
	return out, nil
}

func (s *WorklogService) MonthsWithEntries(ctx context.Context, req *EmployeeYearRequest) ([]viewmodels.MonthEntries, error) {
	logs, err := s.worklogs(ctx, req, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	buckets := calendar.MonthlyBuckets(req.Year, worklog.Dates(logs))
	out := make([]viewmodels.MonthEntries, len(buckets))
	for i, b := range buckets {
		out[i] = viewmodels.MonthEntries{Month: int(b.Month), Occurences: b.Count, Translation: b.Month.String()}
	}
	return out, nil
}

func (s *WorklogService) YearsWithEntries(ctx context.Context, req *EmployeeRequest) ([]viewmodels.Year, error) {
	logs, err := s.worklogs(ctx, req, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	years := calendar.DistinctYears(worklog.Dates(logs))
	out := make([]viewmodels.Year, len(years))
	for i, y := range years {
		out[i] = viewmodels.Year{Number: y}
	}
	return out, nil
}
