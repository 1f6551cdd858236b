package services

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/iota-uz/officelife/modules/dashboard/presentation/viewmodels"
	"github.com/iota-uz/officelife/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/officelife/pkg/calendar"
	"github.com/iota-uz/officelife/pkg/constants"
	"github.com/iota-uz/officelife/pkg/execution"
)

// PeopleService answers the "who is celebrating / arriving" widgets of a
// team.
type PeopleService struct {
	exec      *execution.Executor
	employees EmployeeLister
	engine    *calendar.Engine
}

func NewPeopleService(exec *execution.Executor, employees EmployeeLister, loc *time.Location) *PeopleService {
	return &PeopleService{
		exec:      exec,
		employees: employees,
		engine:    calendar.NewEngine(exec.Clock(), loc),
	}
}

func (s *PeopleService) members(ctx context.Context, req *TeamRequest) ([]employee.Employee, error) {
	ctx, err := admit(ctx, s.exec, req)
	if err != nil {
		return nil, err
	}
	var out []employee.Employee
	err = s.exec.Tx().InTx(ctx, func(txCtx context.Context) error {
		out, err = s.employees.List(txCtx, &employee.FindParams{TeamID: req.TeamID})
		return err
	})
	return out, err
}

type dated[T any] struct {
	at   time.Time
	item T
}

func sortedItems[T any](in []dated[T]) []T {
	sort.SliceStable(in, func(i, j int) bool { return in[i].at.Before(in[j].at) })
	out := make([]T, len(in))
	for i, d := range in {
		out[i] = d.item
	}
	return out
}

// Birthdays lists members whose next birthday falls within a month from
// today, soonest first.
func (s *PeopleService) Birthdays(ctx context.Context, req *TeamRequest) ([]viewmodels.Birthday, error) {
	members, err := s.members(ctx, req)
	if err != nil {
		return nil, err
	}
	today := s.engine.Today()
	end := today.AddDate(0, 1, 0)

	var found []dated[viewmodels.Birthday]
	for _, e := range members {
		b := e.Birthdate()
		if b == nil {
			continue
		}
		next := s.engine.NextOccurrence(b.Month(), b.Day())
		if !next.Before(end) {
			continue
		}
		found = append(found, dated[viewmodels.Birthday]{at: next, item: viewmodels.Birthday{
			ID:        e.ID(),
			Name:      e.Name(),
			Birthdate: calendar.MonthDay(*b),
			SortKey:   next.Format(constants.DateFormat),
		}})
	}
	return sortedItems(found), nil
}

// UpcomingHiredDateAnniversaries lists members whose hiring anniversary
// falls within the next seven days.
func (s *PeopleService) UpcomingHiredDateAnniversaries(ctx context.Context, req *TeamRequest) ([]viewmodels.Anniversary, error) {
	members, err := s.members(ctx, req)
	if err != nil {
		return nil, err
	}
	end := s.engine.Today().AddDate(0, 0, 7)

	var found []dated[viewmodels.Anniversary]
	for _, e := range members {
		h := e.HiredAt()
		if h == nil {
			continue
		}
		next := s.engine.NextOccurrence(h.Month(), h.Day())
		age := next.Year() - h.Year()
		if age < 1 || next.After(end) {
			continue
		}
		found = append(found, dated[viewmodels.Anniversary]{at: next, item: viewmodels.Anniversary{
			ID:              e.ID(),
			Name:            e.Name(),
			AnniversaryDate: calendar.WeekdayMonthDay(next),
			AnniversaryAge:  strconv.Itoa(age),
		}})
	}
	return sortedItems(found), nil
}

// UpcomingNewHires lists members starting between today and the end of
// next week.
func (s *PeopleService) UpcomingNewHires(ctx context.Context, req *TeamRequest) ([]viewmodels.NewHire, error) {
	members, err := s.members(ctx, req)
	if err != nil {
		return nil, err
	}
	_, end := s.engine.NextWeek()
	return hiredBetween(members, s.engine.Today(), end, func(e employee.Employee, at time.Time) viewmodels.NewHire {
		return viewmodels.NewHire{
			ID:       e.ID(),
			Name:     e.Name(),
			HiredAt:  calendar.WeekdayMonthDay(at),
			Position: e.Position(),
		}
	}), nil
}

// NewHiresNextWeek lists members starting during next Monday to Sunday.
func (s *PeopleService) NewHiresNextWeek(ctx context.Context, req *TeamRequest) ([]viewmodels.NewHire, error) {
	members, err := s.members(ctx, req)
	if err != nil {
		return nil, err
	}
	start, end := s.engine.NextWeek()
	return hiredBetween(members, start, end, func(e employee.Employee, at time.Time) viewmodels.NewHire {
		label := "Starts on " + calendar.WeekdayMonthDay(at)
		if e.Position() != "" {
			label += " as " + e.Position()
		}
		return viewmodels.NewHire{ID: e.ID(), Name: e.Name(), HiredAt: label, Position: e.Position()}
	}), nil
}

func hiredBetween(
	members []employee.Employee,
	start, end time.Time,
	view func(employee.Employee, time.Time) viewmodels.NewHire,
) []viewmodels.NewHire {
	var found []dated[viewmodels.NewHire]
	for _, e := range members {
		h := e.HiredAt()
		if h == nil || h.Before(start) || h.After(end) {
			continue
		}
		found = append(found, dated[viewmodels.NewHire]{at: *h, item: view(e, *h)})
	}
	return sortedItems(found)
}
