package services

import (
	"context"
	"time"

	"github.com/iota-uz/officelife/modules/dashboard/domain/entities/morale"
	"github.com/iota-uz/officelife/modules/dashboard/presentation/viewmodels"
	"github.com/iota-uz/officelife/pkg/calendar"
	"github.com/iota-uz/officelife/pkg/constants"
	"github.com/iota-uz/officelife/pkg/execution"
)

type MoraleService struct {
	exec      *execution.Executor
	repo      morale.Repository
	employees EmployeeLister
	engine    *calendar.Engine
}

func NewMoraleService(exec *execution.Executor, repo morale.Repository, employees EmployeeLister, loc *time.Location) *MoraleService {
	return &MoraleService{
		exec:      exec,
		repo:      repo,
		employees: employees,
		engine:    calendar.NewEngine(exec.Clock(), loc),
	}
}

// TeamMorale averages the team's daily morale over yesterday, the seven
// days before today and the previous calendar month.
func (s *MoraleService) TeamMorale(ctx context.Context, req *TeamRequest) (viewmodels.TeamMorale, error) {
	ctx, err := admit(ctx, s.exec, req)
	if err != nil {
		return viewmodels.TeamMorale{}, err
	}
	yesterday, week, month := s.engine.RollingWindows()
	since := month.Start
	if week.Start.Before(since) {
		since = week.Start
	}

	var history []morale.TeamHistory
	if err := s.exec.Tx().InTx(ctx, func(txCtx context.Context) error {
		history, err = s.repo.ListTeamHistory(txCtx, req.TeamID, since)
		return err
	}); err != nil {
		return viewmodels.TeamMorale{}, err
	}

	samples := make([]calendar.Sample, len(history))
	for i, h := range history {
		samples[i] = calendar.Sample{At: h.CreatedAt, Value: h.Average}
	}
	return viewmodels.TeamMorale{
		Yesterday: moraleWindow(calendar.Mean(samples, yesterday, morale.Scale)),
		LastWeek:  moraleWindow(calendar.Mean(samples, week, morale.Scale)),
		LastMonth: moraleWindow(calendar.Mean(samples, month, morale.Scale)),
	}, nil
}

func moraleWindow(a calendar.Aggregate) viewmodels.MoraleWindow {
	if a.Empty() {
		return viewmodels.MoraleWindow{Empty: true}
	}
	avg := a.AverageFloat()
	return viewmodels.MoraleWindow{
		Average: avg,
		Percent: a.Percent,
		Emotion: morale.Mood(avg),
	}
}

// EmployeeMorale lists how the employee rated each day of req.Year.
func (s *MoraleService) EmployeeMorale(ctx context.Context, req *EmployeeYearRequest) ([]viewmodels.MoraleEntry, error) {
	ctx, err := admit(ctx, s.exec, req)
	if err != nil {
		return nil, err
	}
	from := time.Date(req.Year, time.January, 1, 0, 0, 0, 0, s.engine.Location())
	var entries []morale.Morale
	if err := s.exec.Tx().InTx(ctx, func(txCtx context.Context) error {
		e, err := s.employees.GetByID(txCtx, req.EmployeeID)
		if err != nil {
			return err
		}
		entries, err = s.repo.ListForEmployee(txCtx, e.ID(), from, from.AddDate(1, 0, 0))
		return err
	}); err != nil {
		return nil, err
	}

	out := make([]viewmodels.MoraleEntry, 0, len(entries))
	for _, m := range entries {
		out = append(out, viewmodels.MoraleEntry{
			Date:    m.CreatedAt.In(s.engine.Location()).Format(constants.DateFormat),
			Emotion: int(m.Emotion),
			Emoji:   m.Emotion.Emoji(),
			Comment: m.Comment,
		})
	}
	return out, nil
}
