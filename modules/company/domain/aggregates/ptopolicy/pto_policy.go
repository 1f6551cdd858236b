package ptopolicy

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/officelife/pkg/calendar"
	"github.com/iota-uz/officelife/pkg/constants"
	"github.com/iota-uz/officelife/pkg/serrors"
)

// Day is one materialized calendar row of a policy.
type Day struct {
	ID       uint
	Date     time.Time
	IsWorked bool
}

func (d Day) DayOfWeek() int { return int(d.Date.Weekday()) }
func (d Day) DayOfYear() int { return d.Date.YearDay() }

// Policy holds the yearly allowances of a company. Its calendar is
// generated once at creation and only changes through Toggle.
type Policy struct {
	ID              uint
	CompanyID       uuid.UUID
	Year            int
	TotalWorkedDays int
	DefaultHolidays int
	DefaultSickDays int
	DefaultPTODays  int
	Days            []Day
	CreatedAt       time.Time
}

func New(companyID uuid.UUID, year, holidays, sickDays, ptoDays int, at time.Time) Policy {
	generated := calendar.GenerateYear(year, nil)
	days := make([]Day, len(generated))
	for i, d := range generated {
		days[i] = Day{Date: d.Date, IsWorked: d.IsWorked}
	}
	return Policy{
		CompanyID:       companyID,
		Year:            year,
		TotalWorkedDays: calendar.WorkedDays(generated),
		DefaultHolidays: holidays,
		DefaultSickDays: sickDays,
		DefaultPTODays:  ptoDays,
		Days:            days,
		CreatedAt:       at,
	}
}

// Toggle flips the worked flag of date and recomputes the total.
func (p Policy) Toggle(date time.Time) (Policy, Day, error) {
	key := date.Format(constants.DateFormat)
	days := make([]Day, len(p.Days))
	copy(days, p.Days)
	for i, d := range days {
		if d.Date.Format(constants.DateFormat) != key {
			continue
		}
		days[i].IsWorked = !d.IsWorked
		p.Days = days
		p.TotalWorkedDays = countWorked(days)
		return p, days[i], nil
	}
	return p, Day{}, serrors.NotFound("calendar day")
}

func countWorked(days []Day) int {
	n := 0
	for _, d := range days {
		if d.IsWorked {
			n++
		}
	}
	return n
}

type Repository interface {
	ExistsForYear(ctx context.Context, year int) (bool, error)
	Create(ctx context.Context, p Policy) (Policy, error)
	GetByID(ctx context.Context, id uint) (Policy, error)
	List(ctx context.Context) ([]Policy, error)
	// UpdateDay persists one toggled day and the policy total.
	UpdateDay(ctx context.Context, p Policy, day Day) error
}
