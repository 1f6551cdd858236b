package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/iota-uz/officelife/modules/dashboard/presentation/viewmodels"
	"github.com/iota-uz/officelife/modules/dashboard/services"
)

func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Team and employee widgets",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "birthdays key=value...",
			Short: "Team birthdays within the next month",
			RunE: operation(func(a *app) func(context.Context, *services.TeamRequest) ([]viewmodels.Birthday, error) {
				return a.dashboard.PeopleService.Birthdays
			}),
		},
		&cobra.Command{
			Use:   "anniversaries key=value...",
			Short: "Hiring anniversaries within the next seven days",
			RunE: operation(func(a *app) func(context.Context, *services.TeamRequest) ([]viewmodels.Anniversary, error) {
				return a.dashboard.PeopleService.UpcomingHiredDateAnniversaries
			}),
		},
		&cobra.Command{
			Use:   "new-hires key=value...",
			Short: "Members starting between today and the end of next week",
			RunE: operation(func(a *app) func(context.Context, *services.TeamRequest) ([]viewmodels.NewHire, error) {
				return a.dashboard.PeopleService.UpcomingNewHires
			}),
		},
		&cobra.Command{
			Use:   "new-hires-next-week key=value...",
			Short: "Members starting next week",
			RunE: operation(func(a *app) func(context.Context, *services.TeamRequest) ([]viewmodels.NewHire, error) {
				return a.dashboard.PeopleService.NewHiresNextWeek
			}),
		},
		&cobra.Command{
			Use:   "morale key=value...",
			Short: "Team morale over yesterday, last week and last month",
			RunE: operation(func(a *app) func(context.Context, *services.TeamRequest) (viewmodels.TeamMorale, error) {
				return a.dashboard.MoraleService.TeamMorale
			}),
		},
		&cobra.Command{
			Use:   "employee-morale key=value...",
			Short: "An employee's daily ratings over a year",
			RunE: operation(func(a *app) func(context.Context, *services.EmployeeYearRequest) ([]viewmodels.MoraleEntry, error) {
				return a.dashboard.MoraleService.EmployeeMorale
			}),
		},
		&cobra.Command{
			Use:   "worklog-calendar key=value...",
			Short: "Work log count per day of a year",
			RunE: operation(func(a *app) func(context.Context, *services.EmployeeYearRequest) ([]viewmodels.CalendarDay, error) {
				return a.dashboard.WorklogService.YearlyCalendar
			}),
		},
		&cobra.Command{
			Use:   "worklog-months key=value...",
			Short: "Work log count per month of a year",
			RunE: operation(func(a *app) func(context.Context, *services.EmployeeYearRequest) ([]viewmodels.MonthEntries, error) {
				return a.dashboard.WorklogService.MonthsWithEntries
			}),
		},
		&cobra.Command{
			Use:   "worklog-years key=value...",
			Short: "Years with at least one work log",
			RunE: operation(func(a *app) func(context.Context, *services.EmployeeRequest) ([]viewmodels.Year, error) {
				return a.dashboard.WorklogService.YearsWithEntries
			}),
		},
	)
	return cmd
}
