package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/iota-uz/officelife/modules/company/domain/aggregates/timesheet"
	"github.com/iota-uz/officelife/modules/company/services"
)

func newTimesheetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timesheet",
		Short: "Weekly timesheets",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "open key=value...",
			Short: "Return the timesheet of the week containing date, creating it if needed",
			RunE: operation(func(a *app) func(context.Context, *services.CreateTimesheetRequest) (timesheet.Timesheet, error) {
				return a.company.TimesheetService.CreateOrGetTimesheet
			}),
		},
		&cobra.Command{
			Use:   "approve key=value...",
			Short: "Approve a submitted timesheet",
			RunE: operation(func(a *app) func(context.Context, *services.DecideTimesheetRequest) (timesheet.Timesheet, error) {
				return a.company.TimesheetService.ApproveTimesheet
			}),
		},
		&cobra.Command{
			Use:   "reject key=value...",
			Short: "Reject a submitted timesheet",
			RunE: operation(func(a *app) func(context.Context, *services.DecideTimesheetRequest) (timesheet.Timesheet, error) {
				return a.company.TimesheetService.RejectTimesheet
			}),
		},
	)
	return cmd
}
