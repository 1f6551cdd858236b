package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/iota-uz/officelife/modules/logging/presentation/viewmodels"
	"github.com/iota-uz/officelife/modules/logging/services"
)

func newLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Audit trails, newest first",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "company key=value...",
			Short: "Page through the company trail",
			RunE: operation(func(a *app) func(context.Context, *services.ListCompanyLogsRequest) (viewmodels.LogsPage, error) {
				return a.logs.LogsService.ListCompanyLogs
			}),
		},
		&cobra.Command{
			Use:   "employee key=value...",
			Short: "Page through an employee's trail",
			RunE: operation(func(a *app) func(context.Context, *services.ListEmployeeLogsRequest) (viewmodels.LogsPage, error) {
				return a.logs.LogsService.ListEmployeeLogs
			}),
		},
	)
	return cmd
}
