package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/iota-uz/officelife/modules/hrm/services"
)

func newEmployeeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Company employees",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add key=value...",
			Short: "Add an employee to the company",
			RunE: operation(func(a *app) func(context.Context, *services.AddEmployeeRequest) (employeeView, error) {
				return mapped(a.hrm.EmployeeService.AddEmployeeToCompany, newEmployeeView)
			}),
		},
		&cobra.Command{
			Use:   "twitter key=value...",
			Short: "Set or clear an employee's Twitter handle",
			RunE: operation(func(a *app) func(context.Context, *services.SetTwitterRequest) (employeeView, error) {
				return mapped(a.hrm.EmployeeService.SetTwitterHandle, newEmployeeView)
			}),
		},
	)
	return cmd
}
