package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "officelife",
		Short: "Company HR operations: policies, timesheets, imports and audit trails",
		Long: "Operations take key=value arguments, e.g.\n" +
			"  officelife policy create company_id=<uuid> author_id=1 year=2018 " +
			"default_amount_of_allowed_holidays=25 default_amount_of_sick_days=5 default_amount_of_pto_days=10",
		SilenceUsage: true,
	}
	cmd.AddCommand(
		newMigrateCmd(),
		newWorkerCmd(),
		newPolicyCmd(),
		newTimesheetCmd(),
		newEmployeeCmd(),
		newImportCmd(),
		newProjectCmd(),
		newNewsCmd(),
		newAgendaCmd(),
		newLogsCmd(),
		newDashboardCmd(),
	)
	return cmd
}
