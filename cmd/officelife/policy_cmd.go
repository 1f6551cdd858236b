package main

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/iota-uz/officelife/modules/company/domain/aggregates/ptopolicy"
	"github.com/iota-uz/officelife/modules/company/services"
	"github.com/iota-uz/officelife/pkg/composables"
	"github.com/iota-uz/officelife/pkg/execution"
	"github.com/iota-uz/officelife/pkg/validation"
)

type exportPolicyRequest struct {
	execution.Base
	PolicyID uint `form:"company_pto_policy_id" validate:"required"`
}

func newPolicyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Company PTO policies and their calendars",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "create key=value...",
			Short: "Create the PTO policy of a year",
			RunE: operation(func(a *app) func(context.Context, *services.CreatePTOPolicyRequest) (policyView, error) {
				return mapped(a.company.PTOPolicyService.CreateCompanyPTOPolicy, newPolicyView)
			}),
		},
		&cobra.Command{
			Use:   "toggle key=value...",
			Short: "Flip a calendar day between worked and off",
			RunE: operation(func(a *app) func(context.Context, *services.ToggleCalendarDayRequest) (policyView, error) {
				return mapped(a.company.PTOPolicyService.ToggleCalendarDay, newPolicyView)
			}),
		},
		newPolicyExportCmd(),
	)
	return cmd
}

func newPolicyExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export key=value...",
		Short: "Write a policy calendar as an xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := decode[exportPolicyRequest](args)
			if err != nil {
				return report(cmd.ErrOrStderr(), err)
			}
			if err := validation.Struct(req); err != nil {
				return report(cmd.ErrOrStderr(), err)
			}
			return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
				ctx = composables.WithCompanyID(ctx, req.CompanyID)
				if _, err := a.exec.Admit(ctx, req.Scope()); err != nil {
					return report(cmd.ErrOrStderr(), err)
				}
				var p ptopolicy.Policy
				if err := a.exec.Tx().InTx(ctx, func(txCtx context.Context) error {
					p, err = a.company.PTOPolicyService.GetByID(txCtx, req.PolicyID)
					return err
				}); err != nil {
					return report(cmd.ErrOrStderr(), err)
				}

				f, err := os.Create(out)
				if err != nil {
					return errors.Wrap(err, "failed to create export file")
				}
				defer f.Close()
				return a.company.CalendarExporter.Export(p, f)
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "calendar.xlsx", "output file")
	return cmd
}
