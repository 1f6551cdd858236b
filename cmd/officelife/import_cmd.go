package main

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/iota-uz/officelife/modules/hrm/domain/entities/importjob"
	"github.com/iota-uz/officelife/modules/hrm/services"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Bulk employee imports",
	}
	cmd.AddCommand(
		newImportStageCmd(),
		&cobra.Command{
			Use:   "run key=value...",
			Short: "Import the staged rows of a pending job",
			RunE: operation(func(a *app) func(context.Context, *services.ImportRequest) (importjob.ImportJob, error) {
				return a.hrm.ImportService.ImportEmployeesFromTemporaryTable
			}),
		},
	)
	return cmd
}

func newImportStageCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "stage --file employees.xlsx key=value...",
		Short: "Upload workbook rows into a new pending job",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := decode[services.StageRequest](args)
			if err != nil {
				return report(cmd.ErrOrStderr(), err)
			}
			f, err := os.Open(path)
			if err != nil {
				return errors.Wrap(err, "failed to open workbook")
			}
			defer f.Close()
			if req.Rows, err = readRows(f); err != nil {
				return err
			}
			return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
				job, err := a.hrm.ImportService.Stage(ctx, req)
				if err != nil {
					return report(cmd.ErrOrStderr(), err)
				}
				return printJSON(cmd.OutOrStdout(), job)
			})
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "xlsx workbook with first_name, last_name and email columns")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
