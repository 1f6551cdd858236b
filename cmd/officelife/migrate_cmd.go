package main

import (
	"context"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iota-uz/officelife/migrations"
	"github.com/iota-uz/officelife/pkg/configuration"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect the database schema",
	}
	cmd.AddCommand(
		migrateCommand("up", "Apply all pending migrations", func(ctx context.Context, m *migrations.Migrator, cmd *cobra.Command) error {
			return m.Up(ctx)
		}),
		migrateCommand("down", "Roll back the latest migration", func(ctx context.Context, m *migrations.Migrator, cmd *cobra.Command) error {
			return m.Down(ctx)
		}),
		migrateCommand("status", "List migrations and whether they are applied", func(ctx context.Context, m *migrations.Migrator, cmd *cobra.Command) error {
			statuses, err := m.Status(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), statuses)
		}),
	)
	return cmd
}

func migrateCommand(use, short string, fn func(context.Context, *migrations.Migrator, *cobra.Command) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := configuration.Use()
			defer conf.Unload()

			pool, err := connectDB(cmd.Context(), conf)
			if err != nil {
				return err
			}
			defer pool.Close()

			m, err := migrations.NewMigrator(pool, migrationFS(conf.MigrationsDir), logrus.NewEntry(conf.Logger()))
			if err != nil {
				return err
			}
			defer m.Close()
			return fn(cmd.Context(), m, cmd)
		},
	}
}

// migrationFS returns dir when it exists, otherwise nil for the embedded
// files.
func migrationFS(dir string) fs.FS {
	if dir == "" {
		return nil
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil
	}
	return os.DirFS(dir)
}
