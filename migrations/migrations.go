// Package migrations embeds the goose schema of every module.
package migrations

import (
	"context"
	"embed"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/officelife/pkg/logging"
)

//go:embed *.sql
var Files embed.FS

// Migrator applies the embedded schema with goose.
type Migrator struct {
	provider *goose.Provider
	logger   *logrus.Entry
}

// NewMigrator reads migrations from fsys, or from the embedded files when
// fsys is nil.
func NewMigrator(pool *pgxpool.Pool, fsys fs.FS, logger *logrus.Entry) (*Migrator, error) {
	if fsys == nil {
		fsys = Files
	}
	db := stdlib.OpenDB(*pool.Config().ConnConfig)
	p, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create migration provider")
	}
	return &Migrator{provider: p, logger: logging.Component(logger, "migrations")}, nil
}

func (m *Migrator) Up(ctx context.Context) error {
	results, err := m.provider.Up(ctx)
	for _, r := range results {
		m.log(r)
	}
	return errors.Wrap(err, "migrate up")
}

// Down rolls back the most recent migration.
func (m *Migrator) Down(ctx context.Context) error {
	r, err := m.provider.Down(ctx)
	if r != nil {
		m.log(r)
	}
	return errors.Wrap(err, "migrate down")
}

type Status struct {
	Version int64
	Path    string
	Applied bool
}

func (m *Migrator) Status(ctx context.Context) ([]Status, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "migrate status")
	}
	out := make([]Status, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, Status{
			Version: s.Source.Version,
			Path:    s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}

func (m *Migrator) Close() error {
	return m.provider.Close()
}

func (m *Migrator) log(r *goose.MigrationResult) {
	entry := m.logger.WithFields(logrus.Fields{
		"version":   r.Source.Version,
		"direction": r.Direction,
		"duration":  r.Duration,
	})
	if r.Error != nil {
		entry.WithError(r.Error).Error("migration failed")
		return
	}
	entry.Info("migration applied")
}
