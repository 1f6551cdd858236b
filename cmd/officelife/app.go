package main

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/officelife/modules/company"
	"github.com/iota-uz/officelife/modules/dashboard"
	"github.com/iota-uz/officelife/modules/hrm"
	auditlogs "github.com/iota-uz/officelife/modules/logging"
	"github.com/iota-uz/officelife/pkg/audit"
	"github.com/iota-uz/officelife/pkg/authz"
	"github.com/iota-uz/officelife/pkg/composables"
	"github.com/iota-uz/officelife/pkg/configuration"
	"github.com/iota-uz/officelife/pkg/execution"
	"github.com/iota-uz/officelife/pkg/taskqueue"
)

// app is the composition root shared by every command.
type app struct {
	conf       *configuration.Configuration
	logger     *logrus.Entry
	pool       *pgxpool.Pool
	queue      taskqueue.Queue
	closeQueue func() error
	audit      *audit.Dispatcher
	exec       *execution.Executor

	hrm       *hrm.Module
	company   *company.Module
	logs      *auditlogs.Module
	dashboard *dashboard.Module
}

func connectDB(ctx context.Context, conf *configuration.Configuration) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}
	return pool, nil
}

func newApp(ctx context.Context) (*app, error) {
	conf := configuration.Use()
	logger := logrus.NewEntry(conf.Logger())

	pool, err := connectDB(ctx, conf)
	if err != nil {
		return nil, err
	}
	queue, closeQueue, err := taskqueue.Open(ctx, conf)
	if err != nil {
		pool.Close()
		return nil, err
	}
	authzSvc, err := authz.NewService(authz.DefaultConfig())
	if err != nil {
		pool.Close()
		_ = closeQueue()
		return nil, err
	}

	a := &app{
		conf:       conf,
		logger:     logger,
		pool:       pool,
		queue:      queue,
		closeQueue: closeQueue,
		hrm:        hrm.NewPostgresModule(),
		company:    company.NewPostgresModule(),
		logs:       auditlogs.NewPostgresModule(),
		dashboard:  dashboard.NewPostgresModule(),
	}
	a.audit = audit.NewDispatcher(queue, audit.DispatcherOptions{
		PushTimeout: conf.Audit.PushTimeout,
		BufferSize:  conf.Audit.BufferSize,
		Logger:      logger,
	})
	a.exec = execution.NewExecutor(execution.Deps{
		Authz:     authzSvc,
		Actors:    a.hrm.Actors,
		Relations: a.hrm.Actors,
		Tx:        execution.PgTxRunner{},
		Audit:     a.audit,
		Logger:    logger,
	})
	a.hrm.Register(a.exec, logger)
	a.company.Register(a.exec, a.hrm.Employees)
	a.logs.Register(a.exec, a.hrm.Employees, conf.Location())
	a.dashboard.Register(a.exec, a.hrm.Employees, conf.Location())
	return a, nil
}

// context carries the pool and logger every repository expects.
func (a *app) context(ctx context.Context) context.Context {
	ctx = composables.WithPool(ctx, a.pool)
	return composables.WithLogger(ctx, a.logger)
}

func (a *app) worker() (*taskqueue.Worker, error) {
	opts := taskqueue.OptionsFromConfig(a.conf)
	opts.Logger = a.logger.WithField("component", "taskqueue")
	w, err := taskqueue.NewWorker(a.queue, opts)
	if err != nil {
		return nil, err
	}
	a.logs.Consume(w)
	return w, nil
}

// close flushes buffered audit entries into the queue and, for the
// in-process queue, into storage before releasing resources. A redis-backed
// queue is left for the worker command.
func (a *app) close(ctx context.Context) {
	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.conf.Audit.PushTimeout+time.Second)
	defer cancel()
	if err := a.audit.Close(flushCtx); err != nil {
		a.logger.WithError(err).Error("failed to flush audit buffer")
	}
	if a.conf.Audit.QueueBackend == "memory" {
		if w, err := a.worker(); err == nil {
			if err := w.Drain(a.context(ctx)); err != nil {
				a.logger.WithError(err).Error("failed to flush audit entries")
			}
		}
	}
	if err := a.closeQueue(); err != nil {
		a.logger.WithError(err).Warn("failed to close queue")
	}
	a.pool.Close()
	a.conf.Unload()
}

// withApp builds the app around fn and always tears it down.
func withApp(ctx context.Context, fn func(ctx context.Context, a *app) error) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)
	return fn(a.context(ctx), a)
}
