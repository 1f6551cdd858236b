package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/iota-uz/officelife/pkg/metrics"
)

func newWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Persist queued audit entries until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return withApp(ctx, func(ctx context.Context, a *app) error {
				w, err := a.worker()
				if err != nil {
					return err
				}
				a.logger.WithField("backend", a.conf.Audit.QueueBackend).Info("worker: started")

				g, gctx := errgroup.WithContext(ctx)
				g.Go(func() error { return w.Run(gctx) })
				g.Go(func() error { return metrics.Serve(gctx, a.conf.Prometheus, a.logger) })
				return g.Wait()
			})
		},
	}
}
