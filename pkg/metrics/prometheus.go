package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/officelife/pkg/configuration"
	"github.com/iota-uz/officelife/pkg/logging"
)

const defaultPath = "/debug/prometheus"

// NewRouter exposes the default registry at path.
func NewRouter(path string) *mux.Router {
	if path == "" {
		path = defaultPath
	}
	r := mux.NewRouter()
	r.Handle(path, promhttp.Handler()).Methods(http.MethodGet)
	return r
}

// Serve listens on opts.Addr until ctx is cancelled. It returns
// immediately when metrics are disabled.
func Serve(ctx context.Context, opts configuration.PrometheusOptions, logger *logrus.Entry) error {
	if !opts.Enabled {
		return nil
	}
	log := logging.Component(logger, "metrics")
	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           NewRouter(opts.Path),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", opts.Addr).Info("metrics: listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
