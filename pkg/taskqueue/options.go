package taskqueue

import (
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/officelife/pkg/configuration"
)

type WorkerOptions struct {
	MaxAttempts     int
	MaxBackoff      time.Duration
	JitterMax       time.Duration
	PollTimeout     time.Duration
	PushTimeout     time.Duration
	LastErrorMaxLen int

	Logger *logrus.Entry

	Rand *rand.Rand
}

// OptionsFromConfig maps the AUDIT_* settings onto worker options.
func OptionsFromConfig(cfg *configuration.Configuration) WorkerOptions {
	return WorkerOptions{
		MaxAttempts:     cfg.Audit.MaxAttempts,
		MaxBackoff:      cfg.Audit.MaxBackoff,
		JitterMax:       cfg.Audit.JitterMax,
		PollTimeout:     cfg.Audit.PollTimeout,
		PushTimeout:     cfg.Audit.PushTimeout,
		LastErrorMaxLen: cfg.Audit.LastErrMaxLen,
	}
}

func (o *WorkerOptions) setDefaults() {
	if o.MaxAttempts == 0 {
		o.MaxAttempts = 25
	}
	if o.MaxBackoff == 0 {
		o.MaxBackoff = 60 * time.Second
	}
	if o.JitterMax == 0 {
		o.JitterMax = 200 * time.Millisecond
	}
	if o.PollTimeout == 0 {
		o.PollTimeout = 1 * time.Second
	}
	if o.PushTimeout == 0 {
		o.PushTimeout = 2 * time.Second
	}
	if o.LastErrorMaxLen == 0 {
		o.LastErrorMaxLen = 2048
	}
	if o.Logger == nil {
		o.Logger = logrusNop()
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec
	}
}

func (o WorkerOptions) backoff(attempt int) time.Duration {
	switch {
	case attempt <= 0:
		return 0
	case attempt > 30:
		return o.MaxBackoff
	}
	d := time.Second << (attempt - 1)
	if d > o.MaxBackoff {
		return o.MaxBackoff
	}
	return d
}
