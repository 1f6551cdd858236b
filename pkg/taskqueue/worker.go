package taskqueue

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Worker runs one consumer per registered topic. Each topic is handled
// strictly in order: a failing payload is retried before the next is popped.
type Worker struct {
	queue    Queue
	handlers map[string]Handler
	opts     WorkerOptions

	randMu sync.Mutex
	m      *metrics
}

func NewWorker(queue Queue, opts WorkerOptions) (*Worker, error) {
	if queue == nil {
		return nil, invalidConfig("queue is required")
	}
	if opts.MaxAttempts < 0 {
		return nil, invalidConfig("max attempts must not be negative")
	}
	opts.setDefaults()
	return &Worker{
		queue:    queue,
		handlers: make(map[string]Handler),
		opts:     opts,
		m:        getMetrics(),
	}, nil
}

// Handle registers h for topic, replacing any previous handler.
func (w *Worker) Handle(topic string, h Handler) {
	w.handlers[topic] = h
}

func (w *Worker) topics() []string {
	out := make([]string, 0, len(w.handlers))
	for t := range w.handlers {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Run consumes until ctx is cancelled. Cancellation is a clean exit.
func (w *Worker) Run(ctx context.Context) error {
	if len(w.handlers) == 0 {
		return invalidConfig("no handlers registered")
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, topic := range w.topics() {
		topic := topic
		h := w.handlers[topic]
		g.Go(func() error {
			return w.consume(gctx, topic, h)
		})
	}
	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Drain handles everything currently queued, including payloads an earlier
// consumer left in flight, and returns without waiting for new payloads.
func (w *Worker) Drain(ctx context.Context) error {
	for _, topic := range w.topics() {
		h := w.handlers[topic]
		if _, err := w.queue.Recover(ctx, topic); err != nil {
			return err
		}
		for {
			payload, ok, err := w.queue.Claim(ctx, topic, 0)
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			w.settle(ctx, topic, payload, w.deliver(ctx, topic, h, payload))
		}
		w.observeDepth(ctx, topic)
	}
	return ctx.Err()
}

func (w *Worker) consume(ctx context.Context, topic string, h Handler) error {
	log := w.opts.Logger.WithField("topic", topic)
	if n, err := w.queue.Recover(ctx, topic); err != nil {
		log.WithError(err).Warn("taskqueue: recover failed")
	} else if n > 0 {
		log.WithField("recovered", n).Info("taskqueue: requeued in-flight payloads")
	}
	log.Info("taskqueue: consumer started")
	for {
		if ctx.Err() != nil {
			return nil
		}
		payload, ok, err := w.queue.Claim(ctx, topic, w.opts.PollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.WithError(err).Warn("taskqueue: claim failed")
			if !sleepCtx(ctx, w.opts.PollTimeout) {
				return nil
			}
			continue
		}
		if !ok {
			w.observeDepth(ctx, topic)
			continue
		}
		w.settle(ctx, topic, payload, w.deliver(ctx, topic, h, payload))
	}
}

// deliver runs h until it succeeds or gives up. It reports false when
// shutdown interrupted a retry and the payload is still owed.
func (w *Worker) deliver(ctx context.Context, topic string, h Handler, payload []byte) bool {
	for attempt := 1; ; attempt++ {
		start := time.Now()
		err := h(ctx, payload)
		latency := time.Since(start)

		if err == nil {
			w.record(topic, "success", latency)
			return true
		}
		w.record(topic, "error", latency)

		log := w.opts.Logger.WithFields(logFields(topic, attempt)).
			WithField("error", errorText(err, w.opts.LastErrorMaxLen))

		if isPermanent(err) || attempt >= w.opts.MaxAttempts {
			w.m.deadTotal.WithLabelValues(topic).Inc()
			log.Error("taskqueue: payload dropped")
			return true
		}

		wait := w.retryDelay(attempt)
		log.WithField("retry_in", wait.String()).Warn("taskqueue: handler failed")
		if !sleepCtx(ctx, wait) {
			return false
		}
	}
}

// settle acks a finished payload or releases an unfinished one to the front
// of its topic. It outlives a cancelled ctx.
func (w *Worker) settle(ctx context.Context, topic string, payload []byte, done bool) {
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.opts.PushTimeout)
	defer cancel()
	op, name := w.queue.Ack, "ack"
	if !done {
		op, name = w.queue.Release, "release"
	}
	if err := op(sctx, topic, payload); err != nil {
		w.opts.Logger.WithField("topic", topic).WithError(err).Error("taskqueue: " + name + " failed")
	}
}

// retryDelay is the wait after a failed attempt: one second doubled per
// attempt, capped at MaxBackoff, plus up to JitterMax.
func (w *Worker) retryDelay(attempt int) time.Duration {
	return w.opts.backoff(attempt) + w.jitter()
}

func (w *Worker) jitter() time.Duration {
	if w.opts.JitterMax <= 0 {
		return 0
	}
	w.randMu.Lock()
	defer w.randMu.Unlock()
	return time.Duration(w.opts.Rand.Int63n(int64(w.opts.JitterMax) + 1)) //nolint:gosec
}

func (w *Worker) record(topic, result string, latency time.Duration) {
	w.m.handleTotal.WithLabelValues(topic, result).Inc()
	w.m.handleLatency.WithLabelValues(topic, result).Observe(latency.Seconds())
}

func (w *Worker) observeDepth(ctx context.Context, topic string) {
	n, err := w.queue.Len(ctx, topic)
	if err != nil {
		return
	}
	w.m.depth.WithLabelValues(topic).Set(float64(n))
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
