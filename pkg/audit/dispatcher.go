package audit

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/officelife/pkg/logging"
	"github.com/iota-uz/officelife/pkg/taskqueue"
)

var ErrBufferFull = errors.New("audit: dispatch buffer full")

// Recorder accepts audit entries. It never fails the caller.
type Recorder interface {
	Record(ctx context.Context, entries ...Entry)
}

type DispatcherOptions struct {
	PushTimeout time.Duration
	// BufferSize bounds the entries waiting to be pushed. Entries recorded
	// while the buffer is full are dropped and logged.
	BufferSize int
	Logger     *logrus.Entry
}

type outbound struct {
	topic string
	body  []byte
	log   *logrus.Entry
}

// Dispatcher serializes entries onto the low-priority audit topics. Record
// only enqueues into an in-process buffer; a single goroutine pushes to
// the queue in submission order.
type Dispatcher struct {
	queue       taskqueue.Queue
	pushTimeout time.Duration
	logger      *logrus.Entry
	newID       func() uuid.UUID

	mu      sync.RWMutex
	closed  bool
	pending chan outbound
	done    chan struct{}
}

func NewDispatcher(queue taskqueue.Queue, opts DispatcherOptions) *Dispatcher {
	if opts.PushTimeout <= 0 {
		opts.PushTimeout = 2 * time.Second
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = 1024
	}
	d := &Dispatcher{
		queue:       queue,
		pushTimeout: opts.PushTimeout,
		logger:      logging.Component(opts.Logger, "audit"),
		newID:       uuid.New,
		pending:     make(chan outbound, opts.BufferSize),
		done:        make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for o := range d.pending {
		ctx, cancel := context.WithTimeout(context.Background(), d.pushTimeout)
		err := d.queue.Push(ctx, o.topic, o.body)
		cancel()
		taskqueue.RecordPush(o.topic, err)
		if err != nil {
			o.log.WithError(err).Warn("audit: failed to enqueue entry")
		}
	}
}

// Record validates and buffers each entry independently. It never blocks
// on the queue.
func (d *Dispatcher) Record(_ context.Context, entries ...Entry) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, e := range entries {
		if e.ID == uuid.Nil {
			e.ID = d.newID()
		}
		log := d.logger.WithFields(logrus.Fields{
			"action":     e.Action(),
			"stream":     e.Stream,
			"company_id": e.CompanyID,
		})

		rec, err := e.Record()
		if err != nil {
			log.WithError(err).Warn("audit: dropping invalid entry")
			continue
		}
		body, err := json.Marshal(rec)
		if err != nil {
			log.WithError(err).Warn("audit: failed to encode entry")
			continue
		}
		if d.closed {
			log.Warn("audit: dispatcher closed, dropping entry")
			continue
		}

		topic := rec.Stream.Topic()
		select {
		case d.pending <- outbound{topic: topic, body: body, log: log}:
		default:
			taskqueue.RecordPush(topic, ErrBufferFull)
			log.Warn("audit: buffer full, dropping entry")
		}
	}
}

// Close stops accepting entries and waits until the buffered ones were
// pushed or ctx is done.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.pending)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Store persists records. Append must ignore a record whose ID was
// already stored, since delivery is at-least-once.
type Store interface {
	Append(ctx context.Context, rec Record) error
}

// Handler decodes queued records into store. Malformed payloads are not
// retried.
func Handler(store Store) taskqueue.Handler {
	return func(ctx context.Context, payload []byte) error {
		var rec Record
		if err := json.Unmarshal(payload, &rec); err != nil {
			return taskqueue.Permanent(err)
		}
		if err := rec.Validate(); err != nil {
			return taskqueue.Permanent(err)
		}
		return store.Append(ctx, rec)
	}
}

// Register attaches the audit handlers for both streams to w.
func Register(w *taskqueue.Worker, store Store) {
	h := Handler(store)
	w.Handle(StreamCompany.Topic(), h)
	w.Handle(StreamEmployee.Topic(), h)
}
