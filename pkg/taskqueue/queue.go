package taskqueue

import (
	"context"
	"time"
)

// Queue is a FIFO of opaque payloads partitioned by topic. A consumer
// claims the oldest payload, which stays in flight until it is acked or
// released, so a crash between claim and ack loses nothing.
type Queue interface {
	Push(ctx context.Context, topic string, payload []byte) error
	// Claim waits up to timeout for the oldest payload of topic and moves it
	// in flight. A timeout <= 0 does not wait. ok is false when nothing
	// arrived in time.
	Claim(ctx context.Context, topic string, timeout time.Duration) (payload []byte, ok bool, err error)
	// Ack forgets a claimed payload.
	Ack(ctx context.Context, topic string, payload []byte) error
	// Release puts a claimed payload back at the front of topic.
	Release(ctx context.Context, topic string, payload []byte) error
	// Recover moves payloads left in flight by an earlier consumer back to
	// the front of topic, keeping their order.
	Recover(ctx context.Context, topic string) (int64, error)
	Len(ctx context.Context, topic string) (int64, error)
}

// Handler consumes one payload. Returning an error schedules a retry
// unless the error is wrapped with Permanent.
type Handler func(ctx context.Context, payload []byte) error
