package taskqueue

import (
	"bytes"
	"context"
	"sync"
	"time"
)

// MemoryQueue is an unbounded in-process Queue. Contents do not survive a
// restart.
type MemoryQueue struct {
	mu       sync.Mutex
	topics   map[string][][]byte
	inflight map[string][][]byte
	signals  map[string]chan struct{}
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{
		topics:   make(map[string][][]byte),
		inflight: make(map[string][][]byte),
		signals:  make(map[string]chan struct{}),
	}
}

func (q *MemoryQueue) signal(topic string) chan struct{} {
	ch, ok := q.signals[topic]
	if !ok {
		ch = make(chan struct{}, 1)
		q.signals[topic] = ch
	}
	return ch
}

func (q *MemoryQueue) notify(topic string) {
	select {
	case q.signal(topic) <- struct{}{}:
	default:
	}
}

func (q *MemoryQueue) Push(ctx context.Context, topic string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	buf := make([]byte, len(payload))
	copy(buf, payload)

	q.mu.Lock()
	defer q.mu.Unlock()
	q.topics[topic] = append(q.topics[topic], buf)
	q.notify(topic)
	return nil
}

func (q *MemoryQueue) tryClaim(topic string) ([]byte, bool, chan struct{}) {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.topics[topic]
	if len(items) == 0 {
		return nil, false, q.signal(topic)
	}
	head := items[0]
	items[0] = nil
	q.topics[topic] = items[1:]
	q.inflight[topic] = append(q.inflight[topic], head)
	return head, true, nil
}

func (q *MemoryQueue) Claim(ctx context.Context, topic string, timeout time.Duration) ([]byte, bool, error) {
	payload, ok, ch := q.tryClaim(topic)
	if ok || timeout <= 0 {
		return payload, ok, nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil, false, ctx.Err()
		case <-timer.C:
			payload, ok, _ = q.tryClaim(topic)
			return payload, ok, nil
		case <-ch:
		}
		if payload, ok, ch = q.tryClaim(topic); ok {
			return payload, true, nil
		}
	}
}

// forget removes payload from the in-flight list and reports whether it
// was there. Callers hold mu.
func (q *MemoryQueue) forget(topic string, payload []byte) bool {
	items := q.inflight[topic]
	for i, p := range items {
		if bytes.Equal(p, payload) {
			q.inflight[topic] = append(items[:i:i], items[i+1:]...)
			return true
		}
	}
	return false
}

func (q *MemoryQueue) Ack(_ context.Context, topic string, payload []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.forget(topic, payload)
	return nil
}

func (q *MemoryQueue) Release(_ context.Context, topic string, payload []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.forget(topic, payload) {
		return nil
	}
	q.topics[topic] = append([][]byte{payload}, q.topics[topic]...)
	q.notify(topic)
	return nil
}

func (q *MemoryQueue) Recover(_ context.Context, topic string) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.inflight[topic]
	if len(items) == 0 {
		return 0, nil
	}
	q.topics[topic] = append(items, q.topics[topic]...)
	delete(q.inflight, topic)
	q.notify(topic)
	return int64(len(items)), nil
}

func (q *MemoryQueue) Len(_ context.Context, topic string) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int64(len(q.topics[topic])), nil
}
