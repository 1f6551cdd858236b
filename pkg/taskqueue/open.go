package taskqueue

import (
	"context"

	"github.com/iota-uz/officelife/pkg/configuration"
)

// Open builds the queue selected by AUDIT_QUEUE_BACKEND. The returned close
// function releases any connection it opened.
func Open(ctx context.Context, cfg *configuration.Configuration) (Queue, func() error, error) {
	switch cfg.Audit.QueueBackend {
	case "redis":
		client, err := Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisQueue(client, cfg.Audit.QueuePrefix), client.Close, nil
	case "memory", "":
		return NewMemoryQueue(), func() error { return nil }, nil
	default:
		return nil, nil, invalidConfig("unknown queue backend %q", cfg.Audit.QueueBackend)
	}
}
