package taskqueue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Connect parses url, dials Redis and validates connectivity with a ping.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// RedisQueue keeps one list per topic plus a processing list of claimed
// payloads. Producers LPUSH, consumers BLMOVE from the tail into the
// processing list, so the tail is always the oldest payload.
type RedisQueue struct {
	client *redis.Client
	prefix string
}

func NewRedisQueue(client *redis.Client, prefix string) *RedisQueue {
	return &RedisQueue{client: client, prefix: prefix}
}

func (q *RedisQueue) key(topic string) string {
	return q.prefix + ":queue:" + topic
}

func (q *RedisQueue) processingKey(topic string) string {
	return q.key(topic) + ":processing"
}

func (q *RedisQueue) Push(ctx context.Context, topic string, payload []byte) error {
	return q.client.LPush(ctx, q.key(topic), payload).Err()
}

func (q *RedisQueue) Claim(ctx context.Context, topic string, timeout time.Duration) ([]byte, bool, error) {
	var cmd *redis.StringCmd
	if timeout <= 0 {
		cmd = q.client.LMove(ctx, q.key(topic), q.processingKey(topic), "RIGHT", "LEFT")
	} else {
		cmd = q.client.BLMove(ctx, q.key(topic), q.processingKey(topic), "RIGHT", "LEFT", timeout)
	}
	b, err := cmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (q *RedisQueue) Ack(ctx context.Context, topic string, payload []byte) error {
	return q.client.LRem(ctx, q.processingKey(topic), 1, payload).Err()
}

// Release pushes payload back onto the tail so it is claimed next.
func (q *RedisQueue) Release(ctx context.Context, topic string, payload []byte) error {
	_, err := q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LRem(ctx, q.processingKey(topic), 1, payload)
		pipe.RPush(ctx, q.key(topic), payload)
		return nil
	})
	return err
}

// Recover assumes no other consumer of topic is running.
func (q *RedisQueue) Recover(ctx context.Context, topic string) (int64, error) {
	var n int64
	for {
		err := q.client.LMove(ctx, q.processingKey(topic), q.key(topic), "LEFT", "RIGHT").Err()
		if errors.Is(err, redis.Nil) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("taskqueue: recover %s: %w", topic, err)
		}
		n++
	}
}

func (q *RedisQueue) Len(ctx context.Context, topic string) (int64, error) {
	return q.client.LLen(ctx, q.key(topic)).Result()
}
