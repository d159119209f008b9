package cache

import (
	"context"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// SubmissionCounter keeps a running total of accepted contact submissions
// plus a per-day bucket that expires after retention.
type SubmissionCounter struct {
	client    *redisv9.Client
	retention time.Duration
	now       func() time.Time
}

func NewSubmissionCounter(client *redisv9.Client, retention time.Duration) *SubmissionCounter {
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}
	return &SubmissionCounter{
		client:    client,
		retention: retention,
		now:       time.Now,
	}
}

// Incr bumps both counters and returns the new running total.
func (c *SubmissionCounter) Incr(ctx context.Context) (int64, error) {
	dayKey := c.dayKey(c.now())

	pipe := c.client.TxPipeline()
	total := pipe.Incr(ctx, totalKey)
	pipe.Incr(ctx, dayKey)
	pipe.Expire(ctx, dayKey, c.retention)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("redis incr submission counter failed: %w", err)
	}
	return total.Val(), nil
}

// Stats returns the running total and today's count.
func (c *SubmissionCounter) Stats(ctx context.Context) (int64, int64, error) {
	vals, err := c.client.MGet(ctx, totalKey, c.dayKey(c.now())).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("redis get submission counter failed: %w", err)
	}
	return parseCount(vals[0]), parseCount(vals[1]), nil
}

func (c *SubmissionCounter) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

const totalKey = "contact:submissions:total"

func (c *SubmissionCounter) dayKey(t time.Time) string {
	return fmt.Sprintf("contact:submissions:%s", t.Format("2006-01-02"))
}

func parseCount(v interface{}) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	var n int64
	if _, err := fmt.Sscan(s, &n); err != nil {
		return 0
	}
	return n
}
