// Redis-backed job queue for distributed batch enhancement
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	jobQueueKey    = "enhance:job:queue"
	resultQueueKey = "enhance:result:queue"
)

// Job message types.
const (
	TypeEnhance = "enhance"
	TypeStop    = "stop"
)

// Job asks a worker to enhance one image. Paths are resolved on the worker's
// filesystem: coordinator and workers are expected to share storage, so only
// paths and catalog names travel over the queue.
type Job struct {
	Type       string `json:"type"`
	Input      string `json:"input,omitempty"`
	Output     string `json:"output,omitempty"`
	Preset     string `json:"preset,omitempty"`
	Resolution string `json:"resolution,omitempty"`
}

// Result reports one finished (or failed) job.
type Result struct {
	Input       string  `json:"input"`
	Output      string  `json:"output"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	WorkerID    string  `json:"worker_id"`
	ProcessTime float64 `json:"process_time_ms"`
	Error       string  `json:"error,omitempty"`
}

// RedisQueue is a thin wrapper over two Redis lists: jobs flow one way,
// results the other.
type RedisQueue struct {
	client *redis.Client
}

// NewRedisQueue connects to Redis and verifies the connection.
func NewRedisQueue(ctx context.Context, addr string) (*RedisQueue, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return &RedisQueue{client: client}, nil
}

// PushJob adds a job to the queue.
func (q *RedisQueue) PushJob(ctx context.Context, job *Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	return q.client.LPush(ctx, jobQueueKey, data).Err()
}

// PopJob retrieves and removes a job, blocking up to timeout. A nil job with
// a nil error means the timeout elapsed with nothing queued.
func (q *RedisQueue) PopJob(ctx context.Context, timeout time.Duration) (*Job, error) {
	result, err := q.client.BRPop(ctx, timeout, jobQueueKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to pop job: %w", err)
	}
	if len(result) < 2 {
		return nil, fmt.Errorf("unexpected BRPOP result format")
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	return &job, nil
}

// PushResult adds a processed result to the result queue.
func (q *RedisQueue) PushResult(ctx context.Context, res *Result) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	return q.client.LPush(ctx, resultQueueKey, data).Err()
}

// PopResult retrieves a processed result, blocking up to timeout. A nil
// result with a nil error means the timeout elapsed.
func (q *RedisQueue) PopResult(ctx context.Context, timeout time.Duration) (*Result, error) {
	result, err := q.client.BRPop(ctx, timeout, resultQueueKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to pop result: %w", err)
	}
	if len(result) < 2 {
		return nil, fmt.Errorf("unexpected BRPOP result format")
	}

	var res Result
	if err := json.Unmarshal([]byte(result[1]), &res); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return &res, nil
}

// Close closes the Redis connection.
func (q *RedisQueue) Close() error {
	return q.client.Close()
}
