package applicationinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jobpulse/jobpulse/board/application"
	"github.com/redis/go-redis/v9"
)

// RedisQueue implements application.JobQueue using Redis lists plus a sorted
// set for delayed retries
type RedisQueue struct {
	client    *redis.Client
	queueName string
}

// NewRedisQueue creates a new Redis-based queue
func NewRedisQueue(client *redis.Client, queueName string) application.JobQueue {
	return &RedisQueue{
		client:    client,
		queueName: queueName,
	}
}

// Enqueue pushes a job onto the ready queue
func (q *RedisQueue) Enqueue(ctx context.Context, job *application.ResumeJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal resume job %s: %w", job.ApplicationID, err)
	}

	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return fmt.Errorf("enqueue resume job %s: %w", job.ApplicationID, err)
	}

	return nil
}

// Dequeue pops a job, blocking up to timeout. A nil result with nil error
// means the queue stayed empty.
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue resume job: %w", err)
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}

	return []byte(result[1]), nil
}

// EnqueueDelayed schedules a retry for later
func (q *RedisQueue) EnqueueDelayed(ctx context.Context, job *application.ResumeJob, delay time.Duration) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal delayed resume job %s: %w", job.ApplicationID, err)
	}

	score := float64(time.Now().Add(delay).Unix())

	if err := q.client.ZAdd(ctx, q.delayedQueue(), redis.Z{
		Score:  score,
		Member: data,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue delayed resume job %s: %w", job.ApplicationID, err)
	}

	return nil
}

// MoveDelayedToReady promotes due delayed jobs onto the ready queue
func (q *RedisQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	now := float64(time.Now().Unix())

	jobs, err := q.client.ZRangeByScore(ctx, q.delayedQueue(), &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%f", now),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("get delayed resume jobs: %w", err)
	}

	if len(jobs) == 0 {
		return 0, nil
	}

	pipe := q.client.Pipeline()
	for _, job := range jobs {
		pipe.LPush(ctx, q.queueName, job)
		pipe.ZRem(ctx, q.delayedQueue(), job)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("move delayed resume jobs to ready: %w", err)
	}

	return len(jobs), nil
}

func (q *RedisQueue) delayedQueue() string {
	return q.queueName + ":delayed"
}
