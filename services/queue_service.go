package services

import (
	"bookcatalog_server/structs"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/redis/go-redis/v9"
)

// QueueService is a Redis list backed notification queue: LPUSH to enqueue, BRPOP to consume.
type QueueService struct {
	logger   *gecho.Logger
	cfg      *structs.QueueConfig
	client   redis.Cmdable
	fallback Mailer
}

// NewQueueService wraps client. Without a client, jobs go straight to fallback.
func NewQueueService(logger *gecho.Logger, cfg *structs.QueueConfig, client *redis.Client, fallback Mailer) *QueueService {
	qs := &QueueService{logger: logger, cfg: cfg, fallback: fallback}
	if client != nil {
		qs.client = client
	}
	return qs
}

// Configured reports whether jobs go through Redis.
func (qs *QueueService) Configured() bool {
	return qs.client != nil
}

// Enqueue pushes an activation job onto the queue.
func (qs *QueueService) Enqueue(ctx context.Context, job structs.ActivationJob) error {
	if qs.client == nil {
		if qs.fallback == nil {
			return errors.New("notification queue is not configured")
		}
		return qs.fallback.SendActivationEmail(ctx, job.Email, job.ActivationURL)
	}
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode job: %w", err)
	}
	if err := qs.client.LPush(ctx, qs.cfg.Key, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue job: %w", err)
	}
	return nil
}

// Dequeue blocks up to the poll timeout for the next job. It returns nil, nil when none arrived.
func (qs *QueueService) Dequeue(ctx context.Context) (*structs.ActivationJob, error) {
	res, err := qs.client.BRPop(ctx, qs.cfg.PollTimeout, qs.cfg.Key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	// BRPOP replies with [key, value]
	if len(res) != 2 {
		return nil, fmt.Errorf("unexpected BRPOP reply of length %d", len(res))
	}

	var job structs.ActivationJob
	if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
		return nil, fmt.Errorf("failed to decode job: %w", err)
	}
	return &job, nil
}

type jobQueue interface {
	Configured() bool
	Enqueue(ctx context.Context, job structs.ActivationJob) error
	Dequeue(ctx context.Context) (*structs.ActivationJob, error)
}

// NotificationWorker delivers queued activation emails.
type NotificationWorker struct {
	logger      *gecho.Logger
	queue       jobQueue
	mailer      Mailer
	maxAttempts int
	retryDelay  time.Duration
}

func NewNotificationWorker(logger *gecho.Logger, queue jobQueue, mailer Mailer, cfg *structs.QueueConfig) *NotificationWorker {
	return &NotificationWorker{
		logger:      logger,
		queue:       queue,
		mailer:      mailer,
		maxAttempts: cfg.MaxAttempts,
		retryDelay:  cfg.RetryDelay,
	}
}

// backoff returns the wait before requeueing a job that has failed attempts times.
func (nw *NotificationWorker) backoff(attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	return nw.retryDelay << (attempts - 1)
}

// Run consumes jobs until ctx is cancelled.
func (nw *NotificationWorker) Run(ctx context.Context) {
	if !nw.queue.Configured() {
		nw.logger.Warn("Notification worker not started: queue is not configured")
		return
	}
	nw.logger.Info("Notification worker started")

	for {
		if ctx.Err() != nil {
			nw.logger.Info("Notification worker stopped")
			return
		}

		job, err := nw.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			nw.logger.Error("Failed to read from notification queue", gecho.Field("error", err))
			sleepCtx(ctx, time.Second)
			continue
		}
		if job == nil {
			continue
		}

		nw.Process(ctx, job)
	}
}

// Process delivers a single job, requeueing it on failure until the attempt limit is reached.
func (nw *NotificationWorker) Process(ctx context.Context, job *structs.ActivationJob) {
	err := nw.mailer.SendActivationEmail(ctx, job.Email, job.ActivationURL)
	if err == nil {
		nw.logger.Info("Activation email delivered", gecho.Field("email", job.Email))
		return
	}

	job.Attempts++
	if job.Attempts >= nw.maxAttempts {
		nw.logger.Error("Dropping activation email after repeated failures",
			gecho.Field("email", job.Email),
			gecho.Field("attempts", job.Attempts),
			gecho.Field("error", err),
		)
		return
	}

	delay := nw.backoff(job.Attempts)
	nw.logger.Warn("Activation email failed, requeueing",
		gecho.Field("email", job.Email),
		gecho.Field("attempts", job.Attempts),
		gecho.Field("retry_in", delay.String()),
		gecho.Field("error", err),
	)
	sleepCtx(ctx, delay)

	// Requeue even when shutting down so the job survives the restart.
	if qerr := nw.queue.Enqueue(context.WithoutCancel(ctx), *job); qerr != nil {
		nw.logger.Error("Failed to requeue activation email", gecho.Field("email", job.Email), gecho.Field("error", qerr))
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
