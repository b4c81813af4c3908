package services

import (
	"bookcatalog_server/mocks"
	"bookcatalog_server/structs"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type stubQueue struct {
	mock.Mock
}

func (q *stubQueue) Configured() bool { return true }

func (q *stubQueue) Enqueue(ctx context.Context, job structs.ActivationJob) error {
	return q.Called(ctx, job).Error(0)
}

func (q *stubQueue) Dequeue(ctx context.Context) (*structs.ActivationJob, error) {
	args := q.Called(ctx)
	job, _ := args.Get(0).(*structs.ActivationJob)
	return job, args.Error(1)
}

func TestProcessDeliversJob(t *testing.T) {
	queue, mailer := &stubQueue{}, &mocks.Mailer{}
	w := NewNotificationWorker(testLogger(), queue, mailer, testConfig().Queue)
	ctx := context.Background()

	mailer.On("SendActivationEmail", ctx, "a@b.c", "http://x/activate/1/").Return(nil)

	w.Process(ctx, &structs.ActivationJob{Email: "a@b.c", ActivationURL: "http://x/activate/1/"})

	mailer.AssertExpectations(t)
	queue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
}

func TestProcessRequeuesFailedJob(t *testing.T) {
	queue, mailer := &stubQueue{}, &mocks.Mailer{}
	w := NewNotificationWorker(testLogger(), queue, mailer, testConfig().Queue)
	ctx := context.Background()

	mailer.On("SendActivationEmail", ctx, "a@b.c", "u").Return(errors.New("smtp down"))
	queue.On("Enqueue", mock.Anything, structs.ActivationJob{Email: "a@b.c", ActivationURL: "u", Attempts: 2}).Return(nil)

	w.Process(ctx, &structs.ActivationJob{Email: "a@b.c", ActivationURL: "u", Attempts: 1})

	queue.AssertExpectations(t)
}

func TestProcessDropsAfterMaxAttempts(t *testing.T) {
	queue, mailer := &stubQueue{}, &mocks.Mailer{}
	w := NewNotificationWorker(testLogger(), queue, mailer, testConfig().Queue)
	ctx := context.Background()

	mailer.On("SendActivationEmail", ctx, "a@b.c", "u").Return(errors.New("smtp down"))

	w.Process(ctx, &structs.ActivationJob{Email: "a@b.c", ActivationURL: "u", Attempts: 2})

	queue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
}

func TestProcessBacksOffBeforeRequeue(t *testing.T) {
	cfg := testConfig().Queue
	cfg.RetryDelay = 20 * time.Millisecond
	queue, mailer := &stubQueue{}, &mocks.Mailer{}
	w := NewNotificationWorker(testLogger(), queue, mailer, cfg)
	ctx := context.Background()

	assert.Equal(t, 20*time.Millisecond, w.backoff(1))
	assert.Equal(t, 40*time.Millisecond, w.backoff(2))

	mailer.On("SendActivationEmail", ctx, "a@b.c", "u").Return(errors.New("smtp down"))
	queue.On("Enqueue", mock.Anything, mock.Anything).Return(nil)

	start := time.Now()
	w.Process(ctx, &structs.ActivationJob{Email: "a@b.c", ActivationURL: "u", Attempts: 1})

	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
	queue.AssertNumberOfCalls(t, "Enqueue", 1)
}

func TestProcessRequeuesOnShutdown(t *testing.T) {
	cfg := testConfig().Queue
	cfg.RetryDelay = time.Hour
	queue, mailer := &stubQueue{}, &mocks.Mailer{}
	w := NewNotificationWorker(testLogger(), queue, mailer, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mailer.On("SendActivationEmail", ctx, "a@b.c", "u").Return(context.Canceled)
	queue.On("Enqueue", mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil }),
		structs.ActivationJob{Email: "a@b.c", ActivationURL: "u", Attempts: 1}).Return(nil)

	done := make(chan struct{})
	go func() {
		w.Process(ctx, &structs.ActivationJob{Email: "a@b.c", ActivationURL: "u"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Process waited out the retry delay after cancellation")
	}
	queue.AssertExpectations(t)
}

func TestQueueWithoutRedisDeliversDirectly(t *testing.T) {
	mailer := &mocks.Mailer{}
	qs := NewQueueService(testLogger(), testConfig().Queue, nil, mailer)
	ctx := context.Background()

	mailer.On("SendActivationEmail", ctx, "a@b.c", "u").Return(nil)

	assert.False(t, qs.Configured())
	assert.NoError(t, qs.Enqueue(ctx, structs.ActivationJob{Email: "a@b.c", ActivationURL: "u"}))
	mailer.AssertExpectations(t)
}

func TestQueueWithoutRedisOrMailer(t *testing.T) {
	qs := NewQueueService(testLogger(), testConfig().Queue, nil, nil)
	assert.Error(t, qs.Enqueue(context.Background(), structs.ActivationJob{}))
}

func TestRunReturnsWhenQueueUnconfigured(t *testing.T) {
	qs := NewQueueService(testLogger(), testConfig().Queue, nil, nil)
	w := NewNotificationWorker(testLogger(), qs, &mocks.Mailer{}, testConfig().Queue)

	done := make(chan struct{})
	go func() {
		w.Run(context.Background())
		close(done)
	}()
	<-done
}
