// Package pipeline contains the concurrent resolution/extraction core: a
// bounded worker pool where every worker owns one browser session for its
// lifetime, a constant-backoff retry controller wrapped around each task,
// and an order-restoring result collector.
package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/user/channel-scraper/internal/browser"
)

// ErrNoWorker marks a task that was never processed because every worker
// retired before reaching it (repeated session-acquisition failures).
var ErrNoWorker = errors.New("pipeline: no worker available for task")

// Options tunes a pool run. Zero values fall back to safe minimums.
type Options struct {
	// Workers is the number of concurrent workers (default 1).
	Workers int
	// MaxRetries is the retry budget per task beyond the first attempt.
	MaxRetries int
	// RetryDelay is the constant wait between attempts of one task.
	RetryDelay time.Duration
	// TaskDelay is the politeness pause a worker takes after finishing a
	// task, before pulling the next. Not applied before the first task.
	TaskDelay time.Duration
	// AcquireAttempts bounds session (re)acquisition tries before a worker
	// retires (default 3).
	AcquireAttempts int
	// AcquireDelay is the wait between session acquisition tries.
	AcquireDelay time.Duration
}

func (o Options) normalized() Options {
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.AcquireAttempts < 1 {
		o.AcquireAttempts = 3
	}
	if o.AcquireDelay <= 0 {
		o.AcquireDelay = 2 * time.Second
	}
	return o
}

// TaskFunc executes one task against the worker's browser session.
type TaskFunc[T, R any] func(ctx context.Context, sess browser.Session, task T) (R, error)

type indexedTask[T any] struct {
	index int
	task  T
}

// Run distributes tasks over a fixed pool of workers, each holding one
// browser session, and returns one outcome per task in input order. A
// failing task never aborts the pool; its outcome carries the error.
func Run[T, R any](ctx context.Context, logger *zap.Logger, factory browser.Factory, tasks []T, opts Options, fn TaskFunc[T, R]) []Outcome[R] {
	opts = opts.normalized()
	if len(tasks) == 0 {
		return nil
	}

	queue := make(chan indexedTask[T], len(tasks))
	for i, t := range tasks {
		queue <- indexedTask[T]{index: i, task: t}
	}
	close(queue)

	collector := NewCollector[R](len(tasks))

	workers := opts.Workers
	if workers > len(tasks) && len(tasks) > 0 {
		workers = len(tasks)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			runWorker(ctx, logger.With(zap.Int("worker", id)), factory, queue, collector, opts, fn)
		}(w)
	}
	wg.Wait()

	// Tasks still queued here were orphaned by retired workers. They must
	// still produce outcomes.
	for it := range queue {
		err := ErrNoWorker
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		collector.Add(Outcome[R]{Index: it.index, Err: err})
	}

	return collector.Outcomes()
}

func runWorker[T, R any](ctx context.Context, logger *zap.Logger, factory browser.Factory, queue <-chan indexedTask[T], collector *Collector[R], opts Options, fn TaskFunc[T, R]) {
	sess, err := acquireSession(ctx, logger, factory, opts)
	if err != nil {
		logger.Error("retiring worker, could not acquire browser session", zap.Error(err))
		return
	}
	defer func() {
		if sess != nil {
			sess.Close()
		}
	}()

	first := true
	for {
		if !first {
			select {
			case <-ctx.Done():
				return
			case <-time.After(opts.TaskDelay):
			}
		}
		first = false

		var it indexedTask[T]
		var ok bool
		select {
		case <-ctx.Done():
			return
		case it, ok = <-queue:
			if !ok {
				return
			}
		}

		value, attempts, taskErr := Attempt(ctx, opts.MaxRetries, opts.RetryDelay, func(ctx context.Context) (R, error) {
			return fn(ctx, sess, it.task)
		})
		collector.Add(Outcome[R]{Index: it.index, Value: value, Attempts: attempts, Err: taskErr})

		if taskErr != nil {
			logger.Warn("task failed",
				zap.Int("index", it.index),
				zap.Int("attempts", attempts),
				zap.Bool("terminal", IsTerminal(taskErr)),
				zap.Error(taskErr))
		}

		// A task that exhausted its retries may have left the session
		// wedged. Cycle it before the next task.
		if taskErr != nil && !IsTerminal(taskErr) && ctx.Err() == nil {
			sess.Close()
			sess, err = acquireSession(ctx, logger, factory, opts)
			if err != nil {
				sess = nil
				logger.Error("retiring worker, could not reacquire browser session", zap.Error(err))
				return
			}
		}
	}
}

func acquireSession(ctx context.Context, logger *zap.Logger, factory browser.Factory, opts Options) (browser.Session, error) {
	var lastErr error
	for attempt := 1; attempt <= opts.AcquireAttempts; attempt++ {
		sess, err := factory.NewSession(ctx)
		if err == nil {
			return sess, nil
		}
		lastErr = err
		logger.Warn("browser session acquisition failed",
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt == opts.AcquireAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(opts.AcquireDelay):
		}
	}
	return nil, lastErr
}
