package pool

import (
	"context"
	"log/slog"
	"time"

	"github.com/utkarsh5026/parex/internal/cpu"
	"github.com/utkarsh5026/parex/internal/panics"
)

// worker is the loop run by every pool goroutine. It blocks on the queue,
// runs one task at a time outside the queue lock and returns once shutdown
// was requested and the queue is empty.
func worker[R any](q *queueCore[R], id int) error {
	logger := q.cfg.logger.With(slog.Int("worker", id))

	if q.cfg.cpuAffinity {
		unpin, err := cpu.PinWorker(id)
		defer unpin()
		if err != nil {
			logger.Warn("cpu affinity unavailable", slog.Any("error", err))
		}
	}

	logger.Debug("worker started")
	defer func() {
		q.setState(id, Exited)
		logger.Debug("worker exited")
	}()

	for {
		j, ok := q.claim()
		if !ok {
			return nil
		}

		runClaimed(q, logger, id, j)
	}
}

// runClaimed executes j on worker id. The task is released back to the
// queue accounting even if execute panics, so Wait and Shutdown never hang.
func runClaimed[R any](q *queueCore[R], logger *slog.Logger, id int, j job[R]) {
	q.setState(id, Running)
	defer func() {
		q.setState(id, Idle)
		q.release()
	}()
	execute(q, logger, j)
}

// execute runs a claimed task and records its outcome.
func execute[R any](q *queueCore[R], logger *slog.Logger, j job[R]) {
	if q.cfg.rateLimiter != nil {
		if err := q.cfg.rateLimiter.Wait(context.Background()); err != nil {
			logger.Warn("rate limiter rejected wait", slog.Int64("task", j.index), slog.Any("error", err))
		}
	}

	if q.cfg.beforeTaskStart != nil {
		callHook(logger, "before task start", j.index, func() { q.cfg.beforeTaskStart(j.index) })
	}

	start := time.Now()
	value, err := runTask(j.task)
	elapsed := time.Since(start)
	q.metrics.taskFinished(elapsed, err)

	if err != nil {
		q.recordFault(j.index, err)
		logger.Warn("task failed", slog.Int64("task", j.index), slog.Duration("elapsed", elapsed), slog.Any("error", err))
	} else {
		q.recordResult(j.index, value)
		logger.Debug("task completed", slog.Int64("task", j.index), slog.Duration("elapsed", elapsed), slog.Any("result", value))
	}
	debugLog("task %d done: err=%v", j.index, err)

	if q.cfg.onTaskEnd != nil {
		callHook(logger, "task end", j.index, func() { q.cfg.onTaskEnd(j.index, err) })
	}
}

// callHook runs a lifecycle hook. A panicking hook is logged and otherwise
// ignored; it does not affect the outcome recorded for the task.
func callHook(logger *slog.Logger, hook string, index int64, fn func()) {
	defer func() {
		if p := panics.Wrap(recover()); p != nil {
			logger.Error("hook panicked",
				slog.String("hook", hook),
				slog.Int64("task", index),
				slog.Any("panic", p.Value),
				slog.String("stack", string(p.Stack)))
		}
	}()
	fn()
}

// runTask calls task, converting a panic into a *PanicError.
func runTask[R any](task Task[R]) (value R, err error) {
	defer func() {
		if p := panics.Wrap(recover()); p != nil {
			err = p
		}
	}()
	return task()
}
