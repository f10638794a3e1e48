// Package ratelimiter runs submitted tasks no faster than a configured rate, using a token bucket, and hands
// each caller back the results.Result produced for its task.
package ratelimiter

import (
	"context"

	"github.com/abevier/outcome/closewaiter"
	"github.com/abevier/outcome/futures"
	"github.com/abevier/outcome/internal/dispatch"
	"github.com/abevier/outcome/results"
	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/time/rate"
)

var log = logging.Logger("ratelimiter")

var (
	ErrQueueFull = dispatch.ErrQueueFull
	ErrStopped   = results.NewError("rate limiter has been stopped")
)

type RunFunction[T any, R any] func(ctx context.Context, task T) results.Result[R]

type RateLimiter[T any, R any] struct {
	limiter  *rate.Limiter
	taskChan chan dispatch.Task[T, R]

	submit dispatch.SubmitFunc[T, R]
	run    RunFunction[T, R]

	cw      *closewaiter.CloseWaiter
	stopped chan struct{}
}

func New[T any, R any](opts Opts, run RunFunction[T, R]) *RateLimiter[T, R] {
	opts.validate()

	rl := &RateLimiter[T, R]{
		limiter:  rate.NewLimiter(opts.Limit, opts.Burst),
		taskChan: make(chan dispatch.Task[T, R], opts.MaxQueueDepth),
		submit:   dispatch.SubmitFuncFor[T, R](dispatch.FullQueueStrategy(opts.FullQueueStrategy)),
		run:      run,
		cw:       closewaiter.New(),
		stopped:  make(chan struct{}),
	}

	go rl.worker()

	return rl
}

// worker hands out tokens in submission order.  Each task runs on its own go routine once it has a token.
func (rl *RateLimiter[T, R]) worker() {
	defer close(rl.stopped)

	for t := range rl.taskChan {
		if err := rl.limiter.Wait(t.Ctx); err != nil {
			log.Debugf("task dropped while waiting for a token: %s", err)
			t.Reject(results.FromErr(err))
			continue
		}

		go rl.runTask(t)
	}
}

func (rl *RateLimiter[T, R]) runTask(t dispatch.Task[T, R]) {
	t.Resolve(rl.run(t.Ctx, t.Task))
}

// Submit queues task and waits for its Result.
func (rl *RateLimiter[T, R]) Submit(ctx context.Context, task T) results.Result[R] {
	return results.Await(ctx, rl.SubmitF(ctx, task))
}

// SubmitF queues task and returns a future that is completed with its Result.
func (rl *RateLimiter[T, R]) SubmitF(ctx context.Context, task T) *futures.Future[results.Result[R]] {
	t := dispatch.NewTask[T, R](ctx, task)

	err := rl.cw.Do(func() {
		if err := rl.submit(rl.taskChan, t); err != nil {
			t.Reject(err)
		}
	})
	if err != nil {
		t.Reject(ErrStopped)
	}

	return t.Future
}

// Close stops accepting tasks and waits until every queued task has been given a token or dropped.
// Tasks that already hold a token may still be running when Close returns.  Close is safe to call more than once.
func (rl *RateLimiter[T, R]) Close() {
	rl.cw.Close(func() {
		close(rl.taskChan)
	})

	<-rl.stopped
}
