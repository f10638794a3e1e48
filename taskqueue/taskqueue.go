// Package taskqueue runs submitted tasks on a fixed pool of workers and hands each caller back the
// results.Result produced for its task.
package taskqueue

import (
	"context"
	"fmt"
	"sync"

	"github.com/abevier/outcome/closewaiter"
	"github.com/abevier/outcome/futures"
	"github.com/abevier/outcome/internal/dispatch"
	"github.com/abevier/outcome/results"
	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("taskqueue")

// RunFunction runs a single task.  ctx is the context the task was submitted with, extended with the id of
// the worker running it.
type RunFunction[T any, R any] func(ctx context.Context, task T) results.Result[R]

type TaskQueue[T any, R any] struct {
	run      RunFunction[T, R]
	taskChan chan dispatch.Task[T, R]
	submit   dispatch.SubmitFunc[T, R]

	cw      *closewaiter.CloseWaiter
	workers sync.WaitGroup
}

func New[T any, R any](opts Opts, run RunFunction[T, R]) *TaskQueue[T, R] {
	opts.validate()

	tq := &TaskQueue[T, R]{
		run:      run,
		taskChan: make(chan dispatch.Task[T, R], opts.MaxQueueDepth),
		submit:   dispatch.SubmitFuncFor[T, R](dispatch.FullQueueStrategy(opts.FullQueueStrategy)),
		cw:       closewaiter.New(),
	}

	for i := 0; i < opts.MaxWorkers; i++ {
		tq.workers.Add(1)
		go tq.worker(workerID(i))
	}

	return tq
}

func (tq *TaskQueue[T, R]) worker(id string) {
	defer tq.workers.Done()

	for t := range tq.taskChan {
		// the caller has already given up, don't spend a worker on it
		if err := t.Ctx.Err(); err != nil {
			t.Reject(results.FromErr(err))
			continue
		}

		log.Debugf("running task on %s", id)

		r := tq.run(withWorkerID(t.Ctx, id), t.Task)
		if r.IsFailure() {
			log.Debugf("task on %s failed: %v", id, r)
		}
		t.Resolve(r)
	}
}

// Submit queues task and waits for its Result.  If ctx is done before the task completes the Result is a
// failure carrying the context's error.
func (tq *TaskQueue[T, R]) Submit(ctx context.Context, task T) results.Result[R] {
	return results.Await(ctx, tq.SubmitF(ctx, task))
}

// SubmitF queues task and returns a future that is completed with its Result.  Tasks that cannot be queued,
// because the queue is full, closed, or ctx is done, get a future that is already completed with a failure.
func (tq *TaskQueue[T, R]) SubmitF(ctx context.Context, task T) *futures.Future[results.Result[R]] {
	t := dispatch.NewTask[T, R](ctx, task)

	err := tq.cw.Do(func() {
		if err := tq.submit(tq.taskChan, t); err != nil {
			t.Reject(err)
		}
	})
	if err != nil {
		t.Reject(ErrStopped)
	}

	return t.Future
}

// Close stops accepting tasks and waits for every queued task to finish.  It is safe to call more than once.
func (tq *TaskQueue[T, R]) Close() {
	tq.cw.Close(func() {
		close(tq.taskChan)
	})

	tq.workers.Wait()
}

type workerIDKey struct{}

func workerID(n int) string {
	return fmt.Sprintf("worker-%d", n)
}

func withWorkerID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, workerIDKey{}, id)
}

// WorkerIDFromContext returns the id of the worker running the current task.  The TaskQueue adds it to the
// context passed to the run function, which makes it useful for logging.
func WorkerIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(workerIDKey{}).(string)
	return v, ok
}
