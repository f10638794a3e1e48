// Package batch groups tasks submitted from many go routines into batches and runs each batch with a
// single call, delivering one results.Result back to each caller.
package batch

import (
	"context"
	"sync"
	"time"

	"github.com/abevier/outcome/closewaiter"
	"github.com/abevier/outcome/futures"
	"github.com/abevier/outcome/internal/dispatch"
	"github.com/abevier/outcome/results"
	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("batch")

var (
	ErrBatchResultMismatch = results.NewError("batch run function returned a different number of results than tasks")
	ErrStopped             = results.NewError("batch executor has been stopped")
)

// RunBatchFunction runs a batch of tasks.  It must return exactly one Result per task, in the same order.
// Returning an error fails every task in the batch with that error's message.
type RunBatchFunction[T any, R any] func(tasks []T) ([]results.Result[R], error)

type batch[T any, R any] struct {
	id    int
	tasks []dispatch.Task[T, R]
	timer *time.Timer
}

type Executor[T any, R any] struct {
	m            sync.Mutex
	sequenceNum  int
	currentBatch *batch[T, R]

	run       RunBatchFunction[T, R]
	maxSize   int
	maxLinger time.Duration

	cw      *closewaiter.CloseWaiter
	running sync.WaitGroup
}

func New[T any, R any](opts Opts, run RunBatchFunction[T, R]) *Executor[T, R] {
	opts.validate()

	return &Executor[T, R]{
		run:       run,
		maxSize:   opts.MaxSize,
		maxLinger: opts.MaxLinger,
		cw:        closewaiter.New(),
	}
}

// Submit adds task to the current batch and waits for its Result.
func (e *Executor[T, R]) Submit(ctx context.Context, task T) results.Result[R] {
	return results.Await(ctx, e.SubmitF(ctx, task))
}

// SubmitF adds task to the current batch and returns a future that is completed with its Result.
func (e *Executor[T, R]) SubmitF(ctx context.Context, task T) *futures.Future[results.Result[R]] {
	t := dispatch.NewTask[T, R](ctx, task)

	if err := e.cw.Do(func() { e.add(t) }); err != nil {
		t.Reject(ErrStopped)
	}

	return t.Future
}

// Close runs the pending batch, if any, rejects further tasks and waits for every running batch to finish.
func (e *Executor[T, R]) Close() {
	e.cw.Close(func() {
		e.m.Lock()
		defer e.m.Unlock()

		if e.currentBatch != nil {
			e.flush()
		}
	})

	e.running.Wait()
}

func (e *Executor[T, R]) add(t dispatch.Task[T, R]) {
	e.m.Lock()
	defer e.m.Unlock()

	if e.currentBatch == nil {
		e.currentBatch = e.newBatch()
	}
	e.currentBatch.tasks = append(e.currentBatch.tasks, t)

	if len(e.currentBatch.tasks) >= e.maxSize {
		e.flush()
	}
}

// newBatch must be called with e.m held.
func (e *Executor[T, R]) newBatch() *batch[T, R] {
	e.sequenceNum++

	b := &batch[T, R]{
		id:    e.sequenceNum,
		tasks: make([]dispatch.Task[T, R], 0, e.maxSize),
	}

	b.timer = time.AfterFunc(e.maxLinger, func() { e.expire(b.id) })
	return b
}

func (e *Executor[T, R]) expire(batchID int) {
	e.m.Lock()
	defer e.m.Unlock()

	if e.currentBatch != nil && e.currentBatch.id == batchID {
		log.Debugf("batch %d expired with %d tasks", batchID, len(e.currentBatch.tasks))
		e.flush()
	}
}

// flush must be called with e.m held.
func (e *Executor[T, R]) flush() {
	b := e.currentBatch
	e.currentBatch = nil
	b.timer.Stop()

	e.running.Add(1)
	go e.runBatch(b)
}

func (e *Executor[T, R]) runBatch(b *batch[T, R]) {
	defer e.running.Done()

	live := make([]dispatch.Task[T, R], 0, len(b.tasks))
	for _, t := range b.tasks {
		if err := t.Ctx.Err(); err != nil {
			t.Reject(results.FromErr(err))
			continue
		}
		live = append(live, t)
	}
	if len(live) == 0 {
		return
	}

	tasks := make([]T, len(live))
	for i, t := range live {
		tasks[i] = t.Task
	}

	log.Debugf("running batch %d with %d tasks", b.id, len(tasks))

	rs, err := e.run(tasks)
	if err != nil {
		log.Warnf("batch %d failed: %s", b.id, err)
		rejectAll(live, results.FromErr(err))
		return
	}

	if len(rs) != len(live) {
		log.Errorf("batch %d: run returned %d results for %d tasks", b.id, len(rs), len(live))
		rejectAll(live, ErrBatchResultMismatch)
		return
	}

	for i, r := range rs {
		live[i].Resolve(r)
	}
}

func rejectAll[T any, R any](ts []dispatch.Task[T, R], err *results.Error) {
	for _, t := range ts {
		t.Reject(err)
	}
}
