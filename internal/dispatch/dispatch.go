// Package dispatch holds the pieces shared by the executors: the pending task type and the
// strategies used to hand a task to a bounded queue.
package dispatch

import (
	"context"

	"github.com/abevier/outcome/futures"
	"github.com/abevier/outcome/results"
	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("dispatch")

var (
	ErrQueueFull = results.NewError("task queue is full")
)

type FullQueueStrategy int

const (
	BlockWhenFull FullQueueStrategy = iota
	ErrorWhenFull
)

// Task is a submitted task along with the context it was submitted with and the future its result is delivered to.
type Task[T any, R any] struct {
	Ctx    context.Context
	Task   T
	Future *futures.Future[results.Result[R]]
}

func NewTask[T any, R any](ctx context.Context, task T) Task[T, R] {
	return Task[T, R]{
		Ctx:    ctx,
		Task:   task,
		Future: futures.New[results.Result[R]](),
	}
}

// Resolve completes the task's future with r.  Only the first call has an effect.
func (t Task[T, R]) Resolve(r results.Result[R]) {
	t.Future.Complete(r)
}

// Reject completes the task's future with a failure carrying err.
func (t Task[T, R]) Reject(err *results.Error) {
	t.Future.Complete(results.FailureOf[R](err))
}

type SubmitFunc[T any, R any] func(taskChan chan<- Task[T, R], t Task[T, R]) *results.Error

func SubmitFuncFor[T any, R any](s FullQueueStrategy) SubmitFunc[T, R] {
	switch s {
	case BlockWhenFull:
		return blockWhenFull[T, R]
	case ErrorWhenFull:
		return errorWhenFull[T, R]
	default:
		log.Panicf("invalid full queue strategy value %d", s)
	}
	return blockWhenFull[T, R]
}

func blockWhenFull[T any, R any](taskChan chan<- Task[T, R], t Task[T, R]) *results.Error {
	select {
	case taskChan <- t:
		return nil
	case <-t.Ctx.Done():
		return results.FromErr(t.Ctx.Err())
	}
}

func errorWhenFull[T any, R any](taskChan chan<- Task[T, R], t Task[T, R]) *results.Error {
	select {
	case taskChan <- t:
		return nil
	default:
		return ErrQueueFull
	}
}
