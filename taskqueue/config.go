package taskqueue

import "github.com/abevier/outcome/internal/dispatch"

// FullQueueStrategy is the behavior of Submit when MaxQueueDepth tasks are already waiting for a worker.
type FullQueueStrategy dispatch.FullQueueStrategy

const (
	// BlockWhenFull blocks the caller until there is room in the queue or the caller's context is done.
	BlockWhenFull FullQueueStrategy = FullQueueStrategy(dispatch.BlockWhenFull)
	// ErrorWhenFull fails the task immediately with ErrQueueFull.
	ErrorWhenFull FullQueueStrategy = FullQueueStrategy(dispatch.ErrorWhenFull)
)

type Opts struct {
	MaxWorkers        int
	MaxQueueDepth     int
	FullQueueStrategy FullQueueStrategy
}

func (o Opts) validate() {
	if o.MaxWorkers < 1 {
		panic("task queue max workers must be 1 or greater")
	}

	if o.MaxQueueDepth < 0 {
		panic("task queue max queue depth must be 0 or greater")
	}
}
