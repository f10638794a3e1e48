package taskqueue

import (
	"github.com/abevier/outcome/internal/dispatch"
	"github.com/abevier/outcome/results"
)

var (
	ErrQueueFull = dispatch.ErrQueueFull
	ErrStopped   = results.NewError("task queue has been stopped")
)
