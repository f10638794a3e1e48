// Package closewaiter guards a resource that many go routines use and one of them eventually closes,
// such as the task channel of an executor.  Close waits for every call to Do that is already running
// before it runs its shutdown function, and every call to Do that starts afterwards is rejected.
package closewaiter

import (
	"errors"
	"sync"
)

var (
	ErrClosed = errors.New("closed")
)

type CloseWaiter struct {
	m        sync.RWMutex
	isClosed bool

	closeOnce sync.Once
	closed    chan struct{}
}

func New() *CloseWaiter {
	return &CloseWaiter{
		closed: make(chan struct{}),
	}
}

// Do runs f unless Close has been called, in which case it returns ErrClosed.
// Close will not run its function while f is running.
func (c *CloseWaiter) Do(f func()) error {
	c.m.RLock()
	defer c.m.RUnlock()

	if c.isClosed {
		return ErrClosed
	}

	f()
	return nil
}

// Close marks the waiter closed, waits for running calls to Do to return, and then runs f.
// Only the first call runs f; every call returns once f has completed.
func (c *CloseWaiter) Close(f func()) {
	c.closeOnce.Do(func() {
		c.m.Lock()
		c.isClosed = true
		c.m.Unlock()

		f()

		close(c.closed)
	})

	<-c.closed
}

// Closed returns a channel that is closed once Close has completed.
func (c *CloseWaiter) Closed() <-chan struct{} {
	return c.closed
}
