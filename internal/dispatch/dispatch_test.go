package dispatch

import (
	"context"
	"sync"
	"testing"

	"github.com/abevier/outcome/results"
	"github.com/stretchr/testify/require"
)

func TestSubmitFuncFor(t *testing.T) {
	req := require.New(t)

	f := SubmitFuncFor[int, int](BlockWhenFull)
	req.NotNil(f)

	f = SubmitFuncFor[int, int](ErrorWhenFull)
	req.NotNil(f)
}

func TestSubmitFuncForPanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("SubmitFuncFor did not panic")
		}
	}()

	SubmitFuncFor[int, int](-1)
}

func TestTaskResolve(t *testing.T) {
	req := require.New(t)

	tk := NewTask[int, int](context.Background(), 1)
	tk.Resolve(results.Success(2))
	tk.Reject(ErrQueueFull)

	r := results.Await(context.Background(), tk.Future)
	req.Equal(2, r.Value())

	tk = NewTask[int, int](context.Background(), 1)
	tk.Reject(ErrQueueFull)

	r = results.Await(context.Background(), tk.Future)
	req.Same(ErrQueueFull, r.Err())
}

func TestBlockWhenFull(t *testing.T) {
	req := require.New(t)

	c := make(chan Task[int, int])

	// Test cancellation
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tk := NewTask[int, int](ctx, 1)
	err := blockWhenFull(c, tk)
	req.NotNil(err)
	req.EqualError(err, context.Canceled.Error())

	// Test consumption
	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		defer wg.Done()

		for {
			v, ok := <-c
			if !ok {
				return
			}
			v.Resolve(results.Success(v.Task * 42))
		}
	}()

	ctx = context.Background()
	tk = NewTask[int, int](ctx, 1)

	err = blockWhenFull(c, tk)
	req.Nil(err)

	r := results.Await(ctx, tk.Future)
	req.Equal(42, r.Value())

	close(c)
	wg.Wait()
}

func TestErrorWhenFull(t *testing.T) {
	req := require.New(t)

	c := make(chan Task[int, int], 1)

	err := errorWhenFull(c, NewTask[int, int](context.Background(), 1))
	req.Nil(err)

	err = errorWhenFull(c, NewTask[int, int](context.Background(), 2))
	req.Same(ErrQueueFull, err)

	tk := <-c
	req.Equal(1, tk.Task)
}
