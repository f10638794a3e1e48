package ratelimiter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/abevier/outcome/futures"
	"github.com/abevier/outcome/results"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter(t *testing.T) {
	req := require.New(t)

	wg := sync.WaitGroup{}

	run := func(ctx context.Context, n int) results.Result[int] {
		return results.Success(n * 2)
	}

	rl := New(Opts{Limit: Every(time.Millisecond), Burst: 1, MaxQueueDepth: 10}, run)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			r := rl.Submit(context.Background(), n)
			req.Equal(n*2, r.Value())
		}(i)
	}

	wg.Wait()
	rl.Close()
}

func TestRateLimiterCancelWhileWaiting(t *testing.T) {
	req := require.New(t)

	run := func(ctx context.Context, n int) results.Result[int] {
		return results.Success(n)
	}

	rl := New(Opts{Limit: Every(time.Hour), Burst: 1, MaxQueueDepth: 10}, run)

	// takes the only token
	r := rl.Submit(context.Background(), 1)
	req.Equal(1, r.Value())

	ctx, cancel := context.WithCancel(context.Background())
	f := rl.SubmitF(ctx, 2)

	time.Sleep(10 * time.Millisecond)
	req.False(f.IsDone())

	cancel()

	r = results.Await(context.Background(), f)
	req.True(r.IsFailure())
	req.EqualError(r.Err(), context.Canceled.Error())

	rl.Close()
}

func TestRateLimiterQueueFull(t *testing.T) {
	req := require.New(t)

	run := func(ctx context.Context, n int) results.Result[int] {
		return results.Success(n)
	}

	rl := New(Opts{Limit: Every(time.Hour), Burst: 1, MaxQueueDepth: 1, FullQueueStrategy: ErrorWhenFull}, run)

	r := rl.Submit(context.Background(), 1)
	req.Equal(1, r.Value())

	ctx, cancel := context.WithCancel(context.Background())

	f2 := rl.SubmitF(ctx, 2)

	// the worker has taken task 2 and is waiting for a token, so the queue is empty
	req.Eventually(func() bool {
		return len(rl.taskChan) == 0
	}, time.Second, time.Millisecond)

	f3 := rl.SubmitF(ctx, 3)
	req.False(f3.IsDone())

	f4 := rl.SubmitF(ctx, 4)
	req.True(f4.IsDone())
	req.Same(ErrQueueFull, results.Await(context.Background(), f4).Err())

	fs := []*futures.Future[results.Result[int]]{f2, f3}

	cancel()
	rl.Close()

	for _, f := range fs {
		req.True(results.Await(context.Background(), f).IsFailure())
	}
}

func TestRateLimiterSubmitAfterClose(t *testing.T) {
	req := require.New(t)

	run := func(ctx context.Context, n int) results.Result[int] {
		return results.Success(n)
	}

	rl := New(Opts{Limit: Every(time.Millisecond), Burst: 1}, run)
	rl.Close()
	rl.Close()

	r := rl.Submit(context.Background(), 1)
	req.Same(ErrStopped, r.Err())
}
