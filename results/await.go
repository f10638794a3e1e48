package results

import (
	"context"

	"github.com/abevier/outcome/futures"
)

// Await waits for a future that resolves to a Result and returns that Result.  If the future itself
// fails, or ctx is done first, the returned Result is a failure described by that error.
func Await[T any](ctx context.Context, f *futures.Future[Result[T]]) Result[T] {
	r, err := f.Get(ctx)
	if err != nil {
		return FailureOf[T](FromErr(err))
	}
	return r
}

// ResolveAll waits for all of the provided Futures to complete and returns a Result for each
// future at the index corresponding to the provided slice.
// If the provided context is canceled, the cancellation error will be returned as an error by this function.
func ResolveAll[T any](ctx context.Context, fs []*futures.Future[T]) ([]Result[T], error) {
	res := make([]Result[T], 0, len(fs))

	for _, f := range fs {
		v, err := f.Get(ctx)
		// check for error before keeping the value so a canceled Get is never recorded as a task failure
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		res = append(res, New(v, err))
	}

	return res, nil
}
