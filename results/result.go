package results

import (
	"errors"
	"fmt"

	"github.com/abevier/outcome/futures"
)

// Result is the result of an operation that produces a value of type T when it succeeds.
// The zero value is a failure without an Error.
type Result[T any] struct {
	ok    bool
	err   *Error
	value T
}

// Success returns a successful Result holding value.
func Success[T any](value T) Result[T] {
	return Result[T]{ok: true, value: value}
}

// FailureOf returns a failed Result carrying err, which may be nil.
func FailureOf[T any](err *Error) Result[T] {
	return As[T](Failure(err))
}

// New builds a Result from a value and error pair as returned by most Go functions.
// A nil err produces a success holding val, any other err a failure described by FromErr(err).
// ErrUnknown, as returned by Get for a failure without an Error, produces a failure without an Error.
func New[T any](val T, err error) Result[T] {
	if errors.Is(err, ErrUnknown) {
		return FailureOf[T](nil)
	}
	if err != nil {
		return FailureOf[T](FromErr(err))
	}
	return Success(val)
}

// As converts a failed Outcome into a failed Result[T] holding the same Error.
// A successful Outcome has no value to put in the Result, so As panics with ErrInvalidCast.
func As[T any](o Outcome) Result[T] {
	if o.ok {
		panic(ErrInvalidCast)
	}
	return Result[T]{err: o.err}
}

func (r Result[T]) IsSuccessful() bool {
	return r.ok
}

func (r Result[T]) IsFailure() bool {
	return !r.ok
}

// Err returns the Error of a failed Result, which may be nil.
// It panics with ErrInvalidState if the Result is a success.
func (r Result[T]) Err() *Error {
	if r.ok {
		panic(ErrInvalidState)
	}
	return r.err
}

// Value returns the value of a successful Result.
// It panics with ErrInvalidState if the Result is a failure.
func (r Result[T]) Value() T {
	if !r.ok {
		panic(ErrInvalidState)
	}
	return r.value
}

// Get returns the Result as a value and error pair. A failure always returns a non nil error:
// its Error, or ErrUnknown when it has none.
func (r Result[T]) Get() (T, error) {
	if r.ok {
		return r.value, nil
	}
	if r.err == nil {
		return r.value, ErrUnknown
	}
	return r.value, r.err
}

// Outcome drops the value and keeps the state and Error.
func (r Result[T]) Outcome() Outcome {
	return Outcome{ok: r.ok, err: r.err}
}

// Match calls onSuccess with the value if the Result succeeded and onFailure with its Error otherwise.
func (r Result[T]) Match(onSuccess func(T), onFailure func(*Error)) {
	if r.ok {
		onSuccess(r.value)
		return
	}
	onFailure(r.err)
}

// MatchResult calls onSuccess or onFailure depending on the state of r and returns what the called function returns.
func MatchResult[T any, R any](r Result[T], onSuccess func(T) R, onFailure func(*Error) R) R {
	if r.ok {
		return onSuccess(r.value)
	}
	return onFailure(r.err)
}

// Future wraps the Result in an already completed future.
func (r Result[T]) Future() *futures.Future[Result[T]] {
	return futures.Resolved(r)
}

func (r Result[T]) String() string {
	if r.ok {
		return fmt.Sprintf("Ok(%v)", r.value)
	}
	return failureString(r.err)
}
