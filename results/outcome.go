// Package results provides outcome values that record whether an operation succeeded or failed.
//
// An Outcome is either a success with no payload or a failure that may carry an *Error.  A Result[T] is
// the same but a success also carries a value of type T.  Both are immutable and safe to share between
// go routines.  The only ways to build them are the constructors in this package: Ok, Failure, FromError,
// Success, FailureOf, New and As.
//
// Reading the payload of the wrong state is a programming error and panics: Err on a success and Value on
// a failure panic with ErrInvalidState, and As on a successful Outcome panics with ErrInvalidCast.  Callers
// are expected to check IsSuccessful/IsFailure or use Match first.  A failure is never reported by panicking.
package results

import (
	"errors"
	"fmt"

	"github.com/abevier/outcome/futures"
)

var (
	// ErrInvalidState is the panic value when Err is read from a success or Value is read from a failure.
	ErrInvalidState = errors.New("results: payload accessed in the wrong state")
	// ErrInvalidCast is the panic value when a successful Outcome is converted to a Result.
	ErrInvalidCast = errors.New("results: successful outcome has no value to convert")
	// ErrUnknown is returned by Result.Get for a failure that carries no Error.
	ErrUnknown = errors.New(unknownFailure)
)

// Outcome is the result of an operation that produces no value.
// The zero value is a failure without an Error.
type Outcome struct {
	ok  bool
	err *Error
}

// Ok returns a successful Outcome.
func Ok() Outcome {
	return Outcome{ok: true}
}

// Failure returns a failed Outcome carrying err, which may be nil.
func Failure(err *Error) Outcome {
	return Outcome{err: err}
}

// FromError converts an Error into a failed Outcome holding that same Error.
func FromError(err *Error) Outcome {
	return Failure(err)
}

func (o Outcome) IsSuccessful() bool {
	return o.ok
}

func (o Outcome) IsFailure() bool {
	return !o.ok
}

// Err returns the Error of a failed Outcome, which may be nil.
// It panics with ErrInvalidState if the Outcome is a success.
func (o Outcome) Err() *Error {
	if o.ok {
		panic(ErrInvalidState)
	}
	return o.err
}

// Match calls onSuccess if the Outcome succeeded and onFailure with its Error otherwise.
func (o Outcome) Match(onSuccess func(), onFailure func(*Error)) {
	if o.ok {
		onSuccess()
		return
	}
	onFailure(o.err)
}

// Match calls onSuccess or onFailure depending on the state of o and returns what the called function returns.
func Match[R any](o Outcome, onSuccess func() R, onFailure func(*Error) R) R {
	if o.ok {
		return onSuccess()
	}
	return onFailure(o.err)
}

// Future wraps the Outcome in an already completed future.
func (o Outcome) Future() *futures.Future[Outcome] {
	return futures.Resolved(o)
}

func (o Outcome) String() string {
	if o.ok {
		return "Ok"
	}
	return failureString(o.err)
}

func failureString(err *Error) string {
	if err == nil {
		return "Failure"
	}
	if msg, ok := err.Message(); ok {
		return fmt.Sprintf("Failure(%q)", msg)
	}
	return "Failure()"
}
