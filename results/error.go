package results

import "errors"

const unknownFailure = "unknown failure"

// Error describes why an operation failed. It carries at most one message, and a
// message-less Error is distinct from a failure that has no Error at all.
// An Error is immutable once created and is always handled by pointer so that
// the same descriptor can be compared by identity wherever it travels.
type Error struct {
	message    string
	hasMessage bool
}

// NewError creates an Error carrying message.
func NewError(message string) *Error {
	return &Error{message: message, hasMessage: true}
}

// NewBlankError creates an Error without a message.
func NewBlankError() *Error {
	return &Error{}
}

// FromErr converts a Go error into an Error. A nil err yields nil. If err is, or wraps,
// an *Error that descriptor is returned unchanged; otherwise only err's message is kept.
func FromErr(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewError(err.Error())
}

// Message returns the message and whether one was set.
func (e *Error) Message() (string, bool) {
	return e.message, e.hasMessage
}

func (e *Error) Error() string {
	if !e.hasMessage {
		return unknownFailure
	}
	return e.message
}
