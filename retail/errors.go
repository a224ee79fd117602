package retail

import (
	"errors"
	"fmt"
)

// ErrMalformedInput is wrapped by every error caused by an input payload that
// cannot be decoded into the expected shape.
var ErrMalformedInput = errors.New("malformed input")

// ErrOutOfRange is wrapped when inputs are valid JSON but the arithmetic
// overflows to a non-finite result.
var ErrOutOfRange = errors.New("result out of range")

// Error records the calculation that failed and why.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// malformed builds an *Error for op that matches ErrMalformedInput.
func malformed(op, format string, args ...any) *Error {
	return &Error{Op: op, Err: fmt.Errorf("%w: %s", ErrMalformedInput, fmt.Sprintf(format, args...))}
}
