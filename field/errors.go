package field

import "errors"

var (
	// ErrInvalidArgument marks inputs of the wrong shape or range. Callers
	// should not retry.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrResourceExhausted marks requests too large to allocate.
	ErrResourceExhausted = errors.New("resource exhausted")
)
