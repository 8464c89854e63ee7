package scoreboard

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTransport indicates the transport URL is empty.
	ErrNoTransport = errors.New("transport must be specified")
	// ErrNoBoardID indicates the board has no ID.
	ErrNoBoardID = errors.New("board id must be specified")
)

// ErrUnknownScheme indicates the transport URL scheme isn't supported.
type ErrUnknownScheme struct {
	Scheme string
}

// Error implements error.
func (e *ErrUnknownScheme) Error() string {
	return fmt.Sprintf("unknown transport URL scheme: %q", e.Scheme)
}

// ErrInvalidCapacity indicates a queue capacity which can't hold a value.
type ErrInvalidCapacity struct {
	Capacity int
}

// Error implements error.
func (e *ErrInvalidCapacity) Error() string {
	return fmt.Sprintf("invalid queue capacity %d", e.Capacity)
}

// ErrUnknownOption indicates an invalid value of a named option.
type ErrUnknownOption struct {
	Option string
	Value  string
}

// Error implements error.
func (e *ErrUnknownOption) Error() string {
	return fmt.Sprintf("unknown %s: %q", e.Option, e.Value)
}
