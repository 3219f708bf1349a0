package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable marks transport failures: no response was received
	// (network down, DNS failure, request timeout).
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized marks responses that reject the bearer token.
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is the normalized failure every gateway call returns. StatusCode is
// zero for transport failures. Match categories with errors.Is against the
// package sentinels.
type Error struct {
	Message    string
	StatusCode int
	RawBody    []byte
	err        error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

func (e *Error) Unwrap() error {
	return e.err
}
