package client

import (
	"errors"
	"fmt"
)

// TransportError means no HTTP response was obtained at all: DNS failure, connection
// refused, timeout, or a connection dropped while reading the body.
type TransportError struct {
	Method string
	URL    string
	Curl   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedBodyError means a response was received but its non-empty body is not JSON.
type MalformedBodyError struct {
	Response *Response
	Err      error
}

func (e *MalformedBodyError) Error() string {
	return fmt.Sprintf("malformed JSON in response to %s %s (status %d): %s",
		e.Response.Method, e.Response.URL, e.Response.StatusCode, e.Err)
}

func (e *MalformedBodyError) Unwrap() error { return e.Err }

// IsTransportError returns true if err is or wraps a *TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
