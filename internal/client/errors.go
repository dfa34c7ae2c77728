package client

import (
	"errors"
	"fmt"
)

// ErrUnexpectedResponse is returned when a provider answers with a body that
// does not have the expected shape.
var ErrUnexpectedResponse = errors.New("unexpected response shape")

// StatusError is returned for any non-2xx HTTP response.
type StatusError struct {
	StatusCode int
	URL        string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("received non-2xx status code %d from %s", e.StatusCode, e.URL)
}
