package sender

import (
	"errors"
	"fmt"
)

// Errors returned by the public API. Sentinels can be checked with errors.Is.
var (
	// ErrEmptyServerURL is returned by Build (and defensively by Send)
	// when no root server URL was configured.
	ErrEmptyServerURL = errors.New("pushship: server URL must not be empty")

	// ErrTooManyRedirects is returned when the redirect chain exceeds the
	// configured maximum.
	ErrTooManyRedirects = errors.New("pushship: too many redirects")

	// ErrMissingLocation is returned when a redirect status arrives
	// without a Location header to follow.
	ErrMissingLocation = errors.New("pushship: redirect response without Location header")
)

// TransportError wraps a failure while performing the network call for a
// single submission hop. It unwraps to the underlying cause.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("pushship: post %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
