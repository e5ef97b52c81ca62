package sender

import (
	"context"
	"net/http"
)

// Transport performs a single authenticated POST of a payload. The default
// implementation is HTTPTransport; tests and alternative delivery paths can
// substitute their own.
type Transport interface {
	// Post submits payload to url. token is the pre-encoded Basic
	// credential value; scheme framing is the transport's concern.
	Post(ctx context.Context, url, token, payload string) (Response, error)
}

// Response is a single submission hop's result. Close must be called on
// every Response, including ones the caller abandons.
type Response interface {
	// StatusCode returns the numeric HTTP status.
	StatusCode() int

	// Header resolves a response header; it must at minimum resolve
	// "Location" for redirect handling.
	Header(name string) string

	// Close releases the underlying connection resources.
	Close() error
}

// HTTPClient abstracts HTTP request execution for testing and custom
// transports. The standard *http.Client satisfies this interface.
type HTTPClient interface {
	// Do sends an HTTP request and returns an HTTP response.
	Do(req *http.Request) (*http.Response, error)
}
