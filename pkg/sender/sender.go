package sender

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bft-labs/pushship/pkg/log"
)

// senderEndpoint is the push server's ingestion path, relative to the
// configured root URL.
const senderEndpoint = "rest/sender/"

// Message is an opaque push message. The engine only asks for its
// serialized payload; content is never inspected here.
type Message interface {
	// Payload returns the serialized message body sent as UTF-8 text.
	Payload() (string, error)
}

// RawMessage adapts an already-serialized payload string to Message.
type RawMessage string

// Payload returns the string unchanged.
func (m RawMessage) Payload() (string, error) {
	return string(m), nil
}

// Callback receives the outcome of a SendWithCallback call. Both methods
// are invoked synchronously on the calling goroutine, before the call
// returns.
type Callback interface {
	// OnComplete reports the terminal HTTP status code, verbatim.
	OnComplete(statusCode int)

	// OnError reports a submission failure.
	OnError(err error)
}

// PushSender delivers push messages to a single push server. Its
// configuration is immutable, so one instance can be shared freely between
// goroutines; each Send owns its connection resources privately.
type PushSender struct {
	cfg          Config
	transport    Transport
	logger       log.Logger
	maxRedirects int
}

// Config returns the sender's immutable configuration.
func (s *PushSender) Config() Config {
	return s.cfg
}

// Send delivers msg and blocks until the redirect chain resolves. It
// returns the terminal HTTP status code verbatim; interpreting 2xx versus
// 4xx is left to the caller. All submission failures come back as errors,
// never as panics.
func (s *PushSender) Send(ctx context.Context, msg Message) (int, error) {
	payload, err := msg.Payload()
	if err != nil {
		return 0, fmt.Errorf("pushship: serialize message: %w", err)
	}
	return s.SendPayload(ctx, payload)
}

// SendPayload delivers an already-serialized payload. See Send.
func (s *PushSender) SendPayload(ctx context.Context, payload string) (int, error) {
	if s.cfg.serverURL == "" {
		return 0, ErrEmptyServerURL
	}

	url := s.cfg.serverURL + senderEndpoint
	token := encodeCredentials(s.cfg.pushApplicationID, s.cfg.masterSecret)

	return s.submit(ctx, url, token, payload)
}

// SendWithCallback is a convenience wrapper over Send that reports the
// outcome through cb instead of a return value. A nil callback means the
// outcome is logged and discarded; callers who care about failures should
// prefer Send.
func (s *PushSender) SendWithCallback(ctx context.Context, msg Message, cb Callback) {
	status, err := s.Send(ctx, msg)
	if err != nil {
		if cb != nil {
			cb.OnError(err)
			return
		}
		s.logger.Error("push send failed", log.Err(err))
		return
	}

	if cb != nil {
		cb.OnComplete(status)
		return
	}
	s.logger.Info("push send completed", log.Int("status", status))
}

// submit runs the redirect-resolution loop: POST, and on 301/302/303
// resubmit the identical payload and credentials to the Location target.
// The chain is bounded by maxRedirects.
func (s *PushSender) submit(ctx context.Context, url, token, payload string) (int, error) {
	for redirects := 0; ; redirects++ {
		status, location, err := s.post(ctx, url, token, payload)
		if err != nil {
			return 0, err
		}

		if !isRedirect(status) {
			s.logger.Info("push server response",
				log.String("url", url),
				log.Int("status", status))
			return status, nil
		}

		if redirects >= s.maxRedirects {
			return 0, fmt.Errorf("%w: gave up after %d hops", ErrTooManyRedirects, redirects)
		}
		if location == "" {
			return 0, fmt.Errorf("%w: status %d from %s", ErrMissingLocation, status, url)
		}

		s.logger.Info("following redirect",
			log.Int("status", status),
			log.String("location", location))
		url = location
	}
}

// post performs a single hop and releases the response on every path.
func (s *PushSender) post(ctx context.Context, url, token, payload string) (status int, location string, err error) {
	resp, err := s.transport.Post(ctx, url, token, payload)
	if err != nil {
		return 0, "", &TransportError{URL: url, Err: err}
	}
	defer resp.Close()

	return resp.StatusCode(), resp.Header("Location"), nil
}

// isRedirect reports whether status is one of the three redirect codes that
// trigger resubmission: 301, 302, and 303.
func isRedirect(status int) bool {
	return status == http.StatusMovedPermanently ||
		status == http.StatusFound ||
		status == http.StatusSeeOther
}
