package sender

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bft-labs/pushship/pkg/log"
)

// HTTPTransport is the default Transport over net/http. It honors the
// sender's proxy and trust store configuration and never follows redirects
// itself: the submission loop owns redirect resolution so that method,
// body, and credentials are preserved across hops.
type HTTPTransport struct {
	client HTTPClient
	logger log.Logger
}

// NewHTTPTransport builds a transport for the given configuration. It fails
// if the proxy or trust store configuration cannot be realized.
func NewHTTPTransport(cfg Config, timeout time.Duration, logger log.Logger) (*HTTPTransport, error) {
	tr := &http.Transport{}

	if proxy, ok := cfg.Proxy(); ok {
		proxyURL, err := proxy.URL()
		if err != nil {
			return nil, err
		}
		tr.Proxy = http.ProxyURL(proxyURL)
	}

	if store, ok := cfg.TrustStore(); ok {
		pool, err := store.CertPool()
		if err != nil {
			return nil, err
		}
		tr.TLSClientConfig = &tls.Config{RootCAs: pool}
	}

	client := &http.Client{
		Transport: tr,
		Timeout:   timeout,
		// Hand redirects back to the caller untouched.
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &HTTPTransport{client: client, logger: logger}, nil
}

// NewHTTPTransportWithClient wraps a caller-supplied HTTP client. The client
// must not follow redirects on its own if redirect resolution should keep
// the POST body and credentials.
func NewHTTPTransportWithClient(client HTTPClient, logger log.Logger) *HTTPTransport {
	return &HTTPTransport{client: client, logger: logger}
}

// Post submits the payload as a UTF-8 JSON body with Basic authorization.
func (t *HTTPTransport) Post(ctx context.Context, url, token, payload string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Basic "+token)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}

	t.logger.Debug("push server response",
		log.String("url", url),
		log.Int("status", resp.StatusCode))

	return &httpResponse{resp: resp}, nil
}

// httpResponse adapts *http.Response to the Response interface.
type httpResponse struct {
	resp *http.Response
}

func (r *httpResponse) StatusCode() int {
	return r.resp.StatusCode
}

func (r *httpResponse) Header(name string) string {
	return r.resp.Header.Get(name)
}

// Close drains and closes the body so the underlying connection can be
// reused for the next hop.
func (r *httpResponse) Close() error {
	_, _ = io.Copy(io.Discard, io.LimitReader(r.resp.Body, 1<<20))
	return r.resp.Body.Close()
}
