package sender

import (
	"strings"
	"time"

	"github.com/bft-labs/pushship/pkg/log"
)

// DefaultMaxRedirects bounds the redirect chain followed by a single send.
const DefaultMaxRedirects = 5

// DefaultTimeout is the HTTP timeout used when none is configured.
const DefaultTimeout = 30 * time.Second

// Builder accumulates sender configuration and produces an immutable
// PushSender. Setters chain; validation happens in Build, so a zero or
// partially filled builder is never an error by itself.
type Builder struct {
	serverURL         string
	pushApplicationID string
	masterSecret      string
	proxy             *ProxyConfig
	trustStore        *TrustStoreConfig

	timeout      time.Duration
	maxRedirects int
	logger       log.Logger
	transport    Transport

	err error
}

// WithRootServerURL starts a builder pointing at the push server's root URL.
func WithRootServerURL(serverURL string) *Builder {
	return &Builder{serverURL: serverURL}
}

// WithConfigFile starts a builder from a TOML configuration file holding the
// server URL, application credentials, and optional proxy and trust store
// sections. A load failure is remembered and surfaced by Build.
func WithConfigFile(path string) *Builder {
	b := &Builder{}
	fc, err := loadFileConfig(path)
	if err != nil {
		b.err = err
		return b
	}
	applyFileConfig(b, fc)
	return b
}

// PushApplicationID sets the application identifier the sender submits as.
func (b *Builder) PushApplicationID(id string) *Builder {
	b.pushApplicationID = id
	return b
}

// MasterSecret sets the shared secret used to authenticate against the
// push server.
func (b *Builder) MasterSecret(secret string) *Builder {
	b.masterSecret = secret
	return b
}

// CustomTrustStore replaces any previously configured trust store. The path
// is not checked here; loading is deferred to transport construction.
func (b *Builder) CustomTrustStore(path, storeType, password string) *Builder {
	b.trustStore = &TrustStoreConfig{Path: path, Type: storeType, Password: password}
	return b
}

// Proxy sets the proxy host and port. The proxy type defaults to HTTP
// unless ProxyType was or is called; setter order does not matter.
func (b *Builder) Proxy(host string, port int) *Builder {
	p := b.ensureProxy()
	p.Host = host
	p.Port = port
	return b
}

// ProxyUser sets the username for proxy authentication.
func (b *Builder) ProxyUser(user string) *Builder {
	b.ensureProxy().User = user
	return b
}

// ProxyPassword sets the password for proxy authentication.
func (b *Builder) ProxyPassword(password string) *Builder {
	b.ensureProxy().Password = password
	return b
}

// ProxyType sets the proxy protocol (ProxyHTTP or ProxySOCKS).
func (b *Builder) ProxyType(t ProxyType) *Builder {
	b.ensureProxy().Type = t
	return b
}

func (b *Builder) ensureProxy() *ProxyConfig {
	if b.proxy == nil {
		b.proxy = &ProxyConfig{Type: ProxyHTTP}
	}
	return b.proxy
}

// Timeout sets the HTTP timeout for each submission hop.
func (b *Builder) Timeout(d time.Duration) *Builder {
	b.timeout = d
	return b
}

// MaxRedirects caps the redirect chain followed by a single send.
func (b *Builder) MaxRedirects(n int) *Builder {
	b.maxRedirects = n
	return b
}

// Logger sets the logger used by the sender. Defaults to a no-op logger.
func (b *Builder) Logger(l log.Logger) *Builder {
	b.logger = l
	return b
}

// Transport injects a custom transport, replacing the default HTTP one.
// Mainly useful for tests and alternative delivery mechanisms.
func (b *Builder) Transport(t Transport) *Builder {
	b.transport = t
	return b
}

// Build validates the accumulated configuration and returns an immutable
// PushSender. The server URL must be non-empty; it is normalized to end
// with exactly one "/".
func (b *Builder) Build() (*PushSender, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.serverURL == "" {
		return nil, ErrEmptyServerURL
	}

	cfg := Config{
		serverURL:         normalizeServerURL(b.serverURL),
		pushApplicationID: b.pushApplicationID,
		masterSecret:      b.masterSecret,
	}
	if b.proxy != nil {
		p := *b.proxy
		cfg.proxy = &p
	}
	if b.trustStore != nil {
		t := *b.trustStore
		cfg.trustStore = &t
	}

	logger := b.logger
	if logger == nil {
		logger = log.NewNoop()
	}

	timeout := b.timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	maxRedirects := b.maxRedirects
	if maxRedirects <= 0 {
		maxRedirects = DefaultMaxRedirects
	}

	transport := b.transport
	if transport == nil {
		var err error
		transport, err = NewHTTPTransport(cfg, timeout, logger)
		if err != nil {
			return nil, err
		}
	}

	return &PushSender{
		cfg:          cfg,
		transport:    transport,
		logger:       logger,
		maxRedirects: maxRedirects,
	}, nil
}

// normalizeServerURL ensures the URL ends with exactly one trailing slash.
func normalizeServerURL(serverURL string) string {
	return strings.TrimRight(serverURL, "/") + "/"
}
