package sender

import (
	"crypto/x509"
	"fmt"
	"net/url"
	"os"
	"strconv"
)

// ProxyType selects the protocol used to reach the proxy.
type ProxyType string

// Supported proxy types.
const (
	ProxyHTTP  ProxyType = "http"
	ProxySOCKS ProxyType = "socks5"
)

// TrustStoreTypePEM is the only supported trust store format: a file with
// one or more PEM-encoded CA certificates.
const TrustStoreTypePEM = "pem"

// ProxyConfig describes an outbound proxy for push submissions.
type ProxyConfig struct {
	Type     ProxyType
	Host     string
	Port     int
	User     string
	Password string
}

// URL renders the proxy as a URL suitable for http.Transport.Proxy.
// An unset type defaults to HTTP.
func (p ProxyConfig) URL() (*url.URL, error) {
	scheme := p.Type
	if scheme == "" {
		scheme = ProxyHTTP
	}
	if scheme != ProxyHTTP && scheme != ProxySOCKS {
		return nil, fmt.Errorf("pushship: unsupported proxy type %q", p.Type)
	}
	if p.Host == "" {
		return nil, fmt.Errorf("pushship: proxy host must not be empty")
	}

	u := &url.URL{
		Scheme: string(scheme),
		Host:   p.Host + ":" + strconv.Itoa(p.Port),
	}
	if p.User != "" {
		u.User = url.UserPassword(p.User, p.Password)
	}
	return u, nil
}

// TrustStoreConfig points at a CA bundle used instead of the platform trust
// store when validating the push server's TLS certificate.
//
// Password is retained for parity with keystore-style trust stores but is
// not used when loading PEM bundles.
type TrustStoreConfig struct {
	Path     string
	Type     string
	Password string
}

// CertPool loads the trust store into a certificate pool.
func (t TrustStoreConfig) CertPool() (*x509.CertPool, error) {
	if t.Type != "" && t.Type != TrustStoreTypePEM {
		return nil, fmt.Errorf("pushship: unsupported trust store type %q", t.Type)
	}

	pem, err := os.ReadFile(t.Path)
	if err != nil {
		return nil, fmt.Errorf("pushship: read trust store: %w", err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("pushship: no certificates found in %s", t.Path)
	}
	return pool, nil
}

// Config is the immutable configuration held by a PushSender. It is built
// once through the Builder and never mutated afterwards, which is what makes
// a single sender safe to share between goroutines.
type Config struct {
	serverURL         string
	pushApplicationID string
	masterSecret      string
	proxy             *ProxyConfig
	trustStore        *TrustStoreConfig
}

// ServerURL returns the root server URL, normalized to end with "/".
func (c Config) ServerURL() string {
	return c.serverURL
}

// PushApplicationID returns the application identifier used for auth.
func (c Config) PushApplicationID() string {
	return c.pushApplicationID
}

// MasterSecret returns the shared secret used for auth.
func (c Config) MasterSecret() string {
	return c.masterSecret
}

// Proxy returns the proxy configuration, if one was set.
func (c Config) Proxy() (ProxyConfig, bool) {
	if c.proxy == nil {
		return ProxyConfig{}, false
	}
	return *c.proxy, true
}

// TrustStore returns the trust store configuration, if one was set.
func (c Config) TrustStore() (TrustStoreConfig, bool) {
	if c.trustStore == nil {
		return TrustStoreConfig{}, false
	}
	return *c.trustStore, true
}
