package sender

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors the builder's fields for TOML parsing.
type fileConfig struct {
	ServerURL         string `toml:"server_url"`
	PushApplicationID string `toml:"push_application_id"`
	MasterSecret      string `toml:"master_secret"`

	Proxy *struct {
		Type     string `toml:"type"`
		Host     string `toml:"host"`
		Port     int    `toml:"port"`
		User     string `toml:"user"`
		Password string `toml:"password"`
	} `toml:"proxy"`

	TrustStore *struct {
		Path     string `toml:"path"`
		Type     string `toml:"type"`
		Password string `toml:"password"`
	} `toml:"trust_store"`
}

// loadFileConfig reads and parses a TOML sender configuration file.
func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("pushship: load config: %w", err)
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("pushship: parse config: %w", err)
	}
	return fc, nil
}

// applyFileConfig copies file values into the builder.
func applyFileConfig(b *Builder, fc fileConfig) {
	b.serverURL = fc.ServerURL
	b.pushApplicationID = fc.PushApplicationID
	b.masterSecret = fc.MasterSecret

	if fc.Proxy != nil {
		b.proxy = &ProxyConfig{
			Type:     ProxyType(fc.Proxy.Type),
			Host:     fc.Proxy.Host,
			Port:     fc.Proxy.Port,
			User:     fc.Proxy.User,
			Password: fc.Proxy.Password,
		}
		if b.proxy.Type == "" {
			b.proxy.Type = ProxyHTTP
		}
	}

	if fc.TrustStore != nil {
		b.trustStore = &TrustStoreConfig{
			Path:     fc.TrustStore.Path,
			Type:     fc.TrustStore.Type,
			Password: fc.TrustStore.Password,
		}
	}
}
