package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors Config but uses strings for durations to make TOML
// friendly.
type fileConfig struct {
	ServerURL         string `toml:"server_url"`
	PushApplicationID string `toml:"push_application_id"`
	MasterSecret      string `toml:"master_secret"`

	ProxyHost     string `toml:"proxy_host"`
	ProxyPort     int    `toml:"proxy_port"`
	ProxyUser     string `toml:"proxy_user"`
	ProxyPassword string `toml:"proxy_password"`
	ProxyType     string `toml:"proxy_type"`

	TrustStorePath     string `toml:"trust_store_path"`
	TrustStoreType     string `toml:"trust_store_type"`
	TrustStorePassword string `toml:"trust_store_password"`

	Timeout      string `toml:"timeout"`
	MaxRedirects int    `toml:"max_redirects"`
	SpoolDir     string `toml:"spool_dir"`
}

// LoadFileConfig reads and parses a TOML config file.
func LoadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.pushship/config.toml if the user home
// directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".pushship", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc fileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("server-url", fc.ServerURL, &cfg.ServerURL)
	s.setString("app-id", fc.PushApplicationID, &cfg.PushApplicationID)
	s.setString("master-secret", fc.MasterSecret, &cfg.MasterSecret)

	s.setString("proxy-host", fc.ProxyHost, &cfg.ProxyHost)
	s.setInt("proxy-port", fc.ProxyPort, &cfg.ProxyPort)
	s.setString("proxy-user", fc.ProxyUser, &cfg.ProxyUser)
	s.setString("proxy-password", fc.ProxyPassword, &cfg.ProxyPassword)
	s.setString("proxy-type", fc.ProxyType, &cfg.ProxyType)

	s.setString("trust-store", fc.TrustStorePath, &cfg.TrustStorePath)
	s.setString("trust-store-type", fc.TrustStoreType, &cfg.TrustStoreType)
	s.setString("trust-store-password", fc.TrustStorePassword, &cfg.TrustStorePassword)

	if err := s.setDuration("timeout", fc.Timeout, &cfg.Timeout); err != nil {
		return err
	}
	s.setInt("max-redirects", fc.MaxRedirects, &cfg.MaxRedirects)
	s.setString("spool-dir", fc.SpoolDir, &cfg.SpoolDir)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
