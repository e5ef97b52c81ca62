package cliconfig

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the CLI's configuration, assembled from defaults, the config
// file, PUSHSHIP_* environment variables, and flags (in increasing order of
// precedence).
type Config struct {
	ServerURL         string
	PushApplicationID string
	MasterSecret      string

	ProxyHost     string
	ProxyPort     int
	ProxyUser     string
	ProxyPassword string
	ProxyType     string

	TrustStorePath     string
	TrustStoreType     string
	TrustStorePassword string

	Timeout      time.Duration
	MaxRedirects int

	// SpoolDir is only used by the watch subcommand.
	SpoolDir string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Timeout:      30 * time.Second,
		MaxRedirects: 5,
		MasterSecret: os.Getenv("PUSHSHIP_MASTER_SECRET"),
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server-url is required")
	}
	if c.PushApplicationID == "" {
		return fmt.Errorf("app-id is required")
	}
	if c.ProxyHost != "" && (c.ProxyPort <= 0 || c.ProxyPort > 65535) {
		return fmt.Errorf("proxy-port must be in 1..65535 when proxy-host is set")
	}
	if c.ProxyHost == "" && c.ProxyPort != 0 {
		return fmt.Errorf("proxy-host is required when proxy-port is set")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxRedirects < 0 {
		return fmt.Errorf("max-redirects must not be negative")
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't been
// explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not
// changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}
