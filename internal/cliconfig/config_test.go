package cliconfig

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.MaxRedirects != 5 {
		t.Errorf("MaxRedirects = %v, want 5", cfg.MaxRedirects)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.ServerURL = "https://push.example.com"
		cfg.PushApplicationID = "app"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid minimal config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing server url",
			mutate:  func(c *Config) { c.ServerURL = "" },
			wantErr: true,
		},
		{
			name:    "missing app id",
			mutate:  func(c *Config) { c.PushApplicationID = "" },
			wantErr: true,
		},
		{
			name: "proxy host without port",
			mutate: func(c *Config) {
				c.ProxyHost = "proxy.local"
			},
			wantErr: true,
		},
		{
			name: "proxy port without host",
			mutate: func(c *Config) {
				c.ProxyPort = 3128
			},
			wantErr: true,
		},
		{
			name: "proxy host and port",
			mutate: func(c *Config) {
				c.ProxyHost = "proxy.local"
				c.ProxyPort = 3128
			},
		},
		{
			name: "proxy port out of range",
			mutate: func(c *Config) {
				c.ProxyHost = "proxy.local"
				c.ProxyPort = 70000
			},
			wantErr: true,
		},
		{
			name:    "non-positive timeout",
			mutate:  func(c *Config) { c.Timeout = 0 },
			wantErr: true,
		},
		{
			name:    "negative max redirects",
			mutate:  func(c *Config) { c.MaxRedirects = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
