package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	t.Setenv("PUSHSHIP_SERVER_URL", "https://env.example.com")
	t.Setenv("PUSHSHIP_APP_ID", "env-app")
	t.Setenv("PUSHSHIP_PROXY_PORT", "1080")
	t.Setenv("PUSHSHIP_TIMEOUT", "15s")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, map[string]bool{}); err != nil {
		t.Fatalf("ApplyEnvConfig() error = %v", err)
	}

	if cfg.ServerURL != "https://env.example.com" {
		t.Errorf("ServerURL = %v", cfg.ServerURL)
	}
	if cfg.PushApplicationID != "env-app" {
		t.Errorf("PushApplicationID = %v", cfg.PushApplicationID)
	}
	if cfg.ProxyPort != 1080 {
		t.Errorf("ProxyPort = %v, want 1080", cfg.ProxyPort)
	}
	if cfg.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", cfg.Timeout)
	}
}

func TestApplyEnvConfig_FlagsWin(t *testing.T) {
	t.Setenv("PUSHSHIP_APP_ID", "env-app")

	cfg := DefaultConfig()
	cfg.PushApplicationID = "flag-app"
	if err := ApplyEnvConfig(&cfg, map[string]bool{"app-id": true}); err != nil {
		t.Fatalf("ApplyEnvConfig() error = %v", err)
	}

	if cfg.PushApplicationID != "flag-app" {
		t.Errorf("PushApplicationID = %v, want flag value preserved", cfg.PushApplicationID)
	}
}

func TestApplyEnvConfig_BadInt(t *testing.T) {
	t.Setenv("PUSHSHIP_PROXY_PORT", "eighty")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, map[string]bool{}); err == nil {
		t.Error("ApplyEnvConfig() error = nil, want parse failure")
	}
}
