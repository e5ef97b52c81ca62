package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables
// (PUSHSHIP_*). It respects flags that have been explicitly set (changed
// map). Returns an error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("server-url", os.Getenv("PUSHSHIP_SERVER_URL"), &cfg.ServerURL)
	s.setString("app-id", os.Getenv("PUSHSHIP_APP_ID"), &cfg.PushApplicationID)
	s.setString("master-secret", os.Getenv("PUSHSHIP_MASTER_SECRET"), &cfg.MasterSecret)

	s.setString("proxy-host", os.Getenv("PUSHSHIP_PROXY_HOST"), &cfg.ProxyHost)
	if err := s.setIntFromString("proxy-port", os.Getenv("PUSHSHIP_PROXY_PORT"), &cfg.ProxyPort); err != nil {
		return err
	}
	s.setString("proxy-user", os.Getenv("PUSHSHIP_PROXY_USER"), &cfg.ProxyUser)
	s.setString("proxy-password", os.Getenv("PUSHSHIP_PROXY_PASSWORD"), &cfg.ProxyPassword)
	s.setString("proxy-type", os.Getenv("PUSHSHIP_PROXY_TYPE"), &cfg.ProxyType)

	s.setString("trust-store", os.Getenv("PUSHSHIP_TRUST_STORE"), &cfg.TrustStorePath)
	s.setString("trust-store-type", os.Getenv("PUSHSHIP_TRUST_STORE_TYPE"), &cfg.TrustStoreType)
	s.setString("trust-store-password", os.Getenv("PUSHSHIP_TRUST_STORE_PASSWORD"), &cfg.TrustStorePassword)

	if err := s.setDuration("timeout", os.Getenv("PUSHSHIP_TIMEOUT"), &cfg.Timeout); err != nil {
		return err
	}
	if err := s.setIntFromString("max-redirects", os.Getenv("PUSHSHIP_MAX_REDIRECTS"), &cfg.MaxRedirects); err != nil {
		return err
	}
	s.setString("spool-dir", os.Getenv("PUSHSHIP_SPOOL_DIR"), &cfg.SpoolDir)

	return nil
}
