package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/pushship/internal/cliconfig"
	"github.com/bft-labs/pushship/internal/spool"
	pkglog "github.com/bft-labs/pushship/pkg/log"
	"github.com/bft-labs/pushship/pkg/message"
	"github.com/bft-labs/pushship/pkg/sender"
)

const helpDescription = `
Deliver push notifications to a push server's sender endpoint.

Highlights:
  - Authenticates with application ID and master secret over HTTP Basic.
  - Follows 301/302/303 redirects while preserving method, body, and credentials.
  - Routes through an HTTP or SOCKS proxy and custom CA bundles when configured.
  - Configure via file ($HOME/.pushship/config.toml), PUSHSHIP_* env, or flags.
`

var exampleUsage = strings.TrimSpace(`
  pushship --server-url https://push.example.com --app-id <id> --master-secret <secret> --alert "hello"
  pushship --config ./push.toml --payload-file message.json
  pushship watch --spool-dir /var/spool/pushship
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	// Message flags (send command only).
	var (
		alert       string
		sound       string
		badge       int
		priority    string
		ttl         int
		aliases     []string
		deviceTypes []string
		categories  []string
		variants    []string
		userData    map[string]string
		payloadFile string
	)

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "pushship",
		Short:   "Deliver push notifications to a push server",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, &cfg, cfgPath); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logConfig(cfg, log)

			ps, err := buildSender(cfg)
			if err != nil {
				return err
			}

			var msg sender.Message
			if payloadFile != "" {
				raw, err := os.ReadFile(payloadFile)
				if err != nil {
					return fmt.Errorf("read payload file: %w", err)
				}
				msg = sender.RawMessage(raw)
			} else {
				b := message.New().
					Alert(alert).
					Sound(sound).
					Badge(badge).
					Priority(priority).
					Aliases(aliases...).
					DeviceTypes(deviceTypes...).
					Categories(categories...).
					Variants(variants...)
				if ttl > 0 {
					b.TTL(ttl)
				}
				for k, v := range userData {
					b.UserData(k, v)
				}
				msg = b.Build()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			status, err := ps.Send(ctx, msg)
			if err != nil {
				return err
			}

			log.Info().Int("status", status).Msg("push submitted")
			if status/100 != 2 {
				return fmt.Errorf("push server returned status %d", status)
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to config file (default $HOME/.pushship/config.toml)")
	pf.StringVar(&cfg.ServerURL, "server-url", cfg.ServerURL, "push server root URL")
	pf.StringVar(&cfg.PushApplicationID, "app-id", cfg.PushApplicationID, "push application ID")
	pf.StringVar(&cfg.MasterSecret, "master-secret", cfg.MasterSecret, "master secret (or PUSHSHIP_MASTER_SECRET)")
	pf.StringVar(&cfg.ProxyHost, "proxy-host", cfg.ProxyHost, "proxy hostname")
	pf.IntVar(&cfg.ProxyPort, "proxy-port", cfg.ProxyPort, "proxy port")
	pf.StringVar(&cfg.ProxyUser, "proxy-user", cfg.ProxyUser, "proxy username")
	pf.StringVar(&cfg.ProxyPassword, "proxy-password", cfg.ProxyPassword, "proxy password")
	pf.StringVar(&cfg.ProxyType, "proxy-type", cfg.ProxyType, "proxy type (http or socks5)")
	pf.StringVar(&cfg.TrustStorePath, "trust-store", cfg.TrustStorePath, "path to a PEM CA bundle")
	pf.StringVar(&cfg.TrustStoreType, "trust-store-type", cfg.TrustStoreType, "trust store type")
	pf.StringVar(&cfg.TrustStorePassword, "trust-store-password", cfg.TrustStorePassword, "trust store password")
	pf.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "HTTP timeout per submission hop")
	pf.IntVar(&cfg.MaxRedirects, "max-redirects", cfg.MaxRedirects, "maximum redirects followed per send")

	f := root.Flags()
	f.StringVar(&alert, "alert", "", "notification text")
	f.StringVar(&sound, "sound", "", "notification sound")
	f.IntVar(&badge, "badge", 0, "badge count")
	f.StringVar(&priority, "priority", "", "delivery priority hint")
	f.IntVar(&ttl, "ttl", 0, "message time-to-live in seconds")
	f.StringSliceVar(&aliases, "alias", nil, "target user alias (repeatable)")
	f.StringSliceVar(&deviceTypes, "device-type", nil, "target device type (repeatable)")
	f.StringSliceVar(&categories, "category", nil, "target category (repeatable)")
	f.StringSliceVar(&variants, "variant", nil, "target variant ID (repeatable)")
	f.StringToStringVar(&userData, "data", nil, "custom user-data entry as key=value (repeatable)")
	f.StringVar(&payloadFile, "payload-file", "", "send a pre-serialized JSON payload instead of building one from flags")

	watch := &cobra.Command{
		Use:   "watch",
		Short: "Watch a spool directory and deliver payload files as they appear",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, &cfg, cfgPath); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if cfg.SpoolDir == "" {
				return fmt.Errorf("spool-dir is required")
			}
			logConfig(cfg, log)

			ps, err := buildSender(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log.Info().Str("dir", cfg.SpoolDir).Msg("watching spool directory")
			w := spool.New(cfg.SpoolDir, ps, pkglog.NewZerologWithLogger(log))
			if err := w.Run(ctx); err != nil && err != context.Canceled {
				return err
			}
			return nil
		},
	}
	watch.Flags().StringVar(&cfg.SpoolDir, "spool-dir", cfg.SpoolDir, "directory to watch for *.json payload files")

	root.AddCommand(watch)

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("pushship failed")
		os.Exit(1)
	}
}

// loadConfig layers file and environment configuration under explicitly set
// flags.
func loadConfig(cmd *cobra.Command, cfg *cliconfig.Config, cfgPath string) error {
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })
	cmd.InheritedFlags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	}

	return cliconfig.ApplyEnvConfig(cfg, changed)
}

// buildSender translates CLI configuration into a built push sender.
func buildSender(cfg cliconfig.Config) (*sender.PushSender, error) {
	b := sender.WithRootServerURL(cfg.ServerURL).
		PushApplicationID(cfg.PushApplicationID).
		MasterSecret(cfg.MasterSecret).
		Timeout(cfg.Timeout).
		MaxRedirects(cfg.MaxRedirects).
		Logger(pkglog.NewZerologWithLogger(cliconfig.Logger()))

	if cfg.ProxyHost != "" {
		b.Proxy(cfg.ProxyHost, cfg.ProxyPort)
		if cfg.ProxyUser != "" {
			b.ProxyUser(cfg.ProxyUser)
		}
		if cfg.ProxyPassword != "" {
			b.ProxyPassword(cfg.ProxyPassword)
		}
		if cfg.ProxyType != "" {
			b.ProxyType(sender.ProxyType(cfg.ProxyType))
		}
	}
	if cfg.TrustStorePath != "" {
		b.CustomTrustStore(cfg.TrustStorePath, cfg.TrustStoreType, cfg.TrustStorePassword)
	}

	return b.Build()
}

// logConfig logs the effective configuration with secrets masked.
func logConfig(cfg cliconfig.Config, log zerolog.Logger) {
	if cfg.MasterSecret != "" {
		cfg.MasterSecret = "*****"
	}
	if cfg.ProxyPassword != "" {
		cfg.ProxyPassword = "*****"
	}
	if cfg.TrustStorePassword != "" {
		cfg.TrustStorePassword = "*****"
	}
	log.Info().Interface("config", cfg).Msg("configuration")
}
