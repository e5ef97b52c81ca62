package sender

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuild_NormalizesServerURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"no trailing slash", "https://push.example.com", "https://push.example.com/"},
		{"trailing slash kept", "https://push.example.com/", "https://push.example.com/"},
		{"duplicate slashes collapsed", "https://push.example.com//", "https://push.example.com/"},
		{"path without slash", "https://push.example.com/ups", "https://push.example.com/ups/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps, err := WithRootServerURL(tt.url).Transport(newMockTransport(nil)).Build()
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if got := ps.Config().ServerURL(); got != tt.want {
				t.Errorf("ServerURL() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuild_EmptyServerURL(t *testing.T) {
	_, err := WithRootServerURL("").Build()
	if !errors.Is(err, ErrEmptyServerURL) {
		t.Errorf("Build() error = %v, want ErrEmptyServerURL", err)
	}
}

func TestBuild_ConfigFileWithoutServerURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("push_application_id = \"app\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := WithConfigFile(path).Build()
	if !errors.Is(err, ErrEmptyServerURL) {
		t.Errorf("Build() error = %v, want ErrEmptyServerURL", err)
	}
}

func TestBuild_ConfigFileMissing(t *testing.T) {
	_, err := WithConfigFile(filepath.Join(t.TempDir(), "nope.toml")).Build()
	if err == nil {
		t.Error("Build() error = nil, want load failure")
	}
}

func TestBuilder_ProxyOrderIndependence(t *testing.T) {
	a, err := WithRootServerURL("https://a").
		ProxyType(ProxySOCKS).
		Proxy("proxy.local", 1080).
		ProxyUser("u").
		Transport(newMockTransport(nil)).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	b, err := WithRootServerURL("https://a").
		Proxy("proxy.local", 1080).
		ProxyUser("u").
		ProxyType(ProxySOCKS).
		Transport(newMockTransport(nil)).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	pa, _ := a.Config().Proxy()
	pb, _ := b.Config().Proxy()
	if diff := cmp.Diff(pa, pb); diff != "" {
		t.Errorf("proxy config differs by setter order (-a +b):\n%s", diff)
	}
}

func TestBuilder_ProxyDefaultsToHTTP(t *testing.T) {
	ps, err := WithRootServerURL("https://a").
		Proxy("proxy.local", 3128).
		Transport(newMockTransport(nil)).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	p, ok := ps.Config().Proxy()
	if !ok {
		t.Fatal("Proxy() ok = false, want true")
	}
	if p.Type != ProxyHTTP {
		t.Errorf("proxy type = %v, want %v", p.Type, ProxyHTTP)
	}
}

func TestBuilder_NoProxyByDefault(t *testing.T) {
	ps, err := WithRootServerURL("https://a").Transport(newMockTransport(nil)).Build()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ps.Config().Proxy(); ok {
		t.Error("Proxy() ok = true, want false")
	}
}

func TestBuilder_CustomTrustStoreReplaces(t *testing.T) {
	ps, err := WithRootServerURL("https://a").
		CustomTrustStore("/old/ca.pem", "", "old").
		CustomTrustStore("/new/ca.pem", TrustStoreTypePEM, "new").
		Transport(newMockTransport(nil)).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	store, ok := ps.Config().TrustStore()
	if !ok {
		t.Fatal("TrustStore() ok = false, want true")
	}
	want := TrustStoreConfig{Path: "/new/ca.pem", Type: TrustStoreTypePEM, Password: "new"}
	if diff := cmp.Diff(want, store); diff != "" {
		t.Errorf("trust store mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_TrustStoreLoadFailure(t *testing.T) {
	// Default transport construction loads the trust store eagerly.
	_, err := WithRootServerURL("https://a").
		CustomTrustStore(filepath.Join(t.TempDir(), "missing.pem"), "", "").
		Build()
	if err == nil {
		t.Error("Build() error = nil, want trust store load failure")
	}
}

func TestBuild_SnapshotsBuilderState(t *testing.T) {
	b := WithRootServerURL("https://a").
		PushApplicationID("app").
		Proxy("proxy.local", 3128).
		Transport(newMockTransport(nil))

	ps, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	// Later builder mutation must not leak into the built sender.
	b.ProxyUser("intruder").PushApplicationID("other")

	if got := ps.Config().PushApplicationID(); got != "app" {
		t.Errorf("PushApplicationID() = %v, want app", got)
	}
	p, _ := ps.Config().Proxy()
	if p.User != "" {
		t.Errorf("proxy user = %q, want empty", p.User)
	}
}
