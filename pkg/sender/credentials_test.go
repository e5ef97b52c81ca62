package sender

import (
	"encoding/base64"
	"testing"
)

func TestEncodeCredentials(t *testing.T) {
	tests := []struct {
		name   string
		appID  string
		secret string
		want   string
	}{
		{"typical", "app1", "secretX", "YXBwMTpzZWNyZXRY"},
		{"empty pair", "", "", base64.StdEncoding.EncodeToString([]byte(":"))},
		{"non-ascii encodes as UTF-8", "äpp", "geheim", base64.StdEncoding.EncodeToString([]byte("äpp:geheim"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encodeCredentials(tt.appID, tt.secret); got != tt.want {
				t.Errorf("encodeCredentials() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEncodeCredentials_Deterministic(t *testing.T) {
	first := encodeCredentials("app1", "secretX")
	for i := 0; i < 3; i++ {
		if got := encodeCredentials("app1", "secretX"); got != first {
			t.Fatalf("encodeCredentials() = %v, want stable %v", got, first)
		}
	}
}
