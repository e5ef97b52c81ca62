// Package pushship provides a client for delivering push-notification
// messages to a push server's sender endpoint.
//
// Example usage:
//
//	ps, err := pushship.WithRootServerURL("https://push.example.com").
//	    PushApplicationID("app-id").
//	    MasterSecret("secret").
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	msg := message.New().Alert("hello").Build()
//	status, err := ps.Send(context.Background(), msg)
package pushship

import (
	"github.com/bft-labs/pushship/pkg/sender"
)

// PushSender delivers push messages to a single push server.
// It is safe for concurrent use.
type PushSender = sender.PushSender

// Builder accumulates sender configuration; Build validates it and returns
// an immutable PushSender.
type Builder = sender.Builder

// Config is the immutable configuration held by a PushSender.
type Config = sender.Config

// ProxyConfig describes an outbound proxy for push submissions.
type ProxyConfig = sender.ProxyConfig

// TrustStoreConfig points at a CA bundle used instead of the platform
// trust store.
type TrustStoreConfig = sender.TrustStoreConfig

// Message is an opaque push message; see the message package for the
// standard implementation.
type Message = sender.Message

// RawMessage adapts an already-serialized payload string to Message.
type RawMessage = sender.RawMessage

// Callback receives the outcome of a SendWithCallback call.
type Callback = sender.Callback

// WithRootServerURL starts a builder pointing at the push server's root URL.
func WithRootServerURL(serverURL string) *Builder {
	return sender.WithRootServerURL(serverURL)
}

// WithConfigFile starts a builder from a TOML configuration file.
func WithConfigFile(path string) *Builder {
	return sender.WithConfigFile(path)
}
