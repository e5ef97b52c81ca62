// Package sender implements the push-server submission engine: it delivers
// an already-serialized push message to the server's sender endpoint with
// HTTP Basic credentials, optionally through a proxy and a custom TLS trust
// store, and resolves redirects until a terminal status is reached.
//
// # Usage
//
// Build a sender once and reuse it:
//
//	ps, err := sender.WithRootServerURL("https://push.example.com").
//	    PushApplicationID("app-id").
//	    MasterSecret("secret").
//	    Build()
//	if err != nil {
//	    return err
//	}
//
//	status, err := ps.Send(ctx, msg)
//
// The sender is safe for concurrent use; its configuration is immutable
// after Build.
//
// # Custom Transports
//
// Implement the Transport interface (or inject an HTTPClient) to route
// submissions through alternative mechanisms or mocks.
package sender
