// Package message models the push server's JSON send format. A
// UnifiedMessage carries the notification content (alert, sound, badge,
// custom user data), optional targeting criteria (aliases, device types,
// categories, variants), and delivery options such as time-to-live.
//
// Messages are built fluently and serialized on demand:
//
//	msg := message.New().
//	    Alert("deploy finished").
//	    Sound("default").
//	    Aliases("ops@example.com").
//	    TTL(3600).
//	    Build()
//
// The result satisfies the sender package's Message interface.
package message
