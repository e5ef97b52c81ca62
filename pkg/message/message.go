package message

import (
	"encoding/json"
	"fmt"
)

// Attributes is the notification content section of a push message.
type Attributes struct {
	Alert    string                 `json:"alert,omitempty"`
	Sound    string                 `json:"sound,omitempty"`
	Badge    int                    `json:"badge,omitempty"`
	Priority string                 `json:"priority,omitempty"`
	UserData map[string]interface{} `json:"user-data,omitempty"`
}

// Criteria narrows which installations receive the message. Empty criteria
// means a broadcast to every installation of the application.
type Criteria struct {
	Aliases     []string `json:"alias,omitempty"`
	DeviceTypes []string `json:"deviceType,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	Variants    []string `json:"variants,omitempty"`
}

// Options holds delivery options understood by the push server.
type Options struct {
	TTL int `json:"ttl,omitempty"`
}

// UnifiedMessage is one push message in the server's send format.
type UnifiedMessage struct {
	Message  Attributes `json:"message"`
	Criteria *Criteria  `json:"criteria,omitempty"`
	Config   *Options   `json:"config,omitempty"`
}

// Payload serializes the message to the JSON body submitted to the server.
func (m *UnifiedMessage) Payload() (string, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("message: marshal: %w", err)
	}
	return string(b), nil
}

// Builder assembles a UnifiedMessage fluently.
type Builder struct {
	msg UnifiedMessage
}

// New creates an empty message builder.
func New() *Builder {
	return &Builder{}
}

// Alert sets the notification text.
func (b *Builder) Alert(alert string) *Builder {
	b.msg.Message.Alert = alert
	return b
}

// Sound sets the notification sound.
func (b *Builder) Sound(sound string) *Builder {
	b.msg.Message.Sound = sound
	return b
}

// Badge sets the badge count shown on the app icon.
func (b *Builder) Badge(badge int) *Builder {
	b.msg.Message.Badge = badge
	return b
}

// Priority sets the delivery priority hint.
func (b *Builder) Priority(priority string) *Builder {
	b.msg.Message.Priority = priority
	return b
}

// UserData attaches a custom key-value pair passed through to the app.
func (b *Builder) UserData(key string, value interface{}) *Builder {
	if b.msg.Message.UserData == nil {
		b.msg.Message.UserData = map[string]interface{}{}
	}
	b.msg.Message.UserData[key] = value
	return b
}

// Aliases targets specific user aliases.
func (b *Builder) Aliases(aliases ...string) *Builder {
	b.criteria().Aliases = append(b.criteria().Aliases, aliases...)
	return b
}

// DeviceTypes targets specific device types.
func (b *Builder) DeviceTypes(types ...string) *Builder {
	b.criteria().DeviceTypes = append(b.criteria().DeviceTypes, types...)
	return b
}

// Categories targets installations subscribed to the given categories.
func (b *Builder) Categories(categories ...string) *Builder {
	b.criteria().Categories = append(b.criteria().Categories, categories...)
	return b
}

// Variants targets specific application variants by ID.
func (b *Builder) Variants(variants ...string) *Builder {
	b.criteria().Variants = append(b.criteria().Variants, variants...)
	return b
}

// TTL sets how long, in seconds, the server may retain the message for
// offline devices.
func (b *Builder) TTL(seconds int) *Builder {
	if b.msg.Config == nil {
		b.msg.Config = &Options{}
	}
	b.msg.Config.TTL = seconds
	return b
}

func (b *Builder) criteria() *Criteria {
	if b.msg.Criteria == nil {
		b.msg.Criteria = &Criteria{}
	}
	return b.msg.Criteria
}

// Build returns the assembled message. The builder can keep being used;
// Build snapshots the current state.
func (b *Builder) Build() *UnifiedMessage {
	msg := b.msg
	if b.msg.Criteria != nil {
		c := *b.msg.Criteria
		c.Aliases = append([]string(nil), c.Aliases...)
		c.DeviceTypes = append([]string(nil), c.DeviceTypes...)
		c.Categories = append([]string(nil), c.Categories...)
		c.Variants = append([]string(nil), c.Variants...)
		msg.Criteria = &c
	}
	if b.msg.Config != nil {
		o := *b.msg.Config
		msg.Config = &o
	}
	if b.msg.Message.UserData != nil {
		ud := make(map[string]interface{}, len(b.msg.Message.UserData))
		for k, v := range b.msg.Message.UserData {
			ud[k] = v
		}
		msg.Message.UserData = ud
	}
	return &msg
}
