// Package events carries the messages the playback and editing core emits to
// its host. The host subscribes by message name; the core never calls the host
// directly.
package events

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Name identifies a kind of message
type Name string

// Message names emitted by the session
const (
	MarkerAdded     Name = "marker.added"
	MarkerUpdated   Name = "marker.updated"
	MarkerDeleted   Name = "marker.deleted"
	MarkerSelected  Name = "marker.selected"
	ButtonAdded     Name = "button.added"
	Navigate        Name = "navigate"
	PlaybackChanged Name = "playback.changed"
	ActiveChanged   Name = "active.changed"
	EditorChanged   Name = "editor.changed"
	VideoLoaded     Name = "video.loaded"
	MediaCommand    Name = "media.command"

	// All subscribes to every message
	All Name = "*"
)

// Message is one emitted event. Payload is one of the payload types below.
type Message struct {
	Name    Name      `json:"name"`
	Payload any       `json:"payload,omitempty"`
	At      time.Time `json:"at"`
}

// Handler receives messages. Handlers run on the publisher's goroutine and must not block.
type Handler func(Message)

type subscription struct {
	id      uint64
	name    Name
	handler Handler
}

// Bus delivers messages synchronously to subscribers in subscription order.
//
// Bus is not safe for concurrent use; it lives on the session's event loop.
type Bus struct {
	subs   []subscription
	nextID uint64
	now    func() time.Time

	published metric.Int64Counter
	delivered metric.Int64Counter
}

// NewBus creates a bus. Counters come from the global OTel meter provider,
// which is a no-op unless the host installs one.
func NewBus() (*Bus, error) {
	b := &Bus{now: time.Now}

	m := meter()

	var err error
	b.published, err = m.Int64Counter(
		"events.published",
		metric.WithDescription("Total messages published"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating published counter: %w", err)
	}

	b.delivered, err = m.Int64Counter(
		"events.delivered",
		metric.WithDescription("Total message deliveries to subscribers"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating delivered counter: %w", err)
	}

	return b, nil
}

// Subscribe registers h for messages called name, or for every message with All.
// The returned func removes the subscription; calling it twice is harmless.
func (b *Bus) Subscribe(name Name, h Handler) func() {
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, name: name, handler: h})

	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers a message to every matching subscriber before returning
func (b *Bus) Publish(name Name, payload any) {
	msg := Message{Name: name, Payload: payload, At: b.now().UTC()}
	attrs := metric.WithAttributes(attribute.String("name", string(name)))
	ctx := context.Background()

	b.published.Add(ctx, 1, attrs)

	// handlers may unsubscribe while we iterate
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)

	for _, s := range subs {
		if s.name != All && s.name != name {
			continue
		}
		s.handler(msg)
		b.delivered.Add(ctx, 1, attrs)
	}
}

// Len returns the number of live subscriptions
func (b *Bus) Len() int {
	return len(b.subs)
}
