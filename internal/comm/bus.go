package comm

import (
	"strings"
	"sync"
)

// Publisher is the outbound capability handed to event producers.
type Publisher interface {
	Publish(msg Message)
}

// Handler receives published messages.
type Handler func(msg Message)

// Bus is a synchronous in-process message bus. Delivery happens on the
// publisher's goroutine in subscription order; the widget is event-loop
// driven, so handlers are expected to be fast and non-blocking.
type Bus struct {
	mu   sync.RWMutex
	next int
	subs []subscription
}

// subscription binds a topic pattern to a handler.
type subscription struct {
	id      int
	pattern string
	handler Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for a topic pattern and returns its
// cancellation func. Patterns are exact topics, or a namespace prefix
// followed by ".*" ("grid.cell.*"), or "*" for everything.
func (b *Bus) Subscribe(pattern string, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	id := b.next
	b.subs = append(b.subs, subscription{id: id, pattern: pattern, handler: h})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the message to every matching subscriber.
func (b *Bus) Publish(msg Message) {
	b.mu.RLock()
	matched := make([]Handler, 0, len(b.subs))
	for _, s := range b.subs {
		if topicMatches(s.pattern, msg.Topic) {
			matched = append(matched, s.handler)
		}
	}
	b.mu.RUnlock()

	for _, h := range matched {
		h(msg)
	}
}

// topicMatches reports whether a topic satisfies a pattern.
func topicMatches(pattern, topic string) bool {
	if pattern == "*" || pattern == topic {
		return true
	}
	if prefix, ok := strings.CutSuffix(pattern, ".*"); ok {
		return strings.HasPrefix(topic, prefix+".")
	}
	return false
}
