package comm

import (
	"fmt"
	"io"
	"sync"

	"github.com/tidwall/sjson"
)

// HostChannel forwards bus messages to the host as newline-delimited JSON
// envelopes. The host side of the channel is out of scope; anything that
// reads lines works.
type HostChannel struct {
	mu sync.Mutex
	w  io.Writer
}

// NewHostChannel creates a channel writing to w.
func NewHostChannel(w io.Writer) *HostChannel {
	return &HostChannel{w: w}
}

// Send writes one message envelope.
func (c *HostChannel) Send(msg Message) error {
	env, err := sjson.SetBytes([]byte(`{}`), "topic", msg.Topic)
	if err != nil {
		return fmt.Errorf("encode envelope topic: %w", err)
	}
	env, err = sjson.SetRawBytes(env, "payload", msg.Payload)
	if err != nil {
		return fmt.Errorf("encode envelope payload: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.w.Write(append(env, '\n')); err != nil {
		return fmt.Errorf("write envelope: %w", err)
	}
	return nil
}

// Attach subscribes the channel to every message on the bus and returns the
// cancellation func. Write errors are reported through onErr, which may be
// nil.
func (c *HostChannel) Attach(bus *Bus, onErr func(error)) func() {
	return bus.Subscribe("*", func(msg Message) {
		if err := c.Send(msg); err != nil && onErr != nil {
			onErr(err)
		}
	})
}
