// Package events provides the in-process hub that fans flow execution
// events out to WebSocket subscribers
package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/kode4food/sluice/pkg/api"
)

type (
	// Event is a single notification published by the engine while it
	// advances a flow execution
	Event struct {
		Type        api.EventType
		ExecutionID api.ExecutionID
		FlowID      api.FlowID
		Data        json.RawMessage
		Timestamp   time.Time
		Sequence    int64
	}

	// Hub fans published events out to its registered consumers. A Hub
	// is safe for concurrent use
	Hub struct {
		mu        sync.Mutex
		consumers map[*Consumer]struct{}
		sequence  int64
		closed    bool
	}

	// Consumer receives events published after it was registered. Slow
	// consumers miss events rather than block the publisher
	Consumer struct {
		hub *Hub
		ch  chan *Event
	}
)

const consumerBufferSize = 64

// NewHub creates an empty Hub
func NewHub() *Hub {
	return &Hub{
		consumers: map[*Consumer]struct{}{},
	}
}

// NewConsumer registers and returns a new consumer. Consumers created
// after Close observe an already-closed receive channel
func (h *Hub) NewConsumer() *Consumer {
	h.mu.Lock()
	defer h.mu.Unlock()

	c := &Consumer{
		hub: h,
		ch:  make(chan *Event, consumerBufferSize),
	}
	if h.closed {
		close(c.ch)
		return c
	}
	h.consumers[c] = struct{}{}
	return c
}

// Publish stamps ev with the next sequence number and delivers it to
// every registered consumer. Delivery never blocks; a consumer whose
// buffer is full misses the event
func (h *Hub) Publish(ev *Event) int64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return h.sequence
	}

	h.sequence++
	ev.Sequence = h.sequence
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	for c := range h.consumers {
		select {
		case c.ch <- ev:
		default:
		}
	}
	return ev.Sequence
}

// NextSequence returns the sequence number the next published event will
// carry. Subscribers snapshot current state and use this to suppress
// events already reflected in that snapshot
func (h *Hub) NextSequence() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sequence + 1
}

// Close shuts the hub down, closing every consumer's receive channel
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for c := range h.consumers {
		delete(h.consumers, c)
		close(c.ch)
	}
}

// Receive returns the channel events are delivered on. The channel is
// closed when the consumer or its hub is closed
func (c *Consumer) Receive() <-chan *Event {
	return c.ch
}

// Close deregisters the consumer and closes its receive channel
func (c *Consumer) Close() {
	h := c.hub
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.consumers[c]; !ok {
		return
	}
	delete(h.consumers, c)
	close(c.ch)
}
