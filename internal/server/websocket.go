package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/kode4food/sluice/pkg/api"
	"github.com/kode4food/sluice/pkg/events"
	"github.com/kode4food/sluice/pkg/log"
)

type (
	// Client represents a WebSocket client connection for event streaming
	Client struct {
		hub      *events.Hub
		conn     *websocket.Conn
		consumer *events.Consumer
		filter   events.EventFilter
		getState StateFunc
		minSeq   int64
	}

	// StateFunc retrieves the current state and next sequence for an
	// execution. The next sequence is used by clients to detect sequence
	// skew between the snapshot and the event stream
	StateFunc func(api.ExecutionID) (any, int64, error)
)

const (
	writeWait          = 10 * time.Second
	pongWait           = 60 * time.Second
	pingPeriod         = (pongWait * 9) / 10
	maxMessageSize     = 512
	wsBufferSize       = 1024
	incomingBufferSize = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  wsBufferSize,
	WriteBufferSize: wsBufferSize,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NewClient upgrades an HTTP connection to WebSocket. The returned
// client streams nothing until its pump is started with run
func NewClient(
	hub *events.Hub, w http.ResponseWriter, r *http.Request, st StateFunc,
) (*Client, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("WebSocket upgrade failed",
			log.Error(err))
		return nil, err
	}

	noopFilter := func(*events.Event) bool { return false }
	return &Client{
		hub:      hub,
		conn:     conn,
		consumer: hub.NewConsumer(),
		filter:   noopFilter,
		getState: st,
	}, nil
}

// HandleWebSocket upgrades an HTTP connection to WebSocket and starts
// streaming events based on client subscriptions
func HandleWebSocket(
	hub *events.Hub, w http.ResponseWriter, r *http.Request, st StateFunc,
) {
	client, err := NewClient(hub, w, r, st)
	if err != nil {
		return
	}
	go client.run()
}

func (s *Server) handleWebSocket(c *gin.Context) {
	client, err := NewClient(s.hub, c.Writer, c.Request,
		func(id api.ExecutionID) (any, int64, error) {
			return s.engine.ExecutionStateSeq(id)
		},
	)
	if err != nil {
		return
	}

	s.registerWebSocket(client)
	go func() {
		client.run()
		s.unregisterWebSocket(client)
	}()
}

// Close shuts the client down, sending a close frame and releasing the
// connection. The pump's read loop notices and unwinds
func (c *Client) Close() {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(
			websocket.CloseGoingAway, "server shutdown",
		))
	_ = c.conn.Close()
}

func (c *Client) run() {
	defer func() {
		c.consumer.Close()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	incoming := make(chan []byte, incomingBufferSize)
	go c.readMessages(incoming)

	for {
		select {
		case message, ok := <-incoming:
			if !ok {
				return
			}
			c.handleSubscribe(message)

		case event, ok := <-c.consumer.Receive():
			if !ok {
				_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if !c.sendEventIfMatched(event) {
				return
			}

		case <-ticker.C:
			if !c.sendPing() {
				return
			}
		}
	}
}

func (c *Client) readMessages(incoming chan []byte) {
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			close(incoming)
			return
		}
		incoming <- message
	}
}

func (c *Client) handleSubscribe(message []byte) {
	var sub api.SubscribeRequest
	if err := json.Unmarshal(message, &sub); err != nil {
		slog.Error("Failed to parse WebSocket message",
			log.Error(err))
		return
	}

	if sub.Type != "subscribe" {
		return
	}

	c.filter = BuildFilter(&sub.Data)

	if sub.Data.ExecutionID != "" {
		c.sendSubscribeState(sub.Data.ExecutionID)
	}
}

func (c *Client) sendSubscribeState(id api.ExecutionID) {
	if c.getState == nil {
		return
	}

	state, nextSeq, err := c.getState(id)
	if err != nil {
		slog.Error("Failed to get state for subscription",
			log.ExecutionID(id),
			log.Error(err))
		return
	}

	data, err := json.Marshal(state)
	if err != nil {
		slog.Error("Failed to marshal state",
			log.ExecutionID(id),
			log.Error(err))
		return
	}

	c.minSeq = nextSeq

	msg := api.SubscribedResult{
		Type:        "subscribed",
		ExecutionID: id,
		Data:        data,
		Sequence:    nextSeq,
	}

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(msg); err != nil {
		slog.Error("WebSocket write failed",
			slog.String("context", "subscribed"),
			log.Error(err))
	}
}

func (c *Client) sendEventIfMatched(event *events.Event) bool {
	if event.Sequence < c.minSeq || !c.filter(event) {
		return true
	}

	wsEvent := c.transformEvent(event)
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(wsEvent); err != nil {
		slog.Error("WebSocket write failed",
			log.Error(err))
		return false
	}
	return true
}

func (c *Client) transformEvent(ev *events.Event) *api.WebSocketEvent {
	return &api.WebSocketEvent{
		Type:        ev.Type,
		Data:        ev.Data,
		ExecutionID: ev.ExecutionID,
		FlowID:      ev.FlowID,
		Timestamp:   ev.Timestamp.UnixMilli(),
		Sequence:    ev.Sequence,
	}
}

func (c *Client) sendPing() bool {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	err := c.conn.WriteMessage(websocket.PingMessage, nil)
	return err == nil
}

// BuildFilter creates an event filter from a client's subscription
// preferences. An empty subscription matches every event
func BuildFilter(sub *api.ClientSubscription) events.EventFilter {
	var executionFilter events.EventFilter
	if sub.ExecutionID != "" {
		executionFilter = events.FilterExecution(sub.ExecutionID)
	}

	var eventTypeFilter events.EventFilter
	if len(sub.EventTypes) > 0 {
		eventTypeFilter = events.FilterEvents(sub.EventTypes...)
	}

	switch {
	case executionFilter != nil && eventTypeFilter != nil:
		return events.AndFilters(executionFilter, eventTypeFilter)
	case executionFilter != nil:
		return executionFilter
	case eventTypeFilter != nil:
		return eventTypeFilter
	default:
		return func(*events.Event) bool { return true }
	}
}
