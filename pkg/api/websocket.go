package api

import "encoding/json"

type (
	// WebSocketEvent is an event sent to WebSocket clients
	WebSocketEvent struct {
		Type        EventType       `json:"type"`
		Data        json.RawMessage `json:"data"`
		ExecutionID ExecutionID     `json:"execution_id,omitempty"`
		FlowID      FlowID          `json:"flow_id,omitempty"`
		Timestamp   int64           `json:"timestamp"`
		Sequence    int64           `json:"sequence"`
	}

	// SubscribeRequest is sent by clients to subscribe to events
	SubscribeRequest struct {
		Type string             `json:"type"`
		Data ClientSubscription `json:"data"`
	}

	// ClientSubscription configures which events a WebSocket client
	// receives. An empty subscription matches every event
	ClientSubscription struct {
		ExecutionID ExecutionID `json:"execution_id,omitempty"`
		EventTypes  []EventType `json:"event_types,omitempty"`
	}

	// SubscribedResult is sent to clients on subscribe, carrying the
	// current state of the subscribed execution when one was named
	SubscribedResult struct {
		Type        string          `json:"type"`
		ExecutionID ExecutionID     `json:"execution_id,omitempty"`
		Data        json.RawMessage `json:"data,omitempty"`
		Sequence    int64           `json:"sequence"`
	}
)
