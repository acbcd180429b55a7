// Package sse streams invalidation signals to connected clients. Events
// carry only the collection topic that changed; clients re-fetch through
// the regular API. This keeps the stream cheap and makes stale pushes
// impossible.
package sse

import "time"

// EventType classifies a stream event.
type EventType string

const (
	EventConnected  EventType = "connected"
	EventHeartbeat  EventType = "heartbeat"
	EventInvalidate EventType = "invalidate"
)

// Event is one message on the stream. Topic is set only for invalidations.
type Event struct {
	Type      EventType `json:"type"`
	Topic     string    `json:"topic,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewInvalidateEvent signals that a collection changed.
func NewInvalidateEvent(topic string) Event {
	return Event{Type: EventInvalidate, Topic: topic, Timestamp: time.Now()}
}

// NewHeartbeatEvent keeps idle connections alive.
func NewHeartbeatEvent() Event {
	return Event{Type: EventHeartbeat, Timestamp: time.Now()}
}
