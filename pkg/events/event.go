package events

import "time"

// Message types pushed over the live channel. Viewers key their UI off
// these values, so they are part of the wire contract.
const (
	TypeState     = "state"
	TypeBidUpdate = "bid_update"
	TypeLog       = "log"
)

// Event is the contract for everything that travels over the live bus.
type Event interface {
	// EventType returns the wire type ("state", "bid_update", "log").
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// SnapshotEvent carries a fully composed session snapshot. Payload is the
// already-serialized JSON frame so the hub never touches domain types.
type SnapshotEvent struct {
	Type       string
	Payload    []byte
	OccurredAt time.Time
}

func (e SnapshotEvent) EventType() string {
	return e.Type
}

func (e SnapshotEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// LogEvent carries a human-readable operation notice ({type:"log"}).
type LogEvent struct {
	Message    string
	OccurredAt time.Time
}

func (e LogEvent) EventType() string {
	return TypeLog
}

func (e LogEvent) Timestamp() time.Time {
	return e.OccurredAt
}
