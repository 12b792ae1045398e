package contract

import (
	"context"

	"github.com/RaminJll/ChatApp/domain"
	"github.com/RaminJll/ChatApp/domain/event"
)

// EventSink receives domain events bound for one consumer. Implementations
// must not block the caller: delivery is best-effort and a full or closed
// sink returns an error instead of stalling the publish loop.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// Subscriber is a live, authenticated connection as seen by the fan-out
// core: a stable connection id, the identity it belongs to, and its sink.
type Subscriber interface {
	EventSink
	ID() string
	Identity() string
}

// ISessionRegistry tracks which connections belong to which identity.
// All operations are total functions over possibly-absent keys.
type ISessionRegistry interface {
	Register(s Subscriber)
	Remove(connID string)
	ConnectionsFor(identity string) []Subscriber
}

// IRoomTracker maintains the connection→rooms and room→connections indices.
// Join and Leave are idempotent; LeaveAll runs unconditionally on disconnect
// so no subscription outlives its connection.
type IRoomTracker interface {
	Join(s Subscriber, room domain.RoomID)
	Leave(connID string, room domain.RoomID)
	LeaveAll(connID string)
	SubscribersOf(room domain.RoomID) []Subscriber
}

// IDeliverer publishes a stored-message event to every connection currently
// subscribed to its target rooms, exactly once per connection. It never
// fails the caller: the record is already durable and live delivery is a
// best-effort layer on top.
type IDeliverer interface {
	Deliver(ctx context.Context, evt event.MessageReceived)
}
