// Package realtime implements the fan-out core: the session registry, the
// room membership tracker, and the delivery router. State is owned by
// explicitly constructed instances so tests and future multi-instance
// deployments can build their own.
package realtime

import (
	"context"

	"github.com/google/uuid"

	"github.com/RaminJll/ChatApp/contract"
	"github.com/RaminJll/ChatApp/domain/event"
)

// Conn is one live, authenticated connection. A connection always has
// exactly one identity: the handshake rejects unauthenticated clients
// before a Conn is ever created.
type Conn struct {
	id       string
	identity string
	sink     contract.EventSink
}

func NewConn(identity string, sink contract.EventSink) *Conn {
	return &Conn{id: uuid.NewString(), identity: identity, sink: sink}
}

func (c *Conn) ID() string { return c.id }

func (c *Conn) Identity() string { return c.identity }

func (c *Conn) Consume(ctx context.Context, e event.DomainEvent) error {
	return c.sink.Consume(ctx, e)
}
