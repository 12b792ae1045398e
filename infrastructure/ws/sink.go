package ws

import (
	"context"
	"fmt"

	"github.com/RaminJll/ChatApp/domain/event"
)

// ErrBufferFull reports a saturated connection; the router logs and moves
// on, it never blocks a publish on a slow client.
var ErrBufferFull = fmt.Errorf("connection buffer full, event dropped")

// ConnSink buffers events bound for a single websocket connection. Consume
// is called by the Delivery Router; the connection's write pump drains the
// channel, so per-connection ordering follows the order of Consume calls.
type ConnSink struct {
	events chan event.DomainEvent
}

func NewConnSink(bufferSize int) *ConnSink {
	return &ConnSink{events: make(chan event.DomainEvent, bufferSize)}
}

func (s *ConnSink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case s.events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrBufferFull
	}
}

func (s *ConnSink) Events() <-chan event.DomainEvent {
	return s.events
}
