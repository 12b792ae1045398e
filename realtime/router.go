package realtime

import (
	"context"
	"log/slog"

	"github.com/RaminJll/ChatApp/contract"
	"github.com/RaminJll/ChatApp/domain/event"
)

// Router publishes stored-message events to every connection subscribed to
// their target rooms. Delivery is strictly best-effort: the message is
// already durable when Deliver runs, so a vanished or saturated connection
// is skipped, never retried, and never surfaced to the sender.
type Router struct {
	log   *slog.Logger
	rooms contract.IRoomTracker
}

func NewRouter(log *slog.Logger, rooms contract.IRoomTracker) *Router {
	return &Router{log: log, rooms: rooms}
}

// Deliver fans the event out to the subscribers of each target room,
// exactly once per connection even when a connection is subscribed to more
// than one target room.
func (r *Router) Deliver(ctx context.Context, evt event.MessageReceived) {
	seen := make(map[string]struct{})
	for _, room := range evt.Rooms() {
		for _, sub := range r.rooms.SubscribersOf(room) {
			if _, dup := seen[sub.ID()]; dup {
				continue
			}
			seen[sub.ID()] = struct{}{}

			if err := sub.Consume(ctx, evt); err != nil {
				r.log.Debug("live delivery skipped",
					"conn_id", sub.ID(),
					"room", string(room),
					"message_id", evt.Message.ID,
					"error", err)
			}
		}
	}
}
