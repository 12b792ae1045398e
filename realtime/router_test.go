package realtime

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/RaminJll/ChatApp/domain"
	"github.com/RaminJll/ChatApp/domain/event"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func directEvent(authorID, recipientID string) event.MessageReceived {
	return event.MessageReceived{
		Message: domain.Message{
			ID:        uuid.New(),
			Content:   "hello",
			AuthorID:  authorID,
			CreatedAt: time.Now().UTC(),
		},
		RecipientID: &recipientID,
	}
}

func groupEvent(authorID, groupID string) event.MessageReceived {
	return event.MessageReceived{
		Message: domain.Message{
			ID:        uuid.New(),
			Content:   "hello group",
			AuthorID:  authorID,
			GroupID:   &groupID,
			CreatedAt: time.Now().UTC(),
		},
	}
}

func TestRouter_DirectMessageReachesBothPersonalRooms(t *testing.T) {
	req := require.New(t)
	tracker := NewRoomTracker()
	router := NewRouter(discardLogger(), tracker)

	// Given author and recipient each hold one connection
	author := &fakeSub{id: "c1", identity: "u1"}
	recipient := &fakeSub{id: "c2", identity: "u2"}
	tracker.Join(author, domain.PersonalRoom("u1"))
	tracker.Join(recipient, domain.PersonalRoom("u2"))

	// When a direct message from u1 to u2 is delivered
	router.Deliver(context.Background(), directEvent("u1", "u2"))

	// Then each connection receives it exactly once (author echo included)
	req.Len(author.events, 1)
	req.Len(recipient.events, 1)
}

func TestRouter_DuplicateRoomMembershipDeliversOnce(t *testing.T) {
	req := require.New(t)
	tracker := NewRoomTracker()
	router := NewRouter(discardLogger(), tracker)

	// Given one connection subscribed to both target rooms of the event
	self := &fakeSub{id: "c1", identity: "u1"}
	tracker.Join(self, domain.PersonalRoom("u1"))
	tracker.Join(self, domain.PersonalRoom("u2"))

	// When an event targets both rooms
	router.Deliver(context.Background(), directEvent("u1", "u2"))

	// Then the connection consumes a single copy
	req.Len(self.events, 1)
}

func TestRouter_GroupMessageSkipsUnsubscribedMembers(t *testing.T) {
	req := require.New(t)
	tracker := NewRoomTracker()
	router := NewRouter(discardLogger(), tracker)

	// Given u1 and u2 subscribed to the group room; u3 is a persisted
	// member but has not joined the room (conversation not open)
	sub1 := &fakeSub{id: "c1", identity: "u1"}
	sub2 := &fakeSub{id: "c2", identity: "u2"}
	outsider := &fakeSub{id: "c3", identity: "u3"}
	tracker.Join(sub1, domain.GroupRoom("g1"))
	tracker.Join(sub2, domain.GroupRoom("g1"))
	tracker.Join(outsider, domain.PersonalRoom("u3"))

	// When a group message is delivered
	router.Deliver(context.Background(), groupEvent("u1", "g1"))

	// Then only room subscribers receive it
	req.Len(sub1.events, 1)
	req.Len(sub2.events, 1)
	req.Empty(outsider.events)
}

func TestRouter_FailingSinkDoesNotBlockOthers(t *testing.T) {
	req := require.New(t)
	tracker := NewRoomTracker()
	router := NewRouter(discardLogger(), tracker)

	// Given three subscribers, the middle one saturated
	healthy1 := &fakeSub{id: "c1", identity: "u1"}
	saturated := &fakeSub{id: "c2", identity: "u2", err: errors.New("buffer full")}
	healthy2 := &fakeSub{id: "c3", identity: "u3"}
	tracker.Join(healthy1, domain.GroupRoom("g1"))
	tracker.Join(saturated, domain.GroupRoom("g1"))
	tracker.Join(healthy2, domain.GroupRoom("g1"))

	// When a group message is delivered
	router.Deliver(context.Background(), groupEvent("u1", "g1"))

	// Then the healthy subscribers still receive it
	req.Len(healthy1.events, 1)
	req.Len(healthy2.events, 1)
	req.Empty(saturated.events)
}

func TestRouter_NoSubscribersIsSilent(t *testing.T) {
	tracker := NewRoomTracker()
	router := NewRouter(discardLogger(), tracker)

	// Delivering into empty rooms must not panic or error
	router.Deliver(context.Background(), groupEvent("u1", "empty-group"))
}

func TestRouter_ReconnectMissesMessagesSentWhileOffline(t *testing.T) {
	req := require.New(t)
	tracker := NewRoomTracker()
	router := NewRouter(discardLogger(), tracker)

	// Given a subscriber that disconnects
	conn := &fakeSub{id: "c1", identity: "u2"}
	tracker.Join(conn, domain.PersonalRoom("u2"))
	tracker.LeaveAll("c1")

	// When a message is sent during the gap
	router.Deliver(context.Background(), directEvent("u1", "u2"))

	// Then nothing is queued for the dead connection; history backfill is
	// the client's job on reconnect
	req.Empty(conn.events)

	// And a fresh connection receives only post-reconnect traffic
	reconnected := &fakeSub{id: "c2", identity: "u2"}
	tracker.Join(reconnected, domain.PersonalRoom("u2"))
	router.Deliver(context.Background(), directEvent("u1", "u2"))
	req.Len(reconnected.events, 1)
}
