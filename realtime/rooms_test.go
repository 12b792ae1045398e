package realtime

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RaminJll/ChatApp/domain"
)

func TestRoomTracker_JoinIsIdempotent(t *testing.T) {
	req := require.New(t)
	tracker := NewRoomTracker()
	conn := &fakeSub{id: "c1", identity: "u1"}
	room := domain.GroupRoom("g1")

	// When the same connection joins the same room twice
	tracker.Join(conn, room)
	tracker.Join(conn, room)

	// Then the room holds it once
	req.Len(tracker.SubscribersOf(room), 1)
}

func TestRoomTracker_LeaveRemovesOnlyTargetRoom(t *testing.T) {
	req := require.New(t)
	tracker := NewRoomTracker()
	conn := &fakeSub{id: "c1", identity: "u1"}
	personal := domain.PersonalRoom("u1")
	group := domain.GroupRoom("g1")
	tracker.Join(conn, personal)
	tracker.Join(conn, group)

	// When leaving the group room only
	tracker.Leave("c1", group)

	// Then the personal subscription survives
	req.Empty(tracker.SubscribersOf(group))
	req.Len(tracker.SubscribersOf(personal), 1)
	req.Equal([]domain.RoomID{personal}, tracker.Rooms("c1"))
}

func TestRoomTracker_LeaveNotJoinedIsNoop(t *testing.T) {
	req := require.New(t)
	tracker := NewRoomTracker()
	conn := &fakeSub{id: "c1", identity: "u1"}
	room := domain.GroupRoom("g1")
	tracker.Join(conn, room)

	// When another connection leaves a room it never joined
	tracker.Leave("c2", room)

	// Then the existing subscription is untouched
	req.Len(tracker.SubscribersOf(room), 1)
}

func TestRoomTracker_LeaveAllClearsEveryRoom(t *testing.T) {
	req := require.New(t)
	tracker := NewRoomTracker()
	leaving := &fakeSub{id: "c1", identity: "u1"}
	staying := &fakeSub{id: "c2", identity: "u2"}
	personal := domain.PersonalRoom("u1")
	group := domain.GroupRoom("g1")
	tracker.Join(leaving, personal)
	tracker.Join(leaving, group)
	tracker.Join(staying, group)

	// When the connection disconnects
	tracker.LeaveAll("c1")

	// Then all of its subscriptions are gone and others remain
	req.Empty(tracker.SubscribersOf(personal))
	req.Empty(tracker.Rooms("c1"))
	req.Len(tracker.SubscribersOf(group), 1)
	req.Equal("c2", tracker.SubscribersOf(group)[0].ID())
}

func TestRoomTracker_EmptyRoomHasNoSubscribers(t *testing.T) {
	req := require.New(t)
	tracker := NewRoomTracker()

	req.Empty(tracker.SubscribersOf(domain.GroupRoom("nobody-here")))
}
