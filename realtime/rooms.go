package realtime

import (
	"sync"

	"github.com/RaminJll/ChatApp/contract"
	"github.com/RaminJll/ChatApp/domain"
)

// RoomTracker maintains, per connection, the set of rooms it is subscribed
// to and, per room, the set of subscribed connections. The inverse index
// makes publish O(room size) instead of O(all connections).
//
// Every mutation updates both indices under one lock, so a concurrent
// SubscribersOf never observes a half-updated pair.
type RoomTracker struct {
	mu     sync.RWMutex
	byRoom map[domain.RoomID]map[string]contract.Subscriber
	byConn map[string]map[domain.RoomID]struct{}
}

func NewRoomTracker() *RoomTracker {
	return &RoomTracker{
		byRoom: make(map[domain.RoomID]map[string]contract.Subscriber),
		byConn: make(map[string]map[domain.RoomID]struct{}),
	}
}

// Join adds the connection to the room's subscriber set and the room to the
// connection's subscription set. Joining a room already joined is a no-op.
func (t *RoomTracker) Join(s contract.Subscriber, room domain.RoomID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.byRoom[room]; !ok {
		t.byRoom[room] = make(map[string]contract.Subscriber)
	}
	t.byRoom[room][s.ID()] = s

	if _, ok := t.byConn[s.ID()]; !ok {
		t.byConn[s.ID()] = make(map[domain.RoomID]struct{})
	}
	t.byConn[s.ID()][room] = struct{}{}
}

// Leave is the inverse of Join. Leaving a room not joined is a no-op.
func (t *RoomTracker) Leave(connID string, room domain.RoomID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.leave(connID, room)
}

// LeaveAll removes the connection from every room it was subscribed to.
// Called unconditionally on disconnect so no stale subscription outlives
// its connection.
func (t *RoomTracker) LeaveAll(connID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for room := range t.byConn[connID] {
		t.leave(connID, room)
	}
}

// leave assumes t.mu is held.
func (t *RoomTracker) leave(connID string, room domain.RoomID) {
	if subscribers, ok := t.byRoom[room]; ok {
		delete(subscribers, connID)
		if len(subscribers) == 0 {
			delete(t.byRoom, room)
		}
	}
	if rooms, ok := t.byConn[connID]; ok {
		delete(rooms, room)
		if len(rooms) == 0 {
			delete(t.byConn, connID)
		}
	}
}

// SubscribersOf returns a consistent snapshot of the room's current
// subscriber set, possibly empty. It never errors.
func (t *RoomTracker) SubscribersOf(room domain.RoomID) []contract.Subscriber {
	t.mu.RLock()
	defer t.mu.RUnlock()

	subscribers, ok := t.byRoom[room]
	if !ok {
		return nil
	}
	snapshot := make([]contract.Subscriber, 0, len(subscribers))
	for _, s := range subscribers {
		snapshot = append(snapshot, s)
	}
	return snapshot
}

// Rooms returns the rooms the connection is currently subscribed to.
func (t *RoomTracker) Rooms(connID string) []domain.RoomID {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rooms := make([]domain.RoomID, 0, len(t.byConn[connID]))
	for room := range t.byConn[connID] {
		rooms = append(rooms, room)
	}
	return rooms
}
