package domain

// RoomID names a multicast destination. A room has no storage of its own:
// it exists only as the set of connections currently subscribed to it.
type RoomID string

// PersonalRoom is the room every identity is auto-joined to on each of its
// connections for the lifetime of the connection. Direct messages are
// delivered through it.
func PersonalRoom(identity string) RoomID {
	return RoomID(identity)
}

// GroupRoom is the room a connection subscribes to while its user has the
// group's conversation open. Subscription is a view of the UI state, not a
// mirror of persisted group membership.
func GroupRoom(groupID string) RoomID {
	return RoomID(groupID)
}
