package event

import "github.com/RaminJll/ChatApp/domain"

// DomainEvent is any payload that can flow through an EventSink to a live
// connection. Rooms returns the multicast targets the event resolves to.
type DomainEvent interface {
	Rooms() []domain.RoomID
}

// MessageReceived is emitted once a message has been durably stored.
// RecipientID is set only for direct messages; group messages resolve their
// target from the message's group id alone.
type MessageReceived struct {
	Message     domain.Message
	RecipientID *string
}

// Rooms computes the delivery targets: the single group room for a group
// message, or the personal rooms of both author and recipient for a direct
// message. Publishing to the author's own room is what echoes the message
// back to the author's other open sessions.
func (m MessageReceived) Rooms() []domain.RoomID {
	if m.Message.GroupID != nil {
		return []domain.RoomID{domain.GroupRoom(*m.Message.GroupID)}
	}
	rooms := []domain.RoomID{domain.PersonalRoom(m.Message.AuthorID)}
	if m.RecipientID != nil {
		rooms = append(rooms, domain.PersonalRoom(*m.RecipientID))
	}
	return rooms
}
