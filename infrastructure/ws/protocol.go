// Package ws is the websocket transport: handshake authentication, the
// client event protocol, and per-connection delivery pumps.
package ws

import "encoding/json"

// Client → server events. Names mirror what the web client emits.
const (
	EventJoinUserRoom  = "join_user_room"
	EventJoinGroupRoom = "join_group_room"
	EventLeaveUserRoom = "leave_user_room"
)

// Server → client event carrying a freshly stored message.
const EventReceiveMessage = "receive_message"

// ClientEvent is the inbound envelope. Data's shape depends on the event.
type ClientEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// roomPayload covers every join/leave event: exactly one field is set.
type roomPayload struct {
	UserID  string `json:"userId,omitempty"`
	GroupID string `json:"groupId,omitempty"`
}

// ServerEvent is the outbound envelope.
type ServerEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}
