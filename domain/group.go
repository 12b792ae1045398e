package domain

import "time"

type GroupRole string

const (
	GroupRoleAdmin  GroupRole = "ADMIN"
	GroupRoleMember GroupRole = "MEMBER"
)

type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatorID string    `json:"creatorId"`
	CreatedAt time.Time `json:"createdAt"`
}

type GroupMember struct {
	GroupID  string    `json:"groupId"`
	UserID   string    `json:"userId"`
	Role     GroupRole `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
	// Username is resolved by the service layer for listings.
	Username string `json:"username,omitempty"`
}

// GroupView is a group as shown in the caller's sidebar: the record, its
// members, and the most recent message if any.
type GroupView struct {
	Group
	Members     []GroupMember `json:"members"`
	LastMessage *Message      `json:"lastMessage,omitempty"`
}
