package domain

import "time"

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "PENDING"
	FriendshipAccepted FriendshipStatus = "ACCEPTED"
)

// Friendship is keyed by the (sender, receiver) pair. A pending request
// either becomes accepted or is deleted; there is no rejected state on disk.
type Friendship struct {
	SenderID   string           `json:"senderId"`
	ReceiverID string           `json:"receiverId"`
	Status     FriendshipStatus `json:"status"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// Peer returns the other side of the friendship from userID's perspective.
func (f Friendship) Peer(userID string) string {
	if f.SenderID == userID {
		return f.ReceiverID
	}
	return f.SenderID
}

// FriendRequest is a pending friendship enriched with the sender's summary,
// as listed on the receiving user's screen.
type FriendRequest struct {
	Friendship
	Sender UserSummary `json:"sender"`
}
