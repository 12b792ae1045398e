package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is an immutable chat record. Exactly one of GroupID and
// ConversationID is set, never both: the destination is fixed at creation.
type Message struct {
	ID             uuid.UUID   `json:"id"`
	Content        string      `json:"content"`
	AuthorID       string      `json:"authorId"`
	Author         UserSummary `json:"author"`
	GroupID        *string     `json:"groupId,omitempty"`
	ConversationID *string     `json:"conversationId,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// Conversation is the durable record of a direct-message thread between two
// users. The pair is unordered: (A,B) and (B,A) resolve to the same record.
type Conversation struct {
	ID        string    `json:"id"`
	User1ID   string    `json:"user1Id"`
	User2ID   string    `json:"user2Id"`
	CreatedAt time.Time `json:"createdAt"`
}
