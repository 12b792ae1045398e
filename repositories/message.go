package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/RaminJll/ChatApp/domain"
)

type IMessageRepository interface {
	EnsureConversation(userA, userB string) (domain.Conversation, error)
	FindConversation(userA, userB string) (*domain.Conversation, error)
	StoreMessage(m domain.Message) error
	ConversationMessages(conversationID string) ([]domain.Message, error)
	GroupMessages(groupID string) ([]domain.Message, error)
	LastGroupMessage(groupID string) (*domain.Message, error)
}

type MessageRepository struct {
	db            *badger.DB
	limitMessages *int
}

// NewMessageRepository creates the repository. A nil limit means history
// fetches return everything.
func NewMessageRepository(db *badger.DB, limitMessages *int) *MessageRepository {
	return &MessageRepository{db: db, limitMessages: limitMessages}
}

// conversationKey is order-independent: both (A,B) and (B,A) map to the
// same record.
func conversationKey(userA, userB string) []byte {
	if userB < userA {
		userA, userB = userB, userA
	}
	return []byte("conv:" + userA + ":" + userB)
}

// messageKey is formatted as "msg:{scope}:{timestamp_padded}:{uuid}" so that:
//  1. a prefix scan returns messages in chronological order (19-digit zero
//     padding keeps the lexicographical and numeric orders identical), and
//  2. two messages stored in the same nanosecond cannot collide.
func messageKey(scope string, at time.Time, id uuid.UUID) []byte {
	return []byte(fmt.Sprintf("msg:%s:%019d:%s", scope, at.UnixNano(), id))
}

// EnsureConversation finds the direct conversation for the pair or creates
// it, in one transaction so two concurrent first messages cannot create two
// threads.
func (m *MessageRepository) EnsureConversation(userA, userB string) (domain.Conversation, error) {
	var conversation domain.Conversation
	err := m.db.Update(func(txn *badger.Txn) error {
		key := conversationKey(userA, userB)
		item, err := txn.Get(key)
		if err == nil {
			return item.Value(func(val []byte) error {
				return json.Unmarshal(val, &conversation)
			})
		}

		conversation = domain.Conversation{
			ID:        uuid.NewString(),
			User1ID:   userA,
			User2ID:   userB,
			CreatedAt: time.Now().UTC(),
		}
		data, err := json.Marshal(conversation)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return domain.Conversation{}, err
	}
	return conversation, nil
}

// FindConversation returns nil without error when the pair has never
// exchanged a message.
func (m *MessageRepository) FindConversation(userA, userB string) (*domain.Conversation, error) {
	var conversation *domain.Conversation
	err := m.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(conversationKey(userA, userB))
		if err != nil {
			return nil
		}
		return item.Value(func(val []byte) error {
			var c domain.Conversation
			if err := json.Unmarshal(val, &c); err != nil {
				return err
			}
			conversation = &c
			return nil
		})
	})
	return conversation, err
}

func (m *MessageRepository) StoreMessage(msg domain.Message) error {
	scope, err := messageScope(msg)
	if err != nil {
		return err
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set(messageKey(scope, msg.CreatedAt, msg.ID), data)
	})
}

func messageScope(msg domain.Message) (string, error) {
	switch {
	case msg.GroupID != nil:
		return "group:" + *msg.GroupID, nil
	case msg.ConversationID != nil:
		return "conv:" + *msg.ConversationID, nil
	default:
		return "", fmt.Errorf("message %s has no destination", msg.ID)
	}
}

func (m *MessageRepository) ConversationMessages(conversationID string) ([]domain.Message, error) {
	return m.messagesByPrefix("msg:conv:" + conversationID + ":")
}

func (m *MessageRepository) GroupMessages(groupID string) ([]domain.Message, error) {
	return m.messagesByPrefix("msg:group:" + groupID + ":")
}

// messagesByPrefix collects messages oldest-first; the key layout makes the
// iteration order chronological for free.
func (m *MessageRepository) messagesByPrefix(prefixStr string) ([]domain.Message, error) {
	var messages []domain.Message
	err := m.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(prefixStr)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if m.limitMessages != nil && len(messages) == *m.limitMessages {
				break
			}
			err := it.Item().Value(func(val []byte) error {
				var msg domain.Message
				if err := json.Unmarshal(val, &msg); err != nil {
					return err
				}
				messages = append(messages, msg)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return messages, err
}

// LastGroupMessage returns the newest message of the group, or nil if the
// group has none. A reverse seek past the prefix lands on the last key.
func (m *MessageRepository) LastGroupMessage(groupID string) (*domain.Message, error) {
	var last *domain.Message
	err := m.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte("msg:group:" + groupID + ":")
		seekKey := append(append([]byte{}, prefix...), 0xFF)
		it.Seek(seekKey)
		if !it.ValidForPrefix(prefix) {
			return nil
		}
		return it.Item().Value(func(val []byte) error {
			var msg domain.Message
			if err := json.Unmarshal(val, &msg); err != nil {
				return err
			}
			last = &msg
			return nil
		})
	})
	return last, err
}
