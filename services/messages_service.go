package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/RaminJll/ChatApp/domain"
	"github.com/RaminJll/ChatApp/domain/event"
	"github.com/RaminJll/ChatApp/errors"
	"github.com/RaminJll/ChatApp/repositories"
)

type IMessagesService interface {
	SendDirectMessage(authorID, recipientID, content string) (event.MessageReceived, error)
	DirectMessages(userID, contactID string) ([]domain.Message, error)
	SendGroupMessage(authorID, groupID, content string) (event.MessageReceived, error)
	GroupMessages(groupID string) ([]domain.Message, error)
}

// MessagesService validates and persists messages. Live delivery is not its
// concern: it returns the MessageReceived event and the transport layer
// hands it to the Delivery Router once, after persistence has succeeded.
type MessagesService struct {
	messages repositories.IMessageRepository
	groups   repositories.IGroupRepository
	users    repositories.IUserRepository
}

func NewMessagesService(messages repositories.IMessageRepository,
	groups repositories.IGroupRepository,
	users repositories.IUserRepository) *MessagesService {
	return &MessagesService{messages: messages, groups: groups, users: users}
}

// SendDirectMessage persists a direct message. Self-addressed messages are
// rejected before anything touches storage; the Delivery Router relies on
// author and recipient being distinct.
func (s *MessagesService) SendDirectMessage(authorID, recipientID, content string) (event.MessageReceived, error) {
	if authorID == recipientID {
		return event.MessageReceived{}, errors.ErrSelfTarget
	}

	author, err := s.users.GetUserByID(authorID)
	if err != nil {
		return event.MessageReceived{}, err
	}
	if _, err := s.users.GetUserByID(recipientID); err != nil {
		return event.MessageReceived{}, err
	}

	conversation, err := s.messages.EnsureConversation(authorID, recipientID)
	if err != nil {
		return event.MessageReceived{}, err
	}

	msg := newMessage(author, content)
	msg.ConversationID = &conversation.ID
	if err := s.messages.StoreMessage(msg); err != nil {
		return event.MessageReceived{}, err
	}

	return event.MessageReceived{Message: msg, RecipientID: &recipientID}, nil
}

// DirectMessages returns the chronological history between two users, empty
// when they have never exchanged a message.
func (s *MessagesService) DirectMessages(userID, contactID string) ([]domain.Message, error) {
	conversation, err := s.messages.FindConversation(userID, contactID)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return []domain.Message{}, nil
	}
	return s.messages.ConversationMessages(conversation.ID)
}

// SendGroupMessage persists a group message. The group existence check runs
// first: if it fails no message is stored and the router is never invoked.
func (s *MessagesService) SendGroupMessage(authorID, groupID, content string) (event.MessageReceived, error) {
	if _, err := s.groups.GetGroup(groupID); err != nil {
		return event.MessageReceived{}, err
	}

	author, err := s.users.GetUserByID(authorID)
	if err != nil {
		return event.MessageReceived{}, err
	}

	msg := newMessage(author, content)
	msg.GroupID = &groupID
	if err := s.messages.StoreMessage(msg); err != nil {
		return event.MessageReceived{}, err
	}

	return event.MessageReceived{Message: msg}, nil
}

func (s *MessagesService) GroupMessages(groupID string) ([]domain.Message, error) {
	return s.messages.GroupMessages(groupID)
}

// newMessage builds the immutable record, author summary included so the
// delivery payload needs no extra lookup on the receiving side.
func newMessage(author domain.User, content string) domain.Message {
	return domain.Message{
		ID:        uuid.New(),
		Content:   content,
		AuthorID:  author.ID,
		Author:    domain.UserSummary{ID: author.ID, Username: author.Username},
		CreatedAt: time.Now().UTC(),
	}
}
