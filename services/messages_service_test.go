package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RaminJll/ChatApp/domain"
	"github.com/RaminJll/ChatApp/errors"
	"github.com/RaminJll/ChatApp/repositories"
)

func newMessagesService(t *testing.T) (*MessagesService, repositories.IUserRepository, repositories.IGroupRepository) {
	t.Helper()
	db := newTestDB(t)
	users := repositories.NewUserRepository(db)
	groups := repositories.NewGroupRepository(db)
	messages := repositories.NewMessageRepository(db, nil)
	return NewMessagesService(messages, groups, users), users, groups
}

func TestMessagesService_SendDirectMessage(t *testing.T) {
	req := require.New(t)
	service, users, _ := newMessagesService(t)
	alice := createUser(t, users, "alice")
	bob := createUser(t, users, "bob")

	// When alice messages bob
	evt, err := service.SendDirectMessage(alice.ID, bob.ID, "hi bob")
	req.NoError(err)

	// Then the event carries the stored message with its author summary
	req.Equal("hi bob", evt.Message.Content)
	req.Equal(alice.ID, evt.Message.AuthorID)
	req.Equal("alice", evt.Message.Author.Username)
	req.NotNil(evt.RecipientID)
	req.Equal(bob.ID, *evt.RecipientID)
	req.NotNil(evt.Message.ConversationID)

	// And it targets both personal rooms
	rooms := evt.Rooms()
	req.Len(rooms, 2)
	req.Contains(rooms, domain.PersonalRoom(alice.ID))
	req.Contains(rooms, domain.PersonalRoom(bob.ID))

	// And both participants read the same history
	history, err := service.DirectMessages(bob.ID, alice.ID)
	req.NoError(err)
	req.Len(history, 1)
	req.Equal("hi bob", history[0].Content)
}

func TestMessagesService_SendDirectMessageToSelfRejected(t *testing.T) {
	req := require.New(t)
	service, users, _ := newMessagesService(t)
	alice := createUser(t, users, "alice")

	_, err := service.SendDirectMessage(alice.ID, alice.ID, "talking to myself")
	req.ErrorIs(err, errors.ErrSelfTarget)

	// Nothing was persisted
	history, err := service.DirectMessages(alice.ID, alice.ID)
	req.NoError(err)
	req.Empty(history)
}

func TestMessagesService_SendDirectMessageUnknownRecipient(t *testing.T) {
	req := require.New(t)
	service, users, _ := newMessagesService(t)
	alice := createUser(t, users, "alice")

	_, err := service.SendDirectMessage(alice.ID, "ghost", "anyone there?")
	req.ErrorIs(err, errors.ErrUserNotFound)
}

func TestMessagesService_DirectMessagesWithoutConversationIsEmpty(t *testing.T) {
	req := require.New(t)
	service, users, _ := newMessagesService(t)
	alice := createUser(t, users, "alice")
	bob := createUser(t, users, "bob")

	history, err := service.DirectMessages(alice.ID, bob.ID)
	req.NoError(err)
	req.Empty(history)
}

func TestMessagesService_SendGroupMessage(t *testing.T) {
	req := require.New(t)
	service, users, groups := newMessagesService(t)
	alice := createUser(t, users, "alice")
	group, err := groups.CreateGroup("Gaming Squad", alice.ID)
	req.NoError(err)

	evt, err := service.SendGroupMessage(alice.ID, group.ID, "hello squad")
	req.NoError(err)
	req.Nil(evt.RecipientID)
	req.NotNil(evt.Message.GroupID)

	// The event targets the single group room
	req.Equal([]domain.RoomID{domain.GroupRoom(group.ID)}, evt.Rooms())

	history, err := service.GroupMessages(group.ID)
	req.NoError(err)
	req.Len(history, 1)
}

func TestMessagesService_SendGroupMessageUnknownGroup(t *testing.T) {
	req := require.New(t)
	service, users, _ := newMessagesService(t)
	alice := createUser(t, users, "alice")

	// The group check runs before anything is stored
	_, err := service.SendGroupMessage(alice.ID, "missing", "hello?")
	req.ErrorIs(err, errors.ErrGroupNotFound)
}
