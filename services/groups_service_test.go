package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RaminJll/ChatApp/domain"
	"github.com/RaminJll/ChatApp/errors"
	"github.com/RaminJll/ChatApp/repositories"
)

func newGroupsService(t *testing.T) (*GroupsService, *MessagesService, repositories.IUserRepository) {
	t.Helper()
	db := newTestDB(t)
	users := repositories.NewUserRepository(db)
	groups := repositories.NewGroupRepository(db)
	messages := repositories.NewMessageRepository(db, nil)
	return NewGroupsService(groups, users, messages),
		NewMessagesService(messages, groups, users),
		users
}

func TestGroupsService_CreateAndView(t *testing.T) {
	req := require.New(t)
	service, messagesService, users := newGroupsService(t)
	alice := createUser(t, users, "alice")
	bob := createUser(t, users, "bob")

	group, err := service.CreateGroup("Gaming Squad", alice.ID)
	req.NoError(err)

	_, err = service.AddMember(group.ID, bob.ID)
	req.NoError(err)

	_, err = messagesService.SendGroupMessage(bob.ID, group.ID, "latest news")
	req.NoError(err)

	// The sidebar view carries members with usernames and the last message
	views, err := service.UserGroups(alice.ID)
	req.NoError(err)
	req.Len(views, 1)
	req.Equal("Gaming Squad", views[0].Name)
	req.Len(views[0].Members, 2)
	req.NotNil(views[0].LastMessage)
	req.Equal("latest news", views[0].LastMessage.Content)

	usernames := []string{views[0].Members[0].Username, views[0].Members[1].Username}
	req.ElementsMatch([]string{"alice", "bob"}, usernames)
}

func TestGroupsService_ViewWithoutMessages(t *testing.T) {
	req := require.New(t)
	service, _, users := newGroupsService(t)
	alice := createUser(t, users, "alice")

	_, err := service.CreateGroup("Quiet Group", alice.ID)
	req.NoError(err)

	views, err := service.UserGroups(alice.ID)
	req.NoError(err)
	req.Len(views, 1)
	req.Nil(views[0].LastMessage)
	req.Equal(domain.GroupRoleAdmin, views[0].Members[0].Role)
}

func TestGroupsService_AddMemberGuards(t *testing.T) {
	req := require.New(t)
	service, _, users := newGroupsService(t)
	alice := createUser(t, users, "alice")
	bob := createUser(t, users, "bob")

	group, err := service.CreateGroup("Gaming Squad", alice.ID)
	req.NoError(err)

	_, err = service.AddMember(group.ID, "ghost")
	req.ErrorIs(err, errors.ErrUserNotFound)

	_, err = service.AddMember("missing", bob.ID)
	req.ErrorIs(err, errors.ErrGroupNotFound)

	_, err = service.AddMember(group.ID, alice.ID)
	req.ErrorIs(err, errors.ErrAlreadyMember)
}
