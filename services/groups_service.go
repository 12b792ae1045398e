package services

import (
	"github.com/RaminJll/ChatApp/domain"
	"github.com/RaminJll/ChatApp/repositories"
)

type IGroupsService interface {
	CreateGroup(name, creatorID string) (domain.Group, error)
	UserGroups(userID string) ([]domain.GroupView, error)
	AddMember(groupID, userIDToAdd string) (domain.GroupMember, error)
	GroupMembers(groupID string) ([]domain.GroupMember, error)
}

type GroupsService struct {
	groups   repositories.IGroupRepository
	users    repositories.IUserRepository
	messages repositories.IMessageRepository
}

func NewGroupsService(groups repositories.IGroupRepository,
	users repositories.IUserRepository,
	messages repositories.IMessageRepository) *GroupsService {
	return &GroupsService{groups: groups, users: users, messages: messages}
}

func (s *GroupsService) CreateGroup(name, creatorID string) (domain.Group, error) {
	return s.groups.CreateGroup(name, creatorID)
}

// UserGroups returns the caller's groups with members and the most recent
// message, the shape the sidebar renders.
func (s *GroupsService) UserGroups(userID string) ([]domain.GroupView, error) {
	groups, err := s.groups.GroupsFor(userID)
	if err != nil {
		return nil, err
	}

	views := make([]domain.GroupView, 0, len(groups))
	for _, group := range groups {
		members, err := s.GroupMembers(group.ID)
		if err != nil {
			return nil, err
		}
		last, err := s.messages.LastGroupMessage(group.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, domain.GroupView{
			Group:       group,
			Members:     members,
			LastMessage: last,
		})
	}
	return views, nil
}

// AddMember adds userIDToAdd as a regular MEMBER. The repository enforces
// group existence and duplicate membership.
func (s *GroupsService) AddMember(groupID, userIDToAdd string) (domain.GroupMember, error) {
	if _, err := s.users.GetUserByID(userIDToAdd); err != nil {
		return domain.GroupMember{}, err
	}
	member, err := s.groups.AddMember(groupID, userIDToAdd, domain.GroupRoleMember)
	if err != nil {
		return domain.GroupMember{}, err
	}
	return s.withUsername(member)
}

func (s *GroupsService) GroupMembers(groupID string) ([]domain.GroupMember, error) {
	members, err := s.groups.Members(groupID)
	if err != nil {
		return nil, err
	}
	for i, member := range members {
		members[i], err = s.withUsername(member)
		if err != nil {
			return nil, err
		}
	}
	return members, nil
}

func (s *GroupsService) withUsername(member domain.GroupMember) (domain.GroupMember, error) {
	user, err := s.users.GetUserByID(member.UserID)
	if err != nil {
		return domain.GroupMember{}, err
	}
	member.Username = user.Username
	return member, nil
}
