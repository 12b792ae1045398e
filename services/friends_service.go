package services

import (
	"github.com/RaminJll/ChatApp/domain"
	"github.com/RaminJll/ChatApp/errors"
	"github.com/RaminJll/ChatApp/repositories"
)

type IFriendsService interface {
	SendRequest(senderID, receiverID string) (domain.Friendship, error)
	ReceivedRequests(userID string) ([]domain.FriendRequest, error)
	AcceptRequest(receiverID, senderID string) (domain.Friendship, error)
	RefuseRequest(receiverID, senderID string) error
	FriendsList(userID string) ([]domain.UserSummary, error)
}

type FriendsService struct {
	friendships repositories.IFriendshipRepository
	users       repositories.IUserRepository
}

func NewFriendsService(friendships repositories.IFriendshipRepository,
	users repositories.IUserRepository) *FriendsService {
	return &FriendsService{friendships: friendships, users: users}
}

func (s *FriendsService) SendRequest(senderID, receiverID string) (domain.Friendship, error) {
	if senderID == receiverID {
		return domain.Friendship{}, errors.ErrSelfTarget
	}
	if _, err := s.users.GetUserByID(receiverID); err != nil {
		return domain.Friendship{}, err
	}
	return s.friendships.Create(senderID, receiverID)
}

// ReceivedRequests lists pending requests addressed to userID, enriched
// with each sender's summary.
func (s *FriendsService) ReceivedRequests(userID string) ([]domain.FriendRequest, error) {
	pending, err := s.friendships.ReceivedPending(userID)
	if err != nil {
		return nil, err
	}

	requests := make([]domain.FriendRequest, 0, len(pending))
	for _, friendship := range pending {
		sender, err := s.users.GetUserByID(friendship.SenderID)
		if err != nil {
			return nil, err
		}
		requests = append(requests, domain.FriendRequest{
			Friendship: friendship,
			Sender:     sender.Summary(),
		})
	}
	return requests, nil
}

func (s *FriendsService) AcceptRequest(receiverID, senderID string) (domain.Friendship, error) {
	return s.friendships.Accept(senderID, receiverID)
}

func (s *FriendsService) RefuseRequest(receiverID, senderID string) error {
	return s.friendships.Delete(senderID, receiverID)
}

// FriendsList maps accepted friendships to the peer's summary.
func (s *FriendsService) FriendsList(userID string) ([]domain.UserSummary, error) {
	accepted, err := s.friendships.AcceptedFor(userID)
	if err != nil {
		return nil, err
	}

	friends := make([]domain.UserSummary, 0, len(accepted))
	for _, friendship := range accepted {
		peer, err := s.users.GetUserByID(friendship.Peer(userID))
		if err != nil {
			return nil, err
		}
		friends = append(friends, peer.Summary())
	}
	return friends, nil
}
