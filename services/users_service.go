package services

import (
	"github.com/samber/lo"

	"github.com/RaminJll/ChatApp/domain"
	"github.com/RaminJll/ChatApp/repositories"
)

type IUsersService interface {
	AllUsers() ([]domain.UserSummary, error)
}

// UsersService backs the friend-search screen.
type UsersService struct {
	users repositories.IUserRepository
}

func NewUsersService(users repositories.IUserRepository) *UsersService {
	return &UsersService{users: users}
}

func (s *UsersService) AllUsers() ([]domain.UserSummary, error) {
	users, err := s.users.ListUsers()
	if err != nil {
		return nil, err
	}
	return lo.Map(users, func(u domain.User, _ int) domain.UserSummary {
		return u.Summary()
	}), nil
}
