package services

import (
	"fmt"

	"github.com/RaminJll/ChatApp/auth"
	"github.com/RaminJll/ChatApp/domain"
	"github.com/RaminJll/ChatApp/errors"
	"github.com/RaminJll/ChatApp/repositories"
)

type Token string

type IAuthService interface {
	Register(email, username, password string) (domain.User, error)
	Login(email, password string) (Token, domain.User, error)
}

type AuthService struct {
	users  repositories.IUserRepository
	tokens *auth.TokenIssuer
}

func NewAuthService(users repositories.IUserRepository, tokens *auth.TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (s *AuthService) Register(email, username, password string) (domain.User, error) {
	valReq := auth.RegisterRequest{
		Email:    email,
		Username: username,
		Password: password,
	}

	// Business rules first: no expensive cryptographic work for a payload
	// that is going to be rejected anyway.
	if err := auth.ValidateRegister(valReq); err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", errors.ErrValidation, err)
	}

	// Hashing happens in the service layer so the repository never sees a
	// plain password.
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hashing failed: %w", err)
	}

	user, err := s.users.CreateUser(email, username, hashedPassword)
	if err != nil {
		return domain.User{}, err // propagates ErrUserAlreadyExists
	}
	return user, nil
}

func (s *AuthService) Login(email, password string) (Token, domain.User, error) {
	// Generic error on every failure path to prevent user enumeration.
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return "", domain.User{}, errors.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !match {
		return "", domain.User{}, errors.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Roles)
	if err != nil {
		return "", domain.User{}, errors.ErrTokenGeneration
	}
	return Token(token), user, nil
}
