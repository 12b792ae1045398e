package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrInvalidPassword    = fmt.Errorf("password does not meet complexity requirements")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
	ErrUserAlreadyExists  = fmt.Errorf("user already exists")
	ErrUserNotFound       = fmt.Errorf("user not found")
	ErrGroupNotFound      = fmt.Errorf("group not found")
	ErrAlreadyMember      = fmt.Errorf("user is already a member of the group")
	ErrFriendshipExists   = fmt.Errorf("a friend request or friendship already exists")
	ErrFriendshipNotFound = fmt.Errorf("friend request not found")
	ErrSelfTarget         = fmt.Errorf("sender and recipient must differ")
	ErrValidation         = fmt.Errorf("invalid request")
)

// MapToHTTPStatus translates a domain error into the status code the REST
// layer responds with. Unknown errors are treated as internal.
func MapToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrGroupNotFound),
		errors.Is(err, ErrFriendshipNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUserAlreadyExists),
		errors.Is(err, ErrAlreadyMember),
		errors.Is(err, ErrFriendshipExists):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidPassword),
		errors.Is(err, ErrSelfTarget),
		errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
