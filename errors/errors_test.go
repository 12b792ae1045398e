package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapToHTTPStatus(t *testing.T) {
	req := require.New(t)

	req.Equal(http.StatusUnauthorized, MapToHTTPStatus(ErrInvalidCredentials))
	req.Equal(http.StatusNotFound, MapToHTTPStatus(ErrGroupNotFound))
	req.Equal(http.StatusConflict, MapToHTTPStatus(ErrFriendshipExists))
	req.Equal(http.StatusBadRequest, MapToHTTPStatus(ErrSelfTarget))
	req.Equal(http.StatusInternalServerError, MapToHTTPStatus(fmt.Errorf("disk on fire")))

	// Wrapped sentinels keep their mapping
	wrapped := fmt.Errorf("%w: email field", ErrValidation)
	req.Equal(http.StatusBadRequest, MapToHTTPStatus(wrapped))
}
