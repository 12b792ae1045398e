package services

import (
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	"github.com/RaminJll/ChatApp/auth"
	"github.com/RaminJll/ChatApp/domain"
	"github.com/RaminJll/ChatApp/repositories"
)

// The service tests run against real repositories over a throwaway badger
// instance. The layer under test is thin glue over storage; faking the
// repositories would mostly test the fakes.
func newTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testIssuer() *auth.TokenIssuer {
	return auth.NewTokenIssuer([]byte("test-secret"), time.Hour)
}

func createUser(t *testing.T, users repositories.IUserRepository, name string) domain.User {
	t.Helper()
	user, err := users.CreateUser(name+"@test.com", name, "hashed")
	require.NoError(t, err)
	return user
}
