package repositories

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/RaminJll/ChatApp/domain"
	"github.com/RaminJll/ChatApp/errors"
)

type IFriendshipRepository interface {
	Create(senderID, receiverID string) (domain.Friendship, error)
	Accept(senderID, receiverID string) (domain.Friendship, error)
	Delete(senderID, receiverID string) error
	ReceivedPending(receiverID string) ([]domain.Friendship, error)
	AcceptedFor(userID string) ([]domain.Friendship, error)
	AreFriends(a, b string) (bool, error)
}

type FriendshipRepository struct {
	db *badger.DB
}

func NewFriendshipRepository(db *badger.DB) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

func friendshipKey(senderID, receiverID string) []byte {
	return []byte("friendship:" + senderID + ":" + receiverID)
}

// Create stores a pending request. A friendship in either direction between
// the pair already existing is a conflict.
func (f *FriendshipRepository) Create(senderID, receiverID string) (domain.Friendship, error) {
	friendship := domain.Friendship{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     domain.FriendshipPending,
		CreatedAt:  time.Now().UTC(),
	}
	data, err := json.Marshal(friendship)
	if err != nil {
		return domain.Friendship{}, err
	}

	err = f.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(friendshipKey(senderID, receiverID)); err == nil {
			return errors.ErrFriendshipExists
		}
		if _, err := txn.Get(friendshipKey(receiverID, senderID)); err == nil {
			return errors.ErrFriendshipExists
		}
		return txn.Set(friendshipKey(senderID, receiverID), data)
	})
	if err != nil {
		return domain.Friendship{}, err
	}
	return friendship, nil
}

// Accept flips a pending request to accepted. Only the exact
// (sender, receiver) direction is a valid acceptance.
func (f *FriendshipRepository) Accept(senderID, receiverID string) (domain.Friendship, error) {
	var friendship domain.Friendship
	err := f.db.Update(func(txn *badger.Txn) error {
		key := friendshipKey(senderID, receiverID)
		item, err := txn.Get(key)
		if err != nil {
			return errors.ErrFriendshipNotFound
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &friendship)
		}); err != nil {
			return err
		}

		friendship.Status = domain.FriendshipAccepted
		data, err := json.Marshal(friendship)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return domain.Friendship{}, err
	}
	return friendship, nil
}

func (f *FriendshipRepository) Delete(senderID, receiverID string) error {
	return f.db.Update(func(txn *badger.Txn) error {
		key := friendshipKey(senderID, receiverID)
		if _, err := txn.Get(key); err != nil {
			return errors.ErrFriendshipNotFound
		}
		return txn.Delete(key)
	})
}

// ReceivedPending lists requests addressed to receiverID that are still
// pending.
func (f *FriendshipRepository) ReceivedPending(receiverID string) ([]domain.Friendship, error) {
	return f.scan(func(fs domain.Friendship) bool {
		return fs.ReceiverID == receiverID && fs.Status == domain.FriendshipPending
	})
}

// AcceptedFor lists accepted friendships where userID is on either side.
func (f *FriendshipRepository) AcceptedFor(userID string) ([]domain.Friendship, error) {
	return f.scan(func(fs domain.Friendship) bool {
		return fs.Status == domain.FriendshipAccepted &&
			(fs.SenderID == userID || fs.ReceiverID == userID)
	})
}

func (f *FriendshipRepository) AreFriends(a, b string) (bool, error) {
	matches, err := f.scan(func(fs domain.Friendship) bool {
		return fs.Status == domain.FriendshipAccepted &&
			((fs.SenderID == a && fs.ReceiverID == b) ||
				(fs.SenderID == b && fs.ReceiverID == a))
	})
	if err != nil {
		return false, err
	}
	return len(matches) > 0, nil
}

func (f *FriendshipRepository) scan(keep func(domain.Friendship) bool) ([]domain.Friendship, error) {
	var out []domain.Friendship
	err := f.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte("friendship:")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var friendship domain.Friendship
				if err := json.Unmarshal(val, &friendship); err != nil {
					return err
				}
				if keep(friendship) {
					out = append(out, friendship)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return out, err
}
