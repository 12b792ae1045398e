package repositories

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/RaminJll/ChatApp/domain"
	"github.com/RaminJll/ChatApp/errors"
)

type IGroupRepository interface {
	CreateGroup(name, creatorID string) (domain.Group, error)
	GetGroup(id string) (domain.Group, error)
	GroupsFor(userID string) ([]domain.Group, error)
	AddMember(groupID, userID string, role domain.GroupRole) (domain.GroupMember, error)
	Members(groupID string) ([]domain.GroupMember, error)
}

type GroupRepository struct {
	db *badger.DB
}

func NewGroupRepository(db *badger.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func groupKey(id string) []byte { return []byte("group:" + id) }

func memberKey(groupID, userID string) []byte {
	return []byte("member:" + groupID + ":" + userID)
}

// userGroupKey is the inverse index so a user's groups resolve with one
// prefix scan instead of scanning every membership row.
func userGroupKey(userID, groupID string) []byte {
	return []byte("usergroup:" + userID + ":" + groupID)
}

// CreateGroup stores the group and makes the creator its ADMIN member in
// the same transaction.
func (g *GroupRepository) CreateGroup(name, creatorID string) (domain.Group, error) {
	group := domain.Group{
		ID:        uuid.NewString(),
		Name:      name,
		CreatorID: creatorID,
		CreatedAt: time.Now().UTC(),
	}
	groupData, err := json.Marshal(group)
	if err != nil {
		return domain.Group{}, err
	}

	admin := domain.GroupMember{
		GroupID:  group.ID,
		UserID:   creatorID,
		Role:     domain.GroupRoleAdmin,
		JoinedAt: group.CreatedAt,
	}
	adminData, err := json.Marshal(admin)
	if err != nil {
		return domain.Group{}, err
	}

	err = g.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(groupKey(group.ID), groupData); err != nil {
			return err
		}
		if err := txn.Set(memberKey(group.ID, creatorID), adminData); err != nil {
			return err
		}
		return txn.Set(userGroupKey(creatorID, group.ID), nil)
	})
	if err != nil {
		return domain.Group{}, err
	}
	return group, nil
}

func (g *GroupRepository) GetGroup(id string) (domain.Group, error) {
	var group domain.Group
	err := g.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(groupKey(id))
		if err != nil {
			return errors.ErrGroupNotFound
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &group)
		})
	})
	return group, err
}

func (g *GroupRepository) GroupsFor(userID string) ([]domain.Group, error) {
	var groupIDs []string
	err := g.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte("usergroup:" + userID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			groupIDs = append(groupIDs, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	groups := make([]domain.Group, 0, len(groupIDs))
	for _, id := range groupIDs {
		group, err := g.GetGroup(id)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// AddMember inserts a MEMBER row; the group must exist and the user must
// not already be in it.
func (g *GroupRepository) AddMember(groupID, userID string, role domain.GroupRole) (domain.GroupMember, error) {
	member := domain.GroupMember{
		GroupID:  groupID,
		UserID:   userID,
		Role:     role,
		JoinedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(member)
	if err != nil {
		return domain.GroupMember{}, err
	}

	err = g.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(groupKey(groupID)); err != nil {
			return errors.ErrGroupNotFound
		}
		if _, err := txn.Get(memberKey(groupID, userID)); err == nil {
			return errors.ErrAlreadyMember
		}
		if err := txn.Set(memberKey(groupID, userID), data); err != nil {
			return err
		}
		return txn.Set(userGroupKey(userID, groupID), nil)
	})
	if err != nil {
		return domain.GroupMember{}, err
	}
	return member, nil
}

func (g *GroupRepository) Members(groupID string) ([]domain.GroupMember, error) {
	var members []domain.GroupMember
	err := g.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte("member:" + groupID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var member domain.GroupMember
				if err := json.Unmarshal(val, &member); err != nil {
					return err
				}
				members = append(members, member)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return members, err
}
