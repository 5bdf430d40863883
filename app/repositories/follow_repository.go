package repositories

import (
	"sort"

	"yatube/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerFollowRepository implements FollowRepository using BadgerDB. Like
// the SQL schema it keeps no uniqueness index over (user, author).
type BadgerFollowRepository struct {
	db *badger.DB
}

func NewBadgerFollowRepository(db *badger.DB) *BadgerFollowRepository {
	return &BadgerFollowRepository{db: db}
}

func (r *BadgerFollowRepository) Create(follow *models.Follow) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, FollowSeqKey)
		if err != nil {
			return err
		}
		follow.ID = id

		data, err := marshalEntity(follow)
		if err != nil {
			return err
		}
		return txn.Set(entityKey(FollowKeyPrefix, follow.ID), data)
	})
}

func (r *BadgerFollowRepository) List(filter FollowFilter) ([]*models.Follow, error) {
	var follows []*models.Follow
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		follows, err = scanPrefix(txn, FollowKeyPrefix, func(f *models.Follow) bool {
			return MatchFollow(f, filter)
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	// keys sort lexically, "follow:10" before "follow:2"
	sort.Slice(follows, func(i, j int) bool { return follows[i].ID < follows[j].ID })
	return follows, nil
}

func (r *BadgerFollowRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return deleteExisting(txn, entityKey(FollowKeyPrefix, id))
	})
}
