package repositories

import (
	"sort"

	"yatube/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerGroupRepository implements GroupRepository using BadgerDB
type BadgerGroupRepository struct {
	db *badger.DB
}

func NewBadgerGroupRepository(db *badger.DB) *BadgerGroupRepository {
	return &BadgerGroupRepository{db: db}
}

// Create stores group and claims its slug; taken slugs give ErrDuplicate.
func (r *BadgerGroupRepository) Create(group *models.Group) error {
	return r.db.Update(func(txn *badger.Txn) error {
		slugKey := []byte(SlugKeyPrefix + group.Slug)
		if _, err := txn.Get(slugKey); err == nil {
			return ErrDuplicate
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		id, err := getNextID(txn, GroupSeqKey)
		if err != nil {
			return err
		}
		group.ID = id

		data, err := marshalEntity(group)
		if err != nil {
			return err
		}
		if err := txn.Set(entityKey(GroupKeyPrefix, id), data); err != nil {
			return err
		}
		return txn.Set(slugKey, encodeID(id))
	})
}

func (r *BadgerGroupRepository) GetByID(id int) (*models.Group, error) {
	var group models.Group
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, entityKey(GroupKeyPrefix, id), &group)
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *BadgerGroupRepository) GetBySlug(slug string) (*models.Group, error) {
	var group models.Group
	err := r.db.View(func(txn *badger.Txn) error {
		id, err := lookupID(txn, []byte(SlugKeyPrefix+slug))
		if err != nil {
			return err
		}
		return getEntity(txn, entityKey(GroupKeyPrefix, id), &group)
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// List returns every group ordered by title.
func (r *BadgerGroupRepository) List() ([]*models.Group, error) {
	var groups []*models.Group
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		groups, err = scanPrefix[models.Group](txn, GroupKeyPrefix, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Title < groups[j].Title })
	return groups, nil
}

func (r *BadgerGroupRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var group models.Group
		key := entityKey(GroupKeyPrefix, id)
		if err := getEntity(txn, key, &group); err != nil {
			return err
		}
		if err := txn.Delete([]byte(SlugKeyPrefix + group.Slug)); err != nil {
			return err
		}
		return txn.Delete(key)
	})
}
