package repositories

import (
	"sort"

	"yatube/app/models"

	"github.com/dgraph-io/badger/v4"
)

// userRecord is the persisted form of a user. models.User hides the hash
// from JSON output, so it is carried in its own field here.
type userRecord struct {
	models.User
	PasswordHash string `json:"password_hash"`
}

func (rec *userRecord) toModel() *models.User {
	u := rec.User
	u.PasswordHash = rec.PasswordHash
	return &u
}

// BadgerUserRepository implements UserRepository using BadgerDB
type BadgerUserRepository struct {
	db *badger.DB
}

func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// Create stores user and claims its username; taken names give ErrDuplicate.
func (r *BadgerUserRepository) Create(user *models.User) error {
	return r.db.Update(func(txn *badger.Txn) error {
		nameKey := []byte(UsernameKeyPrefix + user.Username)
		if _, err := txn.Get(nameKey); err == nil {
			return ErrDuplicate
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		id, err := getNextID(txn, UserSeqKey)
		if err != nil {
			return err
		}
		user.ID = id

		data, err := marshalEntity(&userRecord{User: *user, PasswordHash: user.PasswordHash})
		if err != nil {
			return err
		}
		if err := txn.Set(entityKey(UserKeyPrefix, id), data); err != nil {
			return err
		}
		return txn.Set(nameKey, encodeID(id))
	})
}

func (r *BadgerUserRepository) GetByID(id int) (*models.User, error) {
	var rec userRecord
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, entityKey(UserKeyPrefix, id), &rec)
	})
	if err != nil {
		return nil, err
	}
	return rec.toModel(), nil
}

func (r *BadgerUserRepository) GetByUsername(username string) (*models.User, error) {
	var rec userRecord
	err := r.db.View(func(txn *badger.Txn) error {
		id, err := lookupID(txn, []byte(UsernameKeyPrefix+username))
		if err != nil {
			return err
		}
		return getEntity(txn, entityKey(UserKeyPrefix, id), &rec)
	})
	if err != nil {
		return nil, err
	}
	return rec.toModel(), nil
}

// List returns every user ordered by username.
func (r *BadgerUserRepository) List() ([]*models.User, error) {
	var recs []*userRecord
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		recs, err = scanPrefix[userRecord](txn, UserKeyPrefix, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	users := make([]*models.User, 0, len(recs))
	for _, rec := range recs {
		users = append(users, rec.toModel())
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

// Delete removes the user record and frees the username.
func (r *BadgerUserRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var rec userRecord
		key := entityKey(UserKeyPrefix, id)
		if err := getEntity(txn, key, &rec); err != nil {
			return err
		}
		if err := txn.Delete([]byte(UsernameKeyPrefix + rec.Username)); err != nil {
			return err
		}
		return txn.Delete(key)
	})
}
