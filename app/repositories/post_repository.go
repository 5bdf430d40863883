package repositories

import (
	"yatube/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create creates a new post
func (r *BadgerPostRepository) Create(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, PostSeqKey)
		if err != nil {
			return err
		}
		post.ID = id

		data, err := marshalEntity(post.Detached())
		if err != nil {
			return err
		}
		return txn.Set(entityKey(PostKeyPrefix, post.ID), data)
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(id int) (*models.Post, error) {
	var post models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, entityKey(PostKeyPrefix, id), &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns the posts matching filter, newest first
func (r *BadgerPostRepository) List(filter PostFilter) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		posts, err = scanPrefix(txn, PostKeyPrefix, func(p *models.Post) bool {
			return MatchPost(p, filter)
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	SortPostsNewestFirst(posts)
	return posts, nil
}

// Count returns the number of posts matching filter
func (r *BadgerPostRepository) Count(filter PostFilter) (int, error) {
	posts, err := r.List(filter)
	if err != nil {
		return 0, err
	}
	return len(posts), nil
}

// Update updates an existing post
func (r *BadgerPostRepository) Update(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(PostKeyPrefix, post.ID)

		// Verify post exists
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		data, err := marshalEntity(post.Detached())
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Delete deletes a post by ID
func (r *BadgerPostRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return deleteExisting(txn, entityKey(PostKeyPrefix, id))
	})
}
