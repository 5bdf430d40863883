package repositories

import (
	"yatube/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCommentRepository implements CommentRepository using BadgerDB
type BadgerCommentRepository struct {
	db *badger.DB
}

// NewBadgerCommentRepository creates a new BadgerCommentRepository
func NewBadgerCommentRepository(db *badger.DB) *BadgerCommentRepository {
	return &BadgerCommentRepository{db: db}
}

// Create creates a new comment
func (r *BadgerCommentRepository) Create(comment *models.Comment) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, CommentSeqKey)
		if err != nil {
			return err
		}
		comment.ID = id

		data, err := marshalEntity(comment.Detached())
		if err != nil {
			return err
		}
		return txn.Set(entityKey(CommentKeyPrefix, comment.ID), data)
	})
}

// GetByID retrieves a comment by ID
func (r *BadgerCommentRepository) GetByID(id int) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, entityKey(CommentKeyPrefix, id), &comment)
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// List returns the comments matching filter, oldest first
func (r *BadgerCommentRepository) List(filter CommentFilter) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		comments, err = scanPrefix(txn, CommentKeyPrefix, func(c *models.Comment) bool {
			return MatchComment(c, filter)
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	SortCommentsOldestFirst(comments)
	return comments, nil
}

// Delete deletes a comment by ID
func (r *BadgerCommentRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return deleteExisting(txn, entityKey(CommentKeyPrefix, id))
	})
}
