package services

import (
	"yatube/app/models"
	"yatube/app/repositories"

	"github.com/pkg/errors"
)

// CommentService handles business logic for comments
type CommentService struct {
	store *repositories.Store
}

// NewCommentService creates a new CommentService
func NewCommentService(store *repositories.Store) *CommentService {
	return &CommentService{store: store}
}

// AddComment attaches a comment by author to the post with postID.
func (s *CommentService) AddComment(author *models.User, postID int, text string) (*models.Comment, error) {
	if author == nil {
		return nil, ErrForbidden
	}
	post, err := s.store.Posts.GetByID(postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{AuthorID: author.ID, Author: author, Text: text}
	if err := comment.SetPost(post); err != nil {
		return nil, err
	}
	comment.BeforeCreate()
	if err := comment.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid comment")
	}
	if err := s.store.Comments.Create(comment); err != nil {
		return nil, errors.Wrap(err, "create comment")
	}
	return comment, nil
}

// GetComment retrieves a comment by ID
func (s *CommentService) GetComment(id int) (*models.Comment, error) {
	return s.store.Comments.GetByID(id)
}

// ListPostComments returns the comments of a post, oldest first, with
// their authors attached.
func (s *CommentService) ListPostComments(postID int) ([]*models.Comment, error) {
	comments, err := s.store.Comments.List(repositories.CommentFilter{PostID: postID})
	if err != nil {
		return nil, errors.Wrap(err, "list comments")
	}
	users := map[int]*models.User{}
	for _, c := range comments {
		author, ok := users[c.AuthorID]
		if !ok {
			author, err = s.store.Users.GetByID(c.AuthorID)
			if err != nil {
				return nil, errors.Wrapf(err, "load author of comment %d", c.ID)
			}
			users[c.AuthorID] = author
		}
		c.Author = author
	}
	return comments, nil
}

// DeleteComment deletes a comment
func (s *CommentService) DeleteComment(id int) error {
	return s.store.Comments.Delete(id)
}
