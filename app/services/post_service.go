package services

import (
	"context"

	"yatube/app/logger"
	"yatube/app/media"
	"yatube/app/models"
	"yatube/app/repositories"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// PostService handles business logic for blog posts
type PostService struct {
	store *repositories.Store
	files media.Store
}

// NewPostService creates a new PostService
func NewPostService(store *repositories.Store, files media.Store) *PostService {
	return &PostService{store: store, files: files}
}

// Media is the store post images live in, nil if uploads are disabled.
func (s *PostService) Media() media.Store {
	return s.files
}

// CreatePost stores post as written by author.
func (s *PostService) CreatePost(author *models.User, post *models.Post) error {
	if author == nil {
		return ErrForbidden
	}
	post.AuthorID = author.ID
	post.Author = author
	if err := s.resolveGroup(post); err != nil {
		return err
	}
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return errors.Wrap(err, "invalid post")
	}
	if err := s.store.Posts.Create(post); err != nil {
		return errors.Wrap(err, "create post")
	}
	logger.Log.WithFields(logrus.Fields{
		"post_id": post.ID,
		"author":  author.Username,
	}).Info("post created")
	return nil
}

// GetPost retrieves a post by ID with its author and group attached
func (s *PostService) GetPost(id int) (*models.Post, error) {
	post, err := s.store.Posts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.attach([]*models.Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

// ListPosts returns matching posts, newest first, relations attached.
func (s *PostService) ListPosts(filter repositories.PostFilter) ([]*models.Post, error) {
	posts, err := s.store.Posts.List(filter)
	if err != nil {
		return nil, errors.Wrap(err, "list posts")
	}
	if err := s.attach(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CountPosts counts matching posts.
func (s *PostService) CountPosts(filter repositories.PostFilter) (int, error) {
	n, err := s.store.Posts.Count(filter)
	return n, errors.Wrap(err, "count posts")
}

// UpdatePost saves text, group and image changes made by editor. The
// author and creation time are never changed.
func (s *PostService) UpdatePost(editor *models.User, post *models.Post) error {
	existing, err := s.store.Posts.GetByID(post.ID)
	if err != nil {
		return err
	}
	if !existing.IsAuthor(editor) {
		return ErrForbidden
	}
	post.AuthorID = existing.AuthorID
	post.CreatedAt = existing.CreatedAt
	if err := s.resolveGroup(post); err != nil {
		return err
	}
	if err := post.Validate(); err != nil {
		return errors.Wrap(err, "invalid post")
	}
	if err := s.store.Posts.Update(post); err != nil {
		return errors.Wrap(err, "update post")
	}
	post.Author = editor
	return nil
}

// DeletePost deletes a post, its comments and its image
func (s *PostService) DeletePost(ctx context.Context, id int) error {
	post, err := s.store.Posts.GetByID(id)
	if err != nil {
		return err
	}

	comments, err := s.store.Comments.List(repositories.CommentFilter{PostID: id})
	if err != nil {
		return errors.Wrap(err, "failed to get comments")
	}
	for _, comment := range comments {
		if err := s.store.Comments.Delete(comment.ID); err != nil {
			return errors.Wrapf(err, "failed to delete comment %d", comment.ID)
		}
	}

	if err := s.store.Posts.Delete(id); err != nil {
		return err
	}

	if s.files != nil && post.Image != "" {
		// the post is gone either way, a leftover file is only logged
		if err := media.DeleteImage(ctx, s.files, post.Image); err != nil {
			logger.Log.WithError(err).WithField("image", post.Image).Warn("failed to delete post image")
		}
	}
	logger.Log.WithField("post_id", id).Info("post deleted")
	return nil
}

// resolveGroup checks that the chosen group exists and attaches it.
func (s *PostService) resolveGroup(post *models.Post) error {
	if post.GroupID == nil {
		post.Group = nil
		return nil
	}
	group, err := s.store.Groups.GetByID(*post.GroupID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrGroupNotFound
	}
	if err != nil {
		return errors.Wrap(err, "load group")
	}
	post.Group = group
	return nil
}

// attach fills Author and Group, loading each referenced record once.
func (s *PostService) attach(posts []*models.Post) error {
	users := map[int]*models.User{}
	groups := map[int]*models.Group{}

	for _, post := range posts {
		author, ok := users[post.AuthorID]
		if !ok {
			var err error
			author, err = s.store.Users.GetByID(post.AuthorID)
			if err != nil {
				return errors.Wrapf(err, "load author %d of post %d", post.AuthorID, post.ID)
			}
			users[post.AuthorID] = author
		}
		post.Author = author

		post.Group = nil
		if post.GroupID == nil {
			continue
		}
		group, ok := groups[*post.GroupID]
		if !ok {
			var err error
			group, err = s.store.Groups.GetByID(*post.GroupID)
			if errors.Is(err, repositories.ErrNotFound) {
				// dangling reference, shown as ungrouped
				post.GroupID = nil
				continue
			}
			if err != nil {
				return errors.Wrap(err, "load group")
			}
			groups[*post.GroupID] = group
		}
		post.Group = group
	}
	return nil
}
