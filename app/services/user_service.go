package services

import (
	"context"

	"yatube/app/logger"
	"yatube/app/models"
	"yatube/app/repositories"

	"github.com/pkg/errors"
)

// UserService manages accounts.
type UserService struct {
	store *repositories.Store
	posts *PostService
}

func NewUserService(store *repositories.Store, posts *PostService) *UserService {
	return &UserService{store: store, posts: posts}
}

// Register creates an account with a hashed password.
func (s *UserService) Register(user *models.User, password string) error {
	if _, err := s.store.Users.GetByUsername(user.Username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return errors.Wrap(err, "lookup username")
	}

	if err := user.SetPassword(password); err != nil {
		return errors.Wrap(err, "hash password")
	}
	user.BeforeCreate()
	if err := user.Validate(); err != nil {
		return errors.Wrap(err, "invalid user")
	}
	if err := s.store.Users.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return ErrUsernameTaken
		}
		return errors.Wrap(err, "create user")
	}
	logger.Log.WithField("username", user.Username).Info("user registered")
	return nil
}

// Authenticate returns the user if password matches.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.store.Users.GetByUsername(username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "lookup user")
	}
	if err := user.CheckPassword(password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetUser(id int) (*models.User, error) {
	return s.store.Users.GetByID(id)
}

func (s *UserService) GetByUsername(username string) (*models.User, error) {
	return s.store.Users.GetByUsername(username)
}

func (s *UserService) ListUsers() ([]*models.User, error) {
	return s.store.Users.List()
}

// DeleteUser removes the user with everything they own: their posts (with
// the comments on them), their own comments and follows in both directions.
func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	user, err := s.store.Users.GetByID(id)
	if err != nil {
		return err
	}

	posts, err := s.store.Posts.List(repositories.PostFilter{AuthorID: id})
	if err != nil {
		return errors.Wrap(err, "list posts")
	}
	for _, post := range posts {
		if err := s.posts.DeletePost(ctx, post.ID); err != nil {
			return errors.Wrapf(err, "delete post %d", post.ID)
		}
	}

	comments, err := s.store.Comments.List(repositories.CommentFilter{AuthorID: id})
	if err != nil {
		return errors.Wrap(err, "list comments")
	}
	for _, c := range comments {
		if err := s.store.Comments.Delete(c.ID); err != nil {
			return errors.Wrapf(err, "delete comment %d", c.ID)
		}
	}

	for _, filter := range []repositories.FollowFilter{{UserID: id}, {AuthorID: id}} {
		follows, err := s.store.Follows.List(filter)
		if err != nil {
			return errors.Wrap(err, "list follows")
		}
		for _, f := range follows {
			// a self-follow shows up in both listings
			if err := s.store.Follows.Delete(f.ID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
				return errors.Wrapf(err, "delete follow %d", f.ID)
			}
		}
	}

	if err := s.store.Users.Delete(id); err != nil {
		return err
	}
	logger.Log.WithField("username", user.Username).Info("user deleted")
	return nil
}
