package services

import (
	"yatube/app/logger"
	"yatube/app/models"
	"yatube/app/repositories"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// FollowService manages subscriptions between users.
type FollowService struct {
	store *repositories.Store
}

func NewFollowService(store *repositories.Store) *FollowService {
	return &FollowService{store: store}
}

// Follow subscribes user to author unless that is the same person or the
// subscription already exists. It reports whether a row was created.
func (s *FollowService) Follow(user, author *models.User) (bool, error) {
	if user == nil || author == nil {
		return false, ErrForbidden
	}
	if user.ID == author.ID {
		return false, nil
	}
	existing, err := s.store.Follows.List(repositories.FollowFilter{UserID: user.ID, AuthorID: author.ID})
	if err != nil {
		return false, errors.Wrap(err, "list follows")
	}
	if len(existing) > 0 {
		return false, nil
	}

	follow := &models.Follow{UserID: user.ID, AuthorID: author.ID}
	if err := follow.Validate(); err != nil {
		return false, errors.Wrap(err, "invalid follow")
	}
	if err := s.store.Follows.Create(follow); err != nil {
		return false, errors.Wrap(err, "create follow")
	}
	logger.Log.WithFields(logrus.Fields{
		"user":   user.Username,
		"author": author.Username,
	}).Info("follow created")
	return true, nil
}

// Unfollow removes every subscription of user to author and returns how
// many were removed.
func (s *FollowService) Unfollow(user, author *models.User) (int, error) {
	if user == nil || author == nil {
		return 0, ErrForbidden
	}
	follows, err := s.store.Follows.List(repositories.FollowFilter{UserID: user.ID, AuthorID: author.ID})
	if err != nil {
		return 0, errors.Wrap(err, "list follows")
	}
	for _, f := range follows {
		if err := s.store.Follows.Delete(f.ID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return 0, errors.Wrapf(err, "delete follow %d", f.ID)
		}
	}
	return len(follows), nil
}

// IsFollowing is false for anonymous users.
func (s *FollowService) IsFollowing(user, author *models.User) (bool, error) {
	if user == nil || author == nil {
		return false, nil
	}
	follows, err := s.store.Follows.List(repositories.FollowFilter{UserID: user.ID, AuthorID: author.ID})
	if err != nil {
		return false, errors.Wrap(err, "list follows")
	}
	return len(follows) > 0, nil
}

// FeedFilter selects the posts of everyone userID follows.
func (s *FollowService) FeedFilter(userID int) (repositories.PostFilter, error) {
	follows, err := s.store.Follows.List(repositories.FollowFilter{UserID: userID})
	if err != nil {
		return repositories.PostFilter{}, errors.Wrap(err, "list follows")
	}
	seen := map[int]bool{}
	ids := []int{}
	for _, f := range follows {
		if !seen[f.AuthorID] {
			seen[f.AuthorID] = true
			ids = append(ids, f.AuthorID)
		}
	}
	return repositories.PostFilter{ByAuthors: true, AuthorIDs: ids}, nil
}
