package services

import (
	"yatube/app/logger"
	"yatube/app/models"
	"yatube/app/repositories"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// GroupService manages the post categories.
type GroupService struct {
	store *repositories.Store
}

func NewGroupService(store *repositories.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup validates and stores group. Slugs are unique.
func (s *GroupService) CreateGroup(group *models.Group) error {
	if err := group.Validate(); err != nil {
		return errors.Wrap(err, "invalid group")
	}
	if err := s.store.Groups.Create(group); err != nil {
		return errors.Wrap(err, "create group")
	}
	logger.Log.WithField("slug", group.Slug).Info("group created")
	return nil
}

func (s *GroupService) GetBySlug(slug string) (*models.Group, error) {
	return s.store.Groups.GetBySlug(slug)
}

func (s *GroupService) ListGroups() ([]*models.Group, error) {
	return s.store.Groups.List()
}

// DeleteGroup removes the group; its posts stay, ungrouped.
func (s *GroupService) DeleteGroup(id int) error {
	if _, err := s.store.Groups.GetByID(id); err != nil {
		return err
	}
	posts, err := s.store.Posts.List(repositories.PostFilter{GroupID: id})
	if err != nil {
		return errors.Wrap(err, "list posts")
	}
	for _, post := range posts {
		post.SetGroup(nil)
		if err := s.store.Posts.Update(post); err != nil {
			return errors.Wrapf(err, "ungroup post %d", post.ID)
		}
	}
	if err := s.store.Groups.Delete(id); err != nil {
		return err
	}
	logger.Log.WithFields(logrus.Fields{"group_id": id, "posts": len(posts)}).Info("group deleted")
	return nil
}
