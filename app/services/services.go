// Package services holds the rules of the blog on top of the repositories.
package services

import (
	"yatube/app/media"
	"yatube/app/repositories"

	"github.com/pkg/errors"
)

var (
	// ErrForbidden is returned when a user acts on something they do not own.
	ErrForbidden = errors.New("forbidden")
	// ErrGroupNotFound is returned when a post names a group that does not exist.
	ErrGroupNotFound = errors.New("group not found")
	// ErrUsernameTaken is returned on signup with an existing username.
	ErrUsernameTaken = errors.New("a user with that username already exists")
	// ErrInvalidCredentials is returned by Authenticate for any mismatch.
	ErrInvalidCredentials = errors.New("please enter a correct username and password")
)

// IsNotFound reports whether err comes from a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, repositories.ErrNotFound)
}

// Services bundles every service over one store.
type Services struct {
	Users    *UserService
	Groups   *GroupService
	Posts    *PostService
	Comments *CommentService
	Follows  *FollowService
}

// New wires the services. files may be nil when uploads are disabled.
func New(store *repositories.Store, files media.Store) *Services {
	posts := NewPostService(store, files)
	return &Services{
		Users:    NewUserService(store, posts),
		Groups:   NewGroupService(store),
		Posts:    posts,
		Comments: NewCommentService(store),
		Follows:  NewFollowService(store),
	}
}
