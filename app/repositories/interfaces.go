package repositories

import "yatube/app/models"

// PostFilter narrows a post listing. Zero fields are ignored.
type PostFilter struct {
	AuthorID int
	GroupID  int
	// ByAuthors restricts results to AuthorIDs, even when it is empty.
	ByAuthors bool
	AuthorIDs []int
}

// CommentFilter narrows a comment listing. Zero fields are ignored.
type CommentFilter struct {
	PostID   int
	AuthorID int
}

// FollowFilter narrows a follow listing. Zero fields are ignored.
type FollowFilter struct {
	UserID   int
	AuthorID int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	List() ([]*models.User, error)
	Delete(id int) error
}

// GroupRepository defines the interface for group data access
type GroupRepository interface {
	Create(group *models.Group) error
	GetByID(id int) (*models.Group, error)
	GetBySlug(slug string) (*models.Group, error)
	List() ([]*models.Group, error)
	Delete(id int) error
}

// PostRepository defines the interface for post data access. Listings are
// ordered newest first.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	List(filter PostFilter) ([]*models.Post, error)
	Count(filter PostFilter) (int, error)
	Update(post *models.Post) error
	Delete(id int) error
}

// CommentRepository defines the interface for comment data access. Listings
// are ordered oldest first.
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id int) (*models.Comment, error)
	List(filter CommentFilter) ([]*models.Comment, error)
	Delete(id int) error
}

// FollowRepository defines the interface for follow data access
type FollowRepository interface {
	Create(follow *models.Follow) error
	List(filter FollowFilter) ([]*models.Follow, error)
	Delete(id int) error
}

// Store groups the repositories of one storage backend.
type Store struct {
	Users    UserRepository
	Groups   GroupRepository
	Posts    PostRepository
	Comments CommentRepository
	Follows  FollowRepository

	closer func() error
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}
