// Package mock provides in-memory repositories for service and controller tests.
package mock

import (
	"sort"
	"sync"

	"yatube/app/models"
	"yatube/app/repositories"
)

// NewStore returns a Store whose repositories live in memory.
func NewStore() *repositories.Store {
	return &repositories.Store{
		Users:    NewUserRepository(),
		Groups:   NewGroupRepository(),
		Posts:    NewPostRepository(),
		Comments: NewCommentRepository(),
		Follows:  NewFollowRepository(),
	}
}

type UserRepository struct {
	users  map[int]*models.User
	nextID int
	mutex  sync.RWMutex
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[int]*models.User), nextID: 1}
}

func (m *UserRepository) Create(user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, u := range m.users {
		if u.Username == user.Username {
			return repositories.ErrDuplicate
		}
	}
	user.ID = m.nextID
	m.nextID++
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *UserRepository) GetByID(id int) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	u := *user
	return &u, nil
}

func (m *UserRepository) GetByUsername(username string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, user := range m.users {
		if user.Username == username {
			u := *user
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepository) List() ([]*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	users := make([]*models.User, 0, len(m.users))
	for _, user := range m.users {
		u := *user
		users = append(users, &u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (m *UserRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.users[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

type GroupRepository struct {
	groups map[int]*models.Group
	nextID int
	mutex  sync.RWMutex
}

func NewGroupRepository() *GroupRepository {
	return &GroupRepository{groups: make(map[int]*models.Group), nextID: 1}
}

func (m *GroupRepository) Create(group *models.Group) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, g := range m.groups {
		if g.Slug == group.Slug {
			return repositories.ErrDuplicate
		}
	}
	group.ID = m.nextID
	m.nextID++
	stored := *group
	m.groups[group.ID] = &stored
	return nil
}

func (m *GroupRepository) GetByID(id int) (*models.Group, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	group, exists := m.groups[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	g := *group
	return &g, nil
}

func (m *GroupRepository) GetBySlug(slug string) (*models.Group, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, group := range m.groups {
		if group.Slug == slug {
			g := *group
			return &g, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *GroupRepository) List() ([]*models.Group, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	groups := make([]*models.Group, 0, len(m.groups))
	for _, group := range m.groups {
		g := *group
		groups = append(groups, &g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Title < groups[j].Title })
	return groups, nil
}

func (m *GroupRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.groups[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.groups, id)
	return nil
}

type PostRepository struct {
	posts  map[int]*models.Post
	nextID int
	mutex  sync.RWMutex
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[int]*models.Post), nextID: 1}
}

func (m *PostRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.posts = make(map[int]*models.Post)
	m.nextID = 1
}

func (m *PostRepository) Create(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post.ID = m.nextID
	m.nextID++
	m.posts[post.ID] = post.Detached()
	return nil
}

func (m *PostRepository) GetByID(id int) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return post.Detached(), nil
}

func (m *PostRepository) List(filter repositories.PostFilter) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	posts := []*models.Post{}
	for _, post := range m.posts {
		if repositories.MatchPost(post, filter) {
			posts = append(posts, post.Detached())
		}
	}
	repositories.SortPostsNewestFirst(posts)
	return posts, nil
}

func (m *PostRepository) Count(filter repositories.PostFilter) (int, error) {
	posts, err := m.List(filter)
	return len(posts), err
}

func (m *PostRepository) Update(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[post.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.posts[post.ID] = post.Detached()
	return nil
}

func (m *PostRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

type CommentRepository struct {
	comments map[int]*models.Comment
	nextID   int
	mutex    sync.RWMutex
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[int]*models.Comment), nextID: 1}
}

func (m *CommentRepository) Create(comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	comment.ID = m.nextID
	m.nextID++
	m.comments[comment.ID] = comment.Detached()
	return nil
}

func (m *CommentRepository) GetByID(id int) (*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comment, exists := m.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return comment.Detached(), nil
}

func (m *CommentRepository) List(filter repositories.CommentFilter) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comments := []*models.Comment{}
	for _, comment := range m.comments {
		if repositories.MatchComment(comment, filter) {
			comments = append(comments, comment.Detached())
		}
	}
	repositories.SortCommentsOldestFirst(comments)
	return comments, nil
}

func (m *CommentRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.comments[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

type FollowRepository struct {
	follows map[int]*models.Follow
	nextID  int
	mutex   sync.RWMutex
}

func NewFollowRepository() *FollowRepository {
	return &FollowRepository{follows: make(map[int]*models.Follow), nextID: 1}
}

func (m *FollowRepository) Create(follow *models.Follow) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	follow.ID = m.nextID
	m.nextID++
	stored := *follow
	m.follows[follow.ID] = &stored
	return nil
}

func (m *FollowRepository) List(filter repositories.FollowFilter) ([]*models.Follow, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	follows := []*models.Follow{}
	for _, follow := range m.follows {
		if repositories.MatchFollow(follow, filter) {
			f := *follow
			follows = append(follows, &f)
		}
	}
	sort.Slice(follows, func(i, j int) bool { return follows[i].ID < follows[j].ID })
	return follows, nil
}

func (m *FollowRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.follows[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.follows, id)
	return nil
}
