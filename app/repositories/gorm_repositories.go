package repositories

import (
	"yatube/app/models"

	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository on a SQL database
type GormUserRepository struct {
	db *gorm.DB
}

func (r *GormUserRepository) Create(user *models.User) error {
	return gormErr(r.db.Create(user).Error)
}

func (r *GormUserRepository) GetByID(id int) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, gormErr(err)
	}
	return &user, nil
}

func (r *GormUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, gormErr(err)
	}
	return &user, nil
}

func (r *GormUserRepository) List() ([]*models.User, error) {
	var users []*models.User
	if err := r.db.Order("username").Find(&users).Error; err != nil {
		return nil, gormErr(err)
	}
	return users, nil
}

func (r *GormUserRepository) Delete(id int) error {
	return deleteByID(r.db, &models.User{}, id)
}

// GormGroupRepository implements GroupRepository on a SQL database
type GormGroupRepository struct {
	db *gorm.DB
}

func (r *GormGroupRepository) Create(group *models.Group) error {
	return gormErr(r.db.Create(group).Error)
}

func (r *GormGroupRepository) GetByID(id int) (*models.Group, error) {
	var group models.Group
	if err := r.db.First(&group, id).Error; err != nil {
		return nil, gormErr(err)
	}
	return &group, nil
}

func (r *GormGroupRepository) GetBySlug(slug string) (*models.Group, error) {
	var group models.Group
	if err := r.db.Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, gormErr(err)
	}
	return &group, nil
}

func (r *GormGroupRepository) List() ([]*models.Group, error) {
	var groups []*models.Group
	if err := r.db.Order("title").Find(&groups).Error; err != nil {
		return nil, gormErr(err)
	}
	return groups, nil
}

func (r *GormGroupRepository) Delete(id int) error {
	return deleteByID(r.db, &models.Group{}, id)
}

// GormPostRepository implements PostRepository on a SQL database
type GormPostRepository struct {
	db *gorm.DB
}

func postScope(filter PostFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if filter.AuthorID != 0 {
			q = q.Where("author_id = ?", filter.AuthorID)
		}
		if filter.GroupID != 0 {
			q = q.Where("group_id = ?", filter.GroupID)
		}
		if filter.ByAuthors {
			q = q.Where("author_id IN ?", filter.AuthorIDs)
		}
		return q
	}
}

func (r *GormPostRepository) Create(post *models.Post) error {
	return gormErr(r.db.Create(post).Error)
}

func (r *GormPostRepository) GetByID(id int) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, gormErr(err)
	}
	return &post, nil
}

func (r *GormPostRepository) List(filter PostFilter) ([]*models.Post, error) {
	posts := []*models.Post{}
	// IN () is a syntax error on some databases
	if filter.ByAuthors && len(filter.AuthorIDs) == 0 {
		return posts, nil
	}
	err := r.db.Scopes(postScope(filter)).
		Order("created_at desc").
		Order("id desc").
		Find(&posts).Error
	if err != nil {
		return nil, gormErr(err)
	}
	return posts, nil
}

func (r *GormPostRepository) Count(filter PostFilter) (int, error) {
	if filter.ByAuthors && len(filter.AuthorIDs) == 0 {
		return 0, nil
	}
	var n int64
	if err := r.db.Model(&models.Post{}).Scopes(postScope(filter)).Count(&n).Error; err != nil {
		return 0, gormErr(err)
	}
	return int(n), nil
}

func (r *GormPostRepository) Update(post *models.Post) error {
	var existing models.Post
	if err := r.db.Select("id").First(&existing, post.ID).Error; err != nil {
		return gormErr(err)
	}
	return gormErr(r.db.Save(post.Detached()).Error)
}

func (r *GormPostRepository) Delete(id int) error {
	return deleteByID(r.db, &models.Post{}, id)
}

// GormCommentRepository implements CommentRepository on a SQL database
type GormCommentRepository struct {
	db *gorm.DB
}

func (r *GormCommentRepository) Create(comment *models.Comment) error {
	return gormErr(r.db.Create(comment).Error)
}

func (r *GormCommentRepository) GetByID(id int) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, gormErr(err)
	}
	return &comment, nil
}

func (r *GormCommentRepository) List(filter CommentFilter) ([]*models.Comment, error) {
	comments := []*models.Comment{}
	q := r.db
	if filter.PostID != 0 {
		q = q.Where("post_id = ?", filter.PostID)
	}
	if filter.AuthorID != 0 {
		q = q.Where("author_id = ?", filter.AuthorID)
	}
	if err := q.Order("created_at").Order("id").Find(&comments).Error; err != nil {
		return nil, gormErr(err)
	}
	return comments, nil
}

func (r *GormCommentRepository) Delete(id int) error {
	return deleteByID(r.db, &models.Comment{}, id)
}

// GormFollowRepository implements FollowRepository on a SQL database
type GormFollowRepository struct {
	db *gorm.DB
}

func (r *GormFollowRepository) Create(follow *models.Follow) error {
	return gormErr(r.db.Create(follow).Error)
}

func (r *GormFollowRepository) List(filter FollowFilter) ([]*models.Follow, error) {
	follows := []*models.Follow{}
	q := r.db
	if filter.UserID != 0 {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.AuthorID != 0 {
		q = q.Where("author_id = ?", filter.AuthorID)
	}
	if err := q.Order("id").Find(&follows).Error; err != nil {
		return nil, gormErr(err)
	}
	return follows, nil
}

func (r *GormFollowRepository) Delete(id int) error {
	return deleteByID(r.db, &models.Follow{}, id)
}
