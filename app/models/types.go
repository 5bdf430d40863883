package models

import "time"

// User is an account that can author posts and comments and follow other users.
type User struct {
	ID           int       `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"type:varchar(150);uniqueIndex" validate:"required,min=3,max=150,username"`
	FirstName    string    `json:"first_name" gorm:"type:varchar(150)" validate:"max=150"`
	LastName     string    `json:"last_name" gorm:"type:varchar(150)" validate:"max=150"`
	Email        string    `json:"email,omitempty" gorm:"type:varchar(254)" validate:"omitempty,email,max=254"`
	PasswordHash string    `json:"-" gorm:"type:varchar(100)" validate:"required"`
	CreatedAt    time.Time `json:"date_joined" validate:"required"`
}

// Group is a named category posts can belong to.
type Group struct {
	ID          int    `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"type:varchar(200)" validate:"required,max=200"`
	Slug        string `json:"slug" gorm:"type:varchar(200);uniqueIndex" validate:"required,max=200,slug"`
	Description string `json:"description" validate:"required"`
}

// Post is a single authored text entry, optionally grouped and illustrated.
// Author and Group are populated by the service layer for rendering and are
// never persisted as part of the post itself.
type Post struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	Text      string    `json:"text" validate:"required"`
	AuthorID  int       `json:"author_id" gorm:"index;not null" validate:"required,gt=0"`
	Author    *User     `json:"author,omitempty" gorm:"-" validate:"-"`
	GroupID   *int      `json:"group_id" gorm:"index" validate:"omitempty,gt=0"`
	Group     *Group    `json:"group,omitempty" gorm:"-" validate:"-"`
	Image     string    `json:"image,omitempty" gorm:"type:varchar(255)" validate:"max=255"`
	CreatedAt time.Time `json:"created" gorm:"index" validate:"required"`
}

// Comment is a reply attached to a Post.
type Comment struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	PostID    int       `json:"post_id" gorm:"index;not null" validate:"required,gt=0"`
	AuthorID  int       `json:"author_id" gorm:"index;not null" validate:"required,gt=0"`
	Author    *User     `json:"author,omitempty" gorm:"-" validate:"-"`
	Text      string    `json:"text" validate:"required"`
	CreatedAt time.Time `json:"created" validate:"required"`
}

// Follow is a directed subscription from UserID to AuthorID's posts.
// Nothing at the storage layer prevents duplicate or self-referencing rows.
type Follow struct {
	ID       int `json:"id" gorm:"primaryKey"`
	UserID   int `json:"user_id" gorm:"index;not null" validate:"required,gt=0"`
	AuthorID int `json:"author_id" gorm:"index;not null" validate:"required,gt=0"`
}
