package models

import (
	"errors"
	"path"
	"strings"
	"time"
	"unicode/utf8"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if strings.TrimSpace(p.Text) == "" {
		return errors.New("text cannot be blank")
	}

	if p.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
}

// String returns the first 15 characters of the text.
func (p *Post) String() string {
	if utf8.RuneCountInString(p.Text) <= 15 {
		return p.Text
	}
	return string([]rune(p.Text)[:15])
}

// SetGroup assigns the group, or clears it when group is nil.
func (p *Post) SetGroup(group *Group) {
	p.Group = group
	if group == nil {
		p.GroupID = nil
		return
	}
	id := group.ID
	p.GroupID = &id
}

// InGroup reports whether the post belongs to the group with the given id.
func (p *Post) InGroup(groupID int) bool {
	return p.GroupID != nil && *p.GroupID == groupID
}

// IsAuthor reports whether user wrote the post.
func (p *Post) IsAuthor(user *User) bool {
	return user != nil && user.ID == p.AuthorID
}

// ThumbnailPath is where the resized copy of Image lives.
func (p *Post) ThumbnailPath() string {
	return ThumbnailPath(p.Image)
}

// ThumbnailPath maps "posts/x.gif" to "posts/thumbs/x.jpg". Thumbnails are
// always JPEG.
func ThumbnailPath(image string) string {
	if image == "" {
		return ""
	}
	dir, file := path.Split(image)
	base := strings.TrimSuffix(file, path.Ext(file))
	return dir + "thumbs/" + base + ".jpg"
}

// Detached returns a copy without the loaded Author and Group, the shape
// that gets persisted.
func (p *Post) Detached() *Post {
	c := *p
	c.Author = nil
	c.Group = nil
	if p.GroupID != nil {
		id := *p.GroupID
		c.GroupID = &id
	}
	return &c
}
