package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestPostValidation(t *testing.T) {
	tests := []struct {
		name    string
		post    *Post
		wantErr bool
	}{
		{
			name: "valid post",
			post: &Post{
				ID:        1,
				Text:      "A perfectly fine post",
				AuthorID:  1,
				CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "valid post in a group",
			post: &Post{
				Text:      "Grouped",
				AuthorID:  1,
				GroupID:   intPtr(3),
				CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "empty text",
			post: &Post{
				Text:      "",
				AuthorID:  1,
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "blank text",
			post: &Post{
				Text:      "   \n\t",
				AuthorID:  1,
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "missing author",
			post: &Post{
				Text:      "Orphan",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "bad group id",
			post: &Post{
				Text:      "Bad group",
				AuthorID:  1,
				GroupID:   intPtr(0),
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "zero creation time",
			post: &Post{
				Text:     "Valid text",
				AuthorID: 1,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostBeforeCreate(t *testing.T) {
	post := &Post{Text: "Test Post", AuthorID: 1}

	assert.True(t, post.CreatedAt.IsZero())
	post.BeforeCreate()
	assert.False(t, post.CreatedAt.IsZero())
}

func TestPostString(t *testing.T) {
	assert.Equal(t, "short", (&Post{Text: "short"}).String())
	assert.Equal(t, "Тестовый текст ", (&Post{Text: "Тестовый текст поста"}).String())
}

func TestPostGroupHelpers(t *testing.T) {
	post := &Post{Text: "Grouped", AuthorID: 1}
	group := &Group{ID: 4, Title: "Cats", Slug: "cats"}

	post.SetGroup(group)
	assert.True(t, post.InGroup(4))
	assert.False(t, post.InGroup(5))
	assert.Equal(t, group, post.Group)

	// the pointer must not alias the group's field
	group.ID = 9
	assert.Equal(t, 4, *post.GroupID)

	post.SetGroup(nil)
	assert.Nil(t, post.GroupID)
	assert.False(t, post.InGroup(4))
}

func TestPostIsAuthor(t *testing.T) {
	post := &Post{AuthorID: 2}
	assert.True(t, post.IsAuthor(&User{ID: 2}))
	assert.False(t, post.IsAuthor(&User{ID: 3}))
	assert.False(t, post.IsAuthor(nil))
}

func TestPostThumbnailPath(t *testing.T) {
	assert.Equal(t, "", (&Post{}).ThumbnailPath())
	assert.Equal(t, "posts/thumbs/abc.jpg", (&Post{Image: "posts/abc.gif"}).ThumbnailPath())
}

func TestPostDetached(t *testing.T) {
	post := &Post{
		ID:       1,
		Text:     "text",
		AuthorID: 1,
		Author:   &User{ID: 1},
		GroupID:  intPtr(2),
		Group:    &Group{ID: 2},
	}
	d := post.Detached()
	assert.Nil(t, d.Author)
	assert.Nil(t, d.Group)
	assert.Equal(t, 2, *d.GroupID)
	assert.NotSame(t, post.GroupID, d.GroupID)
	assert.NotNil(t, post.Author, "original must keep its relations")
}
