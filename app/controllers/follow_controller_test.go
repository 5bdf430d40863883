package controllers

import (
	"net/http"
	"testing"

	"yatube/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowController(t *testing.T) {
	e := newTestEnv(t)
	leo := e.user(t, "leo")
	mia := e.user(t, "mia")
	kim := e.user(t, "kim")
	post := e.post(t, leo, "Worth following", nil)

	feed := func(t *testing.T, user string) []int {
		t.Helper()
		u, err := e.svc.Users.GetByUsername(user)
		require.NoError(t, err)
		w := e.getJSON("/follow/", u)
		require.Equal(t, http.StatusOK, w.Code)
		ids := []int{}
		for _, p := range decodePage(t, w.Body.Bytes()).PageObj.Items {
			ids = append(ids, p.ID)
		}
		return ids
	}

	t.Run("feed is empty before following", func(t *testing.T) {
		assert.Empty(t, feed(t, "mia"))
	})

	t.Run("follow adds author to feed", func(t *testing.T) {
		w := e.get("/profile/leo/follow/", mia)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/profile/leo/", w.Header().Get("Location"))
		assert.Equal(t, []int{post.ID}, feed(t, "mia"))
		assert.Empty(t, feed(t, "kim"))

		page := decodePage(t, e.getJSON("/profile/leo/", mia).Body.Bytes())
		assert.True(t, page.Following)
	})

	t.Run("following twice keeps one row", func(t *testing.T) {
		e.get("/profile/leo/follow/", mia)
		follows, err := e.svc.Follows.IsFollowing(mia, leo)
		require.NoError(t, err)
		assert.True(t, follows)

		filter, err := e.svc.Follows.FeedFilter(mia.ID)
		require.NoError(t, err)
		assert.Equal(t, repositories.PostFilter{ByAuthors: true, AuthorIDs: []int{leo.ID}}, filter)
	})

	t.Run("self follow is ignored", func(t *testing.T) {
		w := e.get("/profile/kim/follow/", kim)
		assert.Equal(t, http.StatusFound, w.Code)
		follows, err := e.svc.Follows.IsFollowing(kim, kim)
		require.NoError(t, err)
		assert.False(t, follows)
	})

	t.Run("unfollow removes author from feed", func(t *testing.T) {
		w := e.get("/profile/leo/unfollow/", mia)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/profile/leo/", w.Header().Get("Location"))
		assert.Empty(t, feed(t, "mia"))
	})

	t.Run("unknown author", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, e.get("/profile/nobody/follow/", mia).Code)
		assert.Equal(t, http.StatusNotFound, e.get("/profile/nobody/unfollow/", mia).Code)
	})

	t.Run("feed renders as html", func(t *testing.T) {
		w := e.get("/follow/", kim)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Вы пока ни на кого не подписаны.")
	})
}
