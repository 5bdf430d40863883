package routes

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"yatube/app/auth"
	"yatube/app/cache"
	"yatube/app/media"
	"yatube/app/models"
	"yatube/app/repositories"
	"yatube/app/services"

	"github.com/stretchr/testify/require"
)

const testSessionKey = "0123456789abcdef0123456789abcdef"

// testApp is the full router over an in-memory badger store, the memory
// page cache and real session cookies.
type testApp struct {
	router http.Handler
	svc    *services.Services
	cache  *cache.MemoryCache
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()
	db, err := repositories.OpenBadger("")
	require.NoError(t, err)
	store := repositories.NewBadgerStore(db)
	t.Cleanup(func() { store.Close() })

	pages, err := cache.NewMemoryCache()
	require.NoError(t, err)
	t.Cleanup(func() { pages.Close() })

	files := media.NewDiskStore(t.TempDir())
	svc := services.New(store, files)
	router := SetupRoutes(Dependencies{
		Services: svc,
		Sessions: auth.NewSessions(testSessionKey, 3600, false),
		Cache:    pages,
		Media:    files,
		PerPage:  10,
	})
	return &testApp{router: router, svc: svc, cache: pages}
}

func (a *testApp) user(t *testing.T, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username}
	require.NoError(t, a.svc.Users.Register(u, "password-"+username))
	return u
}

func (a *testApp) group(t *testing.T, slug string) *models.Group {
	t.Helper()
	g := &models.Group{Title: "Group " + slug, Slug: slug, Description: "About " + slug}
	require.NoError(t, a.svc.Groups.CreateGroup(g))
	return g
}

func (a *testApp) posts(t *testing.T, author *models.User, group *models.Group, n int) []*models.Post {
	t.Helper()
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		p := &models.Post{Text: fmt.Sprintf("Post %d by %s", i, author.Username)}
		p.SetGroup(group)
		require.NoError(t, a.svc.Posts.CreatePost(author, p))
		posts = append(posts, p)
	}
	return posts
}

// login signs in through the login form and returns the session cookies.
func (a *testApp) login(t *testing.T, username string) []*http.Cookie {
	t.Helper()
	w := a.do("POST", auth.LoginPath, url.Values{
		"username": {username},
		"password": {"password-" + username},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code, "login as %s", username)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func (a *testApp) do(method, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(target string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	return a.do("GET", target, nil, cookies)
}
