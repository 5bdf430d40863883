package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"yatube/app/auth"
	"yatube/app/cache"
	"yatube/app/logger"
	"yatube/app/models"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.Logger().SetOutput(&buf)
	logger.Logger().SetLevel(logrus.InfoLevel)
	t.Cleanup(func() { logger.Logger().SetOutput(os.Stderr) })
	return &buf
}

func TestLogger(t *testing.T) {
	buf := captureLog(t)

	handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, req)

	out := buf.String()
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "path=/test")
	assert.Contains(t, out, "status=418")
	assert.Contains(t, out, "duration=")
}

func TestLoggerDefaultsToOK(t *testing.T) {
	buf := captureLog(t)

	handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	assert.Contains(t, buf.String(), "status=200")
}

func TestRecoverer(t *testing.T) {
	buf := captureLog(t)

	handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error\n", w.Body.String())
	assert.Contains(t, buf.String(), "test panic")
}

func TestContentTypeJSON(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		accept         string
		expectedHeader string
	}{
		{
			name:           "API route",
			path:           "/api/test",
			expectedHeader: "application/json",
		},
		{
			name:           "Non-API route",
			path:           "/test",
			expectedHeader: "",
		},
		{
			name:           "short path",
			path:           "/",
			expectedHeader: "",
		},
		{
			name:           "api lookalike",
			path:           "/apiary/",
			expectedHeader: "",
		},
		{
			name:           "Accept header",
			path:           "/posts/1/",
			accept:         "application/json",
			expectedHeader: "application/json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := ContentTypeJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			contentType := w.Header().Get("Content-Type")
			assert.Equal(t, tt.expectedHeader, contentType)
		})
	}
}

func TestMiddlewareChain(t *testing.T) {
	captureLog(t)

	handler := Logger(Recoverer(ContentTypeJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "panic") {
			panic("test panic")
		}
		w.WriteHeader(http.StatusOK)
	}))))

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedType   string
	}{
		{
			name:           "Normal API request",
			path:           "/api/test",
			expectedStatus: http.StatusOK,
			expectedType:   "application/json",
		},
		{
			name:           "Panic request",
			path:           "/api/panic",
			expectedStatus: http.StatusInternalServerError,
			expectedType:   "text/plain; charset=utf-8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedType, w.Header().Get("Content-Type"))
		})
	}
}

type fakeUsers map[int]*models.User

func (f fakeUsers) GetUser(id int) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, errors.New("not found")
}

func loggedInRequest(t *testing.T, sessions *auth.Sessions, user *models.User, target string) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, sessions.Login(rec, httptest.NewRequest("POST", auth.LoginPath, nil), user))
	req := httptest.NewRequest("GET", target, nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestCurrentUser(t *testing.T) {
	sessions := auth.NewSessions("0123456789abcdef0123456789abcdef", 3600, false)
	alice := &models.User{ID: 1, Username: "alice"}
	users := fakeUsers{1: alice}

	var seen *models.User
	handler := CurrentUser(sessions, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = auth.UserFromContext(r.Context())
	}))

	t.Run("anonymous", func(t *testing.T) {
		seen = nil
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
		assert.Nil(t, seen)
	})

	t.Run("logged in", func(t *testing.T) {
		seen = nil
		handler.ServeHTTP(httptest.NewRecorder(), loggedInRequest(t, sessions, alice, "/"))
		require.NotNil(t, seen)
		assert.Equal(t, "alice", seen.Username)
	})

	t.Run("deleted user", func(t *testing.T) {
		seen = nil
		ghost := &models.User{ID: 99, Username: "ghost"}
		handler.ServeHTTP(httptest.NewRecorder(), loggedInRequest(t, sessions, ghost, "/"))
		assert.Nil(t, seen)
	})
}

func TestLoginRequired(t *testing.T) {
	handler := LoginRequired(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("anonymous is redirected", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/create/", nil))
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/auth/login/?next=/create/", w.Header().Get("Location"))
	})

	t.Run("user passes", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/create/", nil)
		req = req.WithContext(auth.WithUser(req.Context(), &models.User{ID: 1}))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

// mapCache is a trivially consistent PageCache for handler tests.
type mapCache struct {
	mu      sync.Mutex
	entries map[string]*cache.Entry
}

func newMapCache() *mapCache { return &mapCache{entries: map[string]*cache.Entry{}} }

func (m *mapCache) Get(_ context.Context, key string) (*cache.Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	return e, ok
}

func (m *mapCache) Set(_ context.Context, key string, entry *cache.Entry, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry
	return nil
}

func (m *mapCache) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = map[string]*cache.Entry{}
	return nil
}

func (m *mapCache) Close() error { return nil }

func TestCachePage(t *testing.T) {
	calls := 0
	body := "first"
	status := http.StatusOK
	handler := CachePage(newMapCache(), time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))

	get := func(target string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", target, nil))
		return w
	}

	first := get("/")
	body = "second"
	second := get("/")
	assert.Equal(t, 1, calls)
	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, "text/html; charset=utf-8", second.Header().Get("Content-Type"))

	t.Run("query string is part of the key", func(t *testing.T) {
		w := get("/?page=2")
		assert.Equal(t, "second", w.Body.String())
		assert.Equal(t, 2, calls)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		status = http.StatusNotFound
		get("/missing/")
		get("/missing/")
		assert.Equal(t, 4, calls)
		status = http.StatusOK
	})

	t.Run("post bypasses cache", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("POST", "/", nil))
		assert.Equal(t, 5, calls)
	})
}

func TestPageCacheKey(t *testing.T) {
	anon := httptest.NewRequest("GET", "/?page=2", nil)
	user := httptest.NewRequest("GET", "/?page=2", nil)
	user = user.WithContext(auth.WithUser(user.Context(), &models.User{ID: 3}))
	api := httptest.NewRequest("GET", "/?page=2", nil)
	api.Header.Set("Accept", "application/json")

	assert.NotEqual(t, PageCacheKey(anon), PageCacheKey(user))
	assert.NotEqual(t, PageCacheKey(anon), PageCacheKey(api))
	assert.Equal(t, PageCacheKey(anon), PageCacheKey(httptest.NewRequest("GET", "/?page=2", nil)))
}
