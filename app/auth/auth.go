// Package auth keeps the logged-in user in a signed session cookie.
package auth

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"yatube/app/models"

	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
)

const (
	SessionName = "yatube_session"
	userIDKey   = "user_id"

	LoginPath  = "/auth/login/"
	LogoutPath = "/auth/logout/"
	SignupPath = "/auth/signup/"
)

// Sessions reads and writes the session cookie.
type Sessions struct {
	store sessions.Store
}

// NewSessions signs cookies with key. maxAge is in seconds.
func NewSessions(key string, maxAge int, secure bool) *Sessions {
	store := sessions.NewCookieStore([]byte(key))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Sessions{store: store}
}

// Login binds user to the session of this response.
func (s *Sessions) Login(w http.ResponseWriter, r *http.Request, user *models.User) error {
	// a tampered cookie yields a fresh session plus an error, which is fine here
	session, _ := s.store.Get(r, SessionName)
	session.Values[userIDKey] = user.ID
	return errors.Wrap(session.Save(r, w), "save session")
}

// Logout expires the session cookie.
func (s *Sessions) Logout(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.store.Get(r, SessionName)
	delete(session.Values, userIDKey)
	session.Options.MaxAge = -1
	return errors.Wrap(session.Save(r, w), "save session")
}

// UserID returns the id stored by Login, if any.
func (s *Sessions) UserID(r *http.Request) (int, bool) {
	session, err := s.store.Get(r, SessionName)
	if err != nil {
		return 0, false
	}
	id, ok := session.Values[userIDKey].(int)
	return id, ok && id > 0
}

type contextKey struct{}

// WithUser returns a context carrying user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// UserFromContext returns the authenticated user or nil.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(contextKey{}).(*models.User)
	return user
}

// LoginURL is the login page that returns to next afterwards. Slashes in
// next stay readable: /auth/login/?next=/create/
func LoginURL(next string) string {
	if next == "" {
		return LoginPath
	}
	return LoginPath + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

// SafeNext accepts only paths on this site, anything else becomes "".
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") {
		return ""
	}
	if strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return ""
	}
	return next
}
