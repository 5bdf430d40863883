package middleware

import (
	"net/http"

	"yatube/app/auth"
	"yatube/app/logger"
	"yatube/app/models"
)

// UserLookup loads the user a session points at.
type UserLookup interface {
	GetUser(id int) (*models.User, error)
}

// CurrentUser puts the logged-in user, if any, into the request context.
// A session naming a deleted user is treated as anonymous.
func CurrentUser(sessions *auth.Sessions, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, ok := sessions.UserID(r); ok {
				user, err := users.GetUser(id)
				if err == nil {
					r = r.WithContext(auth.WithUser(r.Context(), user))
				} else {
					logger.Log.WithError(err).WithField("user_id", id).Debug("session user not loaded")
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LoginRequired sends anonymous visitors to the login page, which brings
// them back to the requested URL afterwards.
func LoginRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.UserFromContext(r.Context()) == nil {
			http.Redirect(w, r, auth.LoginURL(r.URL.RequestURI()), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LoginRequiredFunc is LoginRequired for a single handler function.
func LoginRequiredFunc(fn http.HandlerFunc) http.Handler {
	return LoginRequired(fn)
}
