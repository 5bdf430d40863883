package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthControllerSignup(t *testing.T) {
	e := newTestEnv(t)
	e.user(t, "taken")

	tests := []struct {
		name      string
		values    url.Values
		wantCode  int
		wantError string
	}{
		{
			name: "valid",
			values: url.Values{
				"username": {"newbie"}, "first_name": {"New"},
				"password1": {"long-enough"}, "password2": {"long-enough"},
			},
			wantCode: http.StatusFound,
		},
		{
			name: "passwords differ",
			values: url.Values{
				"username": {"other"}, "password1": {"long-enough"}, "password2": {"different!"},
			},
			wantCode:  http.StatusOK,
			wantError: "The two password fields didn",
		},
		{
			name: "short password",
			values: url.Values{
				"username": {"other"}, "password1": {"short"}, "password2": {"short"},
			},
			wantCode:  http.StatusOK,
			wantError: "at least 8 characters",
		},
		{
			name: "username taken",
			values: url.Values{
				"username": {"taken"}, "password1": {"long-enough"}, "password2": {"long-enough"},
			},
			wantCode:  http.StatusOK,
			wantError: "already exists",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := e.postForm("/auth/signup/", tt.values, nil)
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantError != "" {
				assert.Contains(t, w.Body.String(), tt.wantError)
			} else {
				assert.Equal(t, "/", w.Header().Get("Location"))
			}
		})
	}

	user, err := e.svc.Users.GetByUsername("newbie")
	require.NoError(t, err)
	assert.Equal(t, "New", user.FirstName)
}

func TestAuthControllerLogin(t *testing.T) {
	e := newTestEnv(t)
	e.user(t, "leo")

	t.Run("form keeps next", func(t *testing.T) {
		w := e.get("/auth/login/?next=/create/", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `value="/create/"`)
	})

	tests := []struct {
		name       string
		values     url.Values
		wantCode   int
		wantLoc    string
		wantCookie bool
	}{
		{
			name:       "valid with next",
			values:     url.Values{"username": {"leo"}, "password": {"password-leo"}, "next": {"/create/"}},
			wantCode:   http.StatusFound,
			wantLoc:    "/create/",
			wantCookie: true,
		},
		{
			name:       "foreign next is ignored",
			values:     url.Values{"username": {"leo"}, "password": {"password-leo"}, "next": {"https://evil.example/"}},
			wantCode:   http.StatusFound,
			wantLoc:    "/",
			wantCookie: true,
		},
		{
			name:     "wrong password",
			values:   url.Values{"username": {"leo"}, "password": {"nope"}},
			wantCode: http.StatusOK,
		},
		{
			name:     "missing fields",
			values:   url.Values{},
			wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := e.postForm("/auth/login/", tt.values, nil)
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantLoc != "" {
				assert.Equal(t, tt.wantLoc, w.Header().Get("Location"))
			}
			assert.Equal(t, tt.wantCookie, len(w.Result().Cookies()) > 0)
		})
	}
}

func TestAuthControllerLogout(t *testing.T) {
	e := newTestEnv(t)
	leo := e.user(t, "leo")

	login := e.postForm("/auth/login/", url.Values{"username": {"leo"}, "password": {"password-leo"}}, nil)
	require.Equal(t, http.StatusFound, login.Code)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout/", nil)
	for _, c := range login.Result().Cookies() {
		req.AddCookie(c)
	}
	w := e.serve(req, leo)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ждём вас снова")

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.True(t, cookies[0].MaxAge < 0)
}
