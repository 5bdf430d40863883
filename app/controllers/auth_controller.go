package controllers

import (
	"net/http"

	"yatube/app/auth"
	"yatube/app/forms"
	"yatube/app/logger"
	"yatube/app/models"
	"yatube/app/services"

	"github.com/pkg/errors"
)

// AuthController handles signup, login and logout.
type AuthController struct {
	base
	users    *services.UserService
	sessions *auth.Sessions
}

func NewAuthController(svc *services.Services, view *Renderer, sessions *auth.Sessions) *AuthController {
	return &AuthController{base: base{view: view}, users: svc.Users, sessions: sessions}
}

// Login shows the login form and starts a session on valid credentials.
// The visitor lands on ?next= when it is a local path.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		ac.render(w, r, "login", http.StatusOK, Context{
			"form": forms.NewLoginForm(auth.SafeNext(r.URL.Query().Get("next"))),
		})
		return
	}

	form, err := forms.ParseLoginForm(r)
	if err != nil {
		ac.sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	form.Next = auth.SafeNext(form.Next)
	if !form.Valid() {
		ac.render(w, r, "login", http.StatusOK, Context{"form": form})
		return
	}

	user, err := ac.users.Authenticate(form.Username, form.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		form.Errors.Add(forms.NonFieldErrors, err.Error())
		ac.render(w, r, "login", http.StatusOK, Context{"form": form})
		return
	}
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	if err := ac.sessions.Login(w, r, user); err != nil {
		ac.fail(w, r, err)
		return
	}
	logger.Log.WithField("username", user.Username).Info("user logged in")

	next := form.Next
	if next == "" {
		next = "/"
	}
	redirect(w, r, next)
}

// Signup creates an account and sends the new user to the home page.
func (ac *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		ac.render(w, r, "signup", http.StatusOK, Context{"form": forms.NewSignupForm()})
		return
	}

	form, err := forms.ParseSignupForm(r)
	if err != nil {
		ac.sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !form.Valid() {
		ac.render(w, r, "signup", http.StatusOK, Context{"form": form})
		return
	}

	user := &models.User{
		Username:  form.Username,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
	}
	err = ac.users.Register(user, form.Password1)
	if errors.Is(err, services.ErrUsernameTaken) {
		form.Errors.Add("username", err.Error())
		ac.render(w, r, "signup", http.StatusOK, Context{"form": form})
		return
	}
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	redirect(w, r, "/")
}

// Logout ends the session and shows the goodbye page.
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := ac.sessions.Logout(w, r); err != nil {
		ac.fail(w, r, err)
		return
	}
	r = r.WithContext(auth.WithUser(r.Context(), nil))
	ac.render(w, r, "logged_out", http.StatusOK, Context{})
}
