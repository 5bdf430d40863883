package controllers

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"yatube/app/auth"
	"yatube/app/logger"
	"yatube/app/middleware"
	"yatube/app/services"
	"yatube/app/views"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Context is the data a page is rendered with. API clients get it as JSON.
type Context map[string]interface{}

// pages maps a page name to its template file; every page is parsed
// together with the layout and the shared partials.
var pages = map[string]string{
	"index":       "posts/index.html",
	"group_list":  "posts/group_list.html",
	"profile":     "posts/profile.html",
	"post_detail": "posts/post_detail.html",
	"create_post": "posts/create_post.html",
	"follow":      "posts/follow.html",
	"login":       "users/login.html",
	"signup":      "users/signup.html",
	"logged_out":  "users/logged_out.html",
	"not_found":   "errors/not_found.html",
}

var templateFuncs = template.FuncMap{
	"media": func(name string) string {
		return "/media/" + name
	},
	"date": func(t time.Time) string {
		return t.Format("02 Jan 2006")
	},
}

// Renderer holds the parsed page templates.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses every page from the embedded views.
func NewRenderer() (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t, err := template.New(name).Funcs(templateFuncs).ParseFS(views.FS, "layout.html", "shared/*.html", file)
		if err != nil {
			return nil, errors.Wrapf(err, "parse template %s", name)
		}
		templates[name] = t
	}
	return &Renderer{templates: templates}, nil
}

// MustRenderer is NewRenderer for program start-up and tests.
func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// base carries the response helpers every controller shares.
type base struct {
	view *Renderer
}

// render writes page name with ctx, or ctx as JSON for API clients.
func (b *base) render(w http.ResponseWriter, r *http.Request, name string, status int, ctx Context) {
	if middleware.WantsJSON(r) {
		b.sendJSON(w, status, ctx)
		return
	}

	t, ok := b.view.templates[name]
	if !ok {
		b.sendError(w, r, "Template error: unknown page "+name, http.StatusInternalServerError)
		return
	}
	ctx["user"] = auth.UserFromContext(r.Context())

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", ctx); err != nil {
		logger.Log.WithError(err).WithField("template", name).Error("render failed")
		b.sendError(w, r, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (b *base) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Log.WithError(err).Warn("failed to encode response")
	}
}

func (b *base) sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	if middleware.WantsJSON(r) {
		b.sendJSON(w, status, map[string]string{"error": message})
		return
	}
	http.Error(w, message, status)
}

// NotFound renders the 404 page.
func (b *base) NotFound(w http.ResponseWriter, r *http.Request) {
	if middleware.WantsJSON(r) || b.view == nil {
		b.sendError(w, r, "Not Found", http.StatusNotFound)
		return
	}
	b.render(w, r, "not_found", http.StatusNotFound, Context{"path": r.URL.Path})
}

// fail maps a service error to a response: missing records are 404,
// anything else is logged and reported as 500.
func (b *base) fail(w http.ResponseWriter, r *http.Request, err error) {
	if services.IsNotFound(err) {
		b.NotFound(w, r)
		return
	}
	logger.Log.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).WithError(err).Error("request failed")
	b.sendError(w, r, "Internal Server Error", http.StatusInternalServerError)
}

// redirect always answers 302, like the login redirect.
func redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusFound)
}

func profileURL(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

func postURL(id int) string {
	return "/posts/" + strconv.Itoa(id) + "/"
}

// pathID reads a numeric route variable. The router only matches digits,
// so failure means the number does not fit an int.
func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	return id, err == nil
}
