package controllers

import (
	"net/http"

	"yatube/app/auth"
	"yatube/app/forms"
	"yatube/app/services"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	base
	comments *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(svc *services.Services, view *Renderer) *CommentController {
	return &CommentController{base: base{view: view}, comments: svc.Comments}
}

// Create adds a comment to the post in the URL. The visitor is sent back
// to the post whether or not the comment was valid.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		cc.NotFound(w, r)
		return
	}

	form, err := forms.ParseCommentForm(r)
	if err != nil {
		cc.sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	if form.Valid() {
		if _, err := cc.comments.AddComment(auth.UserFromContext(r.Context()), id, form.Text); err != nil {
			cc.fail(w, r, err)
			return
		}
	}
	redirect(w, r, postURL(id))
}
