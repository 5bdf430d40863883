package controllers

import (
	"net/http"

	"yatube/app/auth"
	"yatube/app/services"

	"github.com/gorilla/mux"
)

// FollowController handles subscriptions and the feed built from them.
type FollowController struct {
	base
	posts *PostController
	svc   *services.Services
}

// NewFollowController reuses the post listing of posts for the feed.
func NewFollowController(svc *services.Services, view *Renderer, posts *PostController) *FollowController {
	return &FollowController{base: base{view: view}, posts: posts, svc: svc}
}

// Index lists the posts of every author the user follows
func (fc *FollowController) Index(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	filter, err := fc.svc.Follows.FeedFilter(user.ID)
	if err != nil {
		fc.fail(w, r, err)
		return
	}
	page, err := fc.posts.paginate(r, filter)
	if err != nil {
		fc.fail(w, r, err)
		return
	}
	fc.render(w, r, "follow", http.StatusOK, Context{"page_obj": page})
}

// Follow subscribes the user to the author in the URL. Following yourself
// is silently ignored.
func (fc *FollowController) Follow(w http.ResponseWriter, r *http.Request) {
	author, err := fc.svc.Users.GetByUsername(mux.Vars(r)["username"])
	if err != nil {
		fc.fail(w, r, err)
		return
	}
	if _, err := fc.svc.Follows.Follow(auth.UserFromContext(r.Context()), author); err != nil {
		fc.fail(w, r, err)
		return
	}
	redirect(w, r, profileURL(author.Username))
}

// Unfollow drops every subscription of the user to the author in the URL
func (fc *FollowController) Unfollow(w http.ResponseWriter, r *http.Request) {
	author, err := fc.svc.Users.GetByUsername(mux.Vars(r)["username"])
	if err != nil {
		fc.fail(w, r, err)
		return
	}
	if _, err := fc.svc.Follows.Unfollow(auth.UserFromContext(r.Context()), author); err != nil {
		fc.fail(w, r, err)
		return
	}
	redirect(w, r, profileURL(author.Username))
}
