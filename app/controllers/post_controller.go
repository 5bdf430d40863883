package controllers

import (
	"net/http"

	"yatube/app/auth"
	"yatube/app/forms"
	"yatube/app/logger"
	"yatube/app/media"
	"yatube/app/models"
	"yatube/app/pagination"
	"yatube/app/repositories"
	"yatube/app/services"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	base
	svc     *services.Services
	perPage int
}

// NewPostController creates a new PostController
func NewPostController(svc *services.Services, view *Renderer, perPage int) *PostController {
	if perPage <= 0 {
		perPage = pagination.DefaultPerPage
	}
	return &PostController{base: base{view: view}, svc: svc, perPage: perPage}
}

// paginate lists posts matching filter and picks the page from ?page=.
func (pc *PostController) paginate(r *http.Request, filter repositories.PostFilter) (*pagination.Page[*models.Post], error) {
	posts, err := pc.svc.Posts.ListPosts(filter)
	if err != nil {
		return nil, err
	}
	return pagination.New(posts, pc.perPage).GetPage(r.URL.Query().Get("page")), nil
}

// Index lists all posts, newest first
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	page, err := pc.paginate(r, repositories.PostFilter{})
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	pc.render(w, r, "index", http.StatusOK, Context{"page_obj": page})
}

// GroupPosts lists the posts of one group
func (pc *PostController) GroupPosts(w http.ResponseWriter, r *http.Request) {
	group, err := pc.svc.Groups.GetBySlug(mux.Vars(r)["slug"])
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	page, err := pc.paginate(r, repositories.PostFilter{GroupID: group.ID})
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	pc.render(w, r, "group_list", http.StatusOK, Context{
		"group":    group,
		"page_obj": page,
	})
}

// Profile lists the posts of one author
func (pc *PostController) Profile(w http.ResponseWriter, r *http.Request) {
	author, err := pc.svc.Users.GetByUsername(mux.Vars(r)["username"])
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	page, err := pc.paginate(r, repositories.PostFilter{AuthorID: author.ID})
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	following, err := pc.svc.Follows.IsFollowing(auth.UserFromContext(r.Context()), author)
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	pc.render(w, r, "profile", http.StatusOK, Context{
		"author":      author,
		"count_posts": page.Count,
		"page_obj":    page,
		"following":   following,
	})
}

// Show displays a single post with its comments
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		pc.NotFound(w, r)
		return
	}
	post, err := pc.svc.Posts.GetPost(id)
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	count, err := pc.svc.Posts.CountPosts(repositories.PostFilter{AuthorID: post.AuthorID})
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	comments, err := pc.svc.Comments.ListPostComments(post.ID)
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	pc.render(w, r, "post_detail", http.StatusOK, Context{
		"post":        post,
		"count_posts": count,
		"comments":    comments,
		"form":        forms.NewCommentForm(),
	})
}

// Create shows the new post form and handles its submission
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if r.Method != http.MethodPost {
		pc.renderForm(w, r, forms.NewPostForm(nil), nil)
		return
	}

	form, err := forms.ParsePostForm(r)
	if err != nil {
		pc.sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !form.Valid() {
		pc.renderForm(w, r, form, nil)
		return
	}

	post := &models.Post{}
	form.Apply(post)
	if form.Image != nil {
		image, err := pc.saveImage(r, form)
		if err != nil {
			pc.imageFailed(w, r, form, nil, err)
			return
		}
		post.Image = image
	}

	if err := pc.svc.Posts.CreatePost(user, post); err != nil {
		pc.discardImage(r, post.Image)
		if errors.Is(err, services.ErrGroupNotFound) {
			form.Errors.Add("group", forms.MsgInvalidChoice)
			pc.renderForm(w, r, form, nil)
			return
		}
		pc.fail(w, r, err)
		return
	}
	redirect(w, r, profileURL(user.Username))
}

// Edit lets the author change a post. Anyone else is sent back to the post.
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		pc.NotFound(w, r)
		return
	}
	post, err := pc.svc.Posts.GetPost(id)
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	if !post.IsAuthor(user) {
		redirect(w, r, postURL(post.ID))
		return
	}
	if r.Method != http.MethodPost {
		pc.renderForm(w, r, forms.NewPostForm(post), post)
		return
	}

	form, err := forms.ParsePostForm(r)
	if err != nil {
		pc.sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !form.Valid() {
		pc.renderForm(w, r, form, post)
		return
	}

	oldImage := post.Image
	form.Apply(post)
	switch {
	case form.Image != nil:
		image, err := pc.saveImage(r, form)
		if err != nil {
			pc.imageFailed(w, r, form, post, err)
			return
		}
		post.Image = image
	case form.ClearImage:
		post.Image = ""
	}

	if err := pc.svc.Posts.UpdatePost(user, post); err != nil {
		if post.Image != oldImage {
			pc.discardImage(r, post.Image)
		}
		switch {
		case errors.Is(err, services.ErrGroupNotFound):
			post.Image = oldImage
			form.Errors.Add("group", forms.MsgInvalidChoice)
			pc.renderForm(w, r, form, post)
		case errors.Is(err, services.ErrForbidden):
			redirect(w, r, postURL(id))
		default:
			pc.fail(w, r, err)
		}
		return
	}
	if oldImage != "" && post.Image != oldImage {
		pc.discardImage(r, oldImage)
	}
	redirect(w, r, postURL(post.ID))
}

// renderForm shows the create/edit page. post is nil when creating.
func (pc *PostController) renderForm(w http.ResponseWriter, r *http.Request, form *forms.PostForm, post *models.Post) {
	groups, err := pc.svc.Groups.ListGroups()
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	ctx := Context{"form": form, "groups": groups}
	if post != nil {
		ctx["is_edit"] = true
		ctx["post"] = post
	}
	pc.render(w, r, "create_post", http.StatusOK, ctx)
}

func (pc *PostController) saveImage(r *http.Request, form *forms.PostForm) (string, error) {
	files := pc.svc.Posts.Media()
	if files == nil {
		return "", errors.New("image uploads are disabled")
	}
	file, err := form.Image.Open()
	if err != nil {
		return "", errors.Wrap(err, "open upload")
	}
	defer file.Close()
	return media.SaveImage(r.Context(), files, file, form.ImageExt(), form.ImageType)
}

// imageFailed turns an undecodable upload into a field error and anything
// else into a 500.
func (pc *PostController) imageFailed(w http.ResponseWriter, r *http.Request, form *forms.PostForm, post *models.Post, err error) {
	if errors.Is(err, media.ErrInvalidImage) {
		form.Errors.Add("image", forms.MsgInvalidImage)
		pc.renderForm(w, r, form, post)
		return
	}
	pc.fail(w, r, err)
}

func (pc *PostController) discardImage(r *http.Request, name string) {
	if name == "" || pc.svc.Posts.Media() == nil {
		return
	}
	if err := media.DeleteImage(r.Context(), pc.svc.Posts.Media(), name); err != nil {
		logger.Log.WithError(err).WithField("image", name).Warn("failed to delete image")
	}
}
