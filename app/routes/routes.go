// Package routes wires the controllers into the URL table.
package routes

import (
	"context"
	"net/http"
	"time"

	"yatube/app/auth"
	"yatube/app/cache"
	"yatube/app/controllers"
	"yatube/app/logger"
	"yatube/app/media"
	"yatube/app/middleware"
	"yatube/app/services"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// DefaultIndexCacheTTL is how long the rendered home page is reused.
const DefaultIndexCacheTTL = 20 * time.Second

// Dependencies is everything the router needs. Cache and Media may be nil.
type Dependencies struct {
	Services      *services.Services
	Sessions      *auth.Sessions
	Cache         cache.PageCache
	Media         media.Store
	View          *controllers.Renderer
	PerPage       int
	IndexCacheTTL time.Duration
}

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(deps Dependencies) *mux.Router {
	if deps.View == nil {
		deps.View = controllers.MustRenderer()
	}
	if deps.IndexCacheTTL <= 0 {
		deps.IndexCacheTTL = DefaultIndexCacheTTL
	}
	svc := deps.Services

	router := mux.NewRouter().StrictSlash(true)

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.ContentTypeJSON)
	router.Use(middleware.CurrentUser(deps.Sessions, svc.Users))

	postController := controllers.NewPostController(svc, deps.View, deps.PerPage)
	commentController := controllers.NewCommentController(svc, deps.View)
	followController := controllers.NewFollowController(svc, deps.View, postController)
	authController := controllers.NewAuthController(svc, deps.View, deps.Sessions)
	mediaController := controllers.NewMediaController(deps.Media, deps.View)

	cached := middleware.CachePage(deps.Cache, deps.IndexCacheTTL)
	login := middleware.LoginRequiredFunc

	// Web routes
	router.Handle("/", cached(http.HandlerFunc(postController.Index))).Methods("GET")
	router.HandleFunc("/group/{slug}/", postController.GroupPosts).Methods("GET")
	router.HandleFunc("/profile/{username}/", postController.Profile).Methods("GET")
	router.HandleFunc("/posts/{id:[0-9]+}/", postController.Show).Methods("GET")
	router.Handle("/create/", login(postController.Create)).Methods("GET", "POST")
	router.Handle("/posts/{id:[0-9]+}/edit/", login(postController.Edit)).Methods("GET", "POST")
	router.Handle("/posts/{id:[0-9]+}/comment/", login(commentController.Create)).Methods("POST")
	router.Handle("/follow/", login(followController.Index)).Methods("GET")
	router.Handle("/profile/{username}/follow/", login(followController.Follow)).Methods("GET", "POST")
	router.Handle("/profile/{username}/unfollow/", login(followController.Unfollow)).Methods("GET", "POST")

	// Auth routes
	router.HandleFunc(auth.LoginPath, authController.Login).Methods("GET", "POST")
	router.HandleFunc(auth.SignupPath, authController.Signup).Methods("GET", "POST")
	router.HandleFunc(auth.LogoutPath, authController.Logout).Methods("GET", "POST")

	router.HandleFunc("/media/{path:.+}", mediaController.Serve).Methods("GET")

	// Read-only API routes, rendered from the same page contexts as JSON
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/posts/", postController.Index).Methods("GET")
	api.HandleFunc("/posts/{id:[0-9]+}/", postController.Show).Methods("GET")
	api.HandleFunc("/group/{slug}/", postController.GroupPosts).Methods("GET")
	api.HandleFunc("/profile/{username}/", postController.Profile).Methods("GET")
	api.Handle("/follow/", login(followController.Index)).Methods("GET")

	router.NotFoundHandler = middleware.Logger(middleware.CurrentUser(deps.Sessions, svc.Users)(
		http.HandlerFunc(postController.NotFound)))

	return router
}

// StartServer serves handler on addr until ctx is cancelled, then shuts
// down gracefully.
func StartServer(ctx context.Context, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.WithField("addr", addr).Info("listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	logger.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}
