package service

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"yatube/app/auth"
	"yatube/app/cache"
	"yatube/app/logger"
	"yatube/app/media"
	"yatube/app/routes"
	"yatube/app/services"

	"github.com/sirupsen/logrus"
)

// RunAppServer starts the blog service and blocks until SIGINT or SIGTERM.
func RunAppServer(args []string) int {
	store, _, err := openStore()
	if err != nil {
		logger.Log.WithError(err).Error("failed to open database")
		return 1
	}
	defer store.Close()

	files, err := media.New(cfg)
	if err != nil {
		logger.Log.WithError(err).Error("failed to open media storage")
		return 1
	}

	pages, err := cache.New(cfg)
	if err != nil {
		logger.Log.WithError(err).Error("failed to open page cache")
		return 1
	}
	defer pages.Close()

	router := routes.SetupRoutes(routes.Dependencies{
		Services:      services.New(store, files),
		Sessions:      auth.NewSessions(cfg.SessionKey, cfg.SessionMaxAge, cfg.SessionSecure),
		Cache:         pages,
		Media:         files,
		PerPage:       cfg.PostsPerPage,
		IndexCacheTTL: cfg.IndexCacheTTL,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Log.WithFields(logrus.Fields{
		"storage": cfg.Storage,
		"cache":   cfg.CacheBackend,
		"media":   cfg.MediaBackend,
	}).Info("starting yatube")
	if err := routes.StartServer(ctx, cfg.BindAddress, router); err != nil {
		logger.Log.WithError(err).Error("server error")
		return 1
	}
	return 0
}
