package controllers

import (
	"io"
	"net/http"

	"yatube/app/logger"
	"yatube/app/media"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// MediaController serves uploaded images from the media store.
type MediaController struct {
	base
	files media.Store
}

func NewMediaController(files media.Store, view *Renderer) *MediaController {
	return &MediaController{base: base{view: view}, files: files}
}

// Serve streams /media/{path}.
func (mc *MediaController) Serve(w http.ResponseWriter, r *http.Request) {
	if mc.files == nil {
		mc.NotFound(w, r)
		return
	}
	name := mux.Vars(r)["path"]
	file, err := mc.files.Open(r.Context(), name)
	if errors.Is(err, media.ErrNotFound) || errors.Is(err, media.ErrInvalidName) {
		mc.NotFound(w, r)
		return
	}
	if err != nil {
		mc.fail(w, r, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", media.ContentType(name))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, file); err != nil {
		logger.Log.WithError(err).WithField("path", name).Warn("media copy interrupted")
	}
}
