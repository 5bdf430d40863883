package media

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"yatube/app/logger"
	"yatube/app/models"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// ThumbnailWidth is the widest a thumbnail gets; narrower images keep their size.
const ThumbnailWidth = 960

// ImageDir is where post images are stored.
const ImageDir = "posts/"

// MaxImagePixels caps width*height of an accepted image so a tiny, highly
// compressed upload cannot expand into a huge decoded buffer.
const MaxImagePixels = 40_000_000

var ErrInvalidImage = errors.New("upload a valid image")

// CheckImage reads only the image header and fails with ErrInvalidImage when
// the format is unknown or the image has more than MaxImagePixels pixels.
func CheckImage(r io.Reader) error {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return ErrInvalidImage
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return ErrInvalidImage
	}
	return nil
}

// SaveImage decodes r, stores it under a fresh name in ImageDir together
// with a JPEG thumbnail and returns the stored name.
func SaveImage(ctx context.Context, store Store, r io.Reader, ext, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrap(err, "read image")
	}
	if err := CheckImage(bytes.NewReader(data)); err != nil {
		return "", err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", ErrInvalidImage
	}

	name := ImageDir + uuid.NewString() + ext
	if err := store.Save(ctx, name, bytes.NewReader(data), contentType); err != nil {
		return "", err
	}

	var thumb bytes.Buffer
	err = CreateThumbnail(img, &thumb)
	if err == nil {
		err = store.Save(ctx, models.ThumbnailPath(name), &thumb, "image/jpeg")
	}
	if err != nil {
		if derr := DeleteImage(ctx, store, name); derr != nil {
			logger.Log.WithError(derr).WithField("image", name).Warn("failed to remove image after thumbnail error")
		}
		return "", err
	}
	return name, nil
}

// CreateThumbnail writes img as JPEG, scaled down to ThumbnailWidth if wider.
func CreateThumbnail(img image.Image, w io.Writer) error {
	if img.Bounds().Dx() > ThumbnailWidth {
		img = resize.Resize(ThumbnailWidth, 0, img, resize.Lanczos3)
	}
	return errors.Wrap(jpeg.Encode(w, img, &jpeg.Options{Quality: 90}), "encode thumbnail")
}

// DeleteImage removes name and its thumbnail. Missing files are skipped.
func DeleteImage(ctx context.Context, store Store, name string) error {
	if name == "" {
		return nil
	}
	for _, n := range []string{name, models.ThumbnailPath(name)} {
		if err := store.Delete(ctx, n); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}
	logger.Log.WithField("image", name).Debug("deleted post image")
	return nil
}
