package forms

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"yatube/app/media"
	"yatube/app/models"
)

// MaxUploadSize bounds the body of a post submission.
const MaxUploadSize = 10 << 20

// Field messages shared with the controllers, which add them for failures
// found after validation.
const (
	MsgInvalidImage  = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
	MsgInvalidChoice = "Select a valid choice. That choice is not one of the available choices."
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// PostForm backs the create and edit pages.
type PostForm struct {
	Text  string `form:"text" validate:"nonblank"`
	Group string `form:"group" validate:"omitempty,number"`

	Image      *multipart.FileHeader `form:"-" validate:"-"`
	ImageType  string                `form:"-" validate:"-"`
	ClearImage bool                  `form:"-" validate:"-"`
	Errors     Errors                `form:"-" validate:"-"`
	submitted  bool
}

// NewPostForm returns an unbound form, prefilled from post when editing.
func NewPostForm(post *models.Post) *PostForm {
	f := &PostForm{Errors: Errors{}}
	if post != nil {
		f.Text = post.Text
		if post.GroupID != nil {
			f.Group = strconv.Itoa(*post.GroupID)
		}
	}
	return f
}

// ParsePostForm binds a submitted request. Multipart and urlencoded bodies
// are both accepted.
func ParsePostForm(r *http.Request) (*PostForm, error) {
	f := &PostForm{Errors: Errors{}, submitted: true}
	r.Body = http.MaxBytesReader(nil, r.Body, MaxUploadSize)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
			return nil, err
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, err
	}

	f.Text = r.PostFormValue("text")
	f.Group = strings.TrimSpace(r.PostFormValue("group"))
	f.ClearImage = r.PostFormValue("image-clear") != ""

	if r.MultipartForm != nil {
		if files := r.MultipartForm.File["image"]; len(files) > 0 && files[0].Size > 0 {
			f.Image = files[0]
		}
	}
	return f, nil
}

// Bound reports whether the form came from a submission.
func (f *PostForm) Bound() bool {
	return f.submitted
}

// Valid runs field validation and the image content check.
func (f *PostForm) Valid() bool {
	check(f, f.Errors)
	if f.Group != "" && !f.Errors.Has("group") {
		if id, err := strconv.Atoi(f.Group); err != nil || id <= 0 {
			f.Errors.Add("group", MsgInvalidChoice)
		}
	}
	if f.Image != nil {
		ct, err := sniff(f.Image)
		if _, ok := allowedImageTypes[ct]; err != nil || !ok {
			f.Errors.Add("image", MsgInvalidImage)
		} else if err := checkImage(f.Image); err != nil {
			f.Errors.Add("image", MsgInvalidImage)
		} else {
			f.ImageType = ct
		}
	}
	return !f.Errors.Any()
}

// GroupID is nil when no group was chosen. Only meaningful after Valid
// returned true.
func (f *PostForm) GroupID() *int {
	if f.Group == "" {
		return nil
	}
	id, err := strconv.Atoi(f.Group)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

// ImageExt is the file extension matching the detected image type.
func (f *PostForm) ImageExt() string {
	return allowedImageTypes[f.ImageType]
}

// Apply copies text and group onto post.
func (f *PostForm) Apply(post *models.Post) {
	post.Text = f.Text
	post.GroupID = f.GroupID()
	post.Group = nil
}

func checkImage(fh *multipart.FileHeader) error {
	file, err := fh.Open()
	if err != nil {
		return err
	}
	defer file.Close()
	return media.CheckImage(file)
}

func sniff(fh *multipart.FileHeader) (string, error) {
	file, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if n == 0 {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}
