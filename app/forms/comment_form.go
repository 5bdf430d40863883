package forms

import "net/http"

// CommentForm is the single-field comment box on the post page.
type CommentForm struct {
	Text   string `form:"text" validate:"nonblank"`
	Errors Errors `form:"-" validate:"-"`
}

func NewCommentForm() *CommentForm {
	return &CommentForm{Errors: Errors{}}
}

func ParseCommentForm(r *http.Request) (*CommentForm, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &CommentForm{Text: r.PostFormValue("text"), Errors: Errors{}}, nil
}

func (f *CommentForm) Valid() bool {
	check(f, f.Errors)
	return !f.Errors.Any()
}
