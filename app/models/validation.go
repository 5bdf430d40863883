package models

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)
	slugRe     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

	validate = NewValidator()
)

// NewValidator returns a validator with the custom "username" and "slug"
// rules registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRe.MatchString(fl.Field().String())
	})
	return v
}
