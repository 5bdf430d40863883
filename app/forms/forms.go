// Package forms parses and validates HTML form submissions.
package forms

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by their form name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if !isUsernameRune(r) {
				return false
			}
		}
		return true
	})
	return v
}

func isUsernameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '.' || r == '@' || r == '+' || r == '-':
		return true
	}
	return false
}

// Errors maps a form field name to its messages. The key "__all__" holds
// errors that belong to no single field.
type Errors map[string][]string

const NonFieldErrors = "__all__"

// Add appends a message for field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Get returns the first message for field, or "".
func (e Errors) Get(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Has reports whether field has any message.
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// Any reports whether the form has errors at all.
func (e Errors) Any() bool {
	return len(e) > 0
}

// check runs struct validation on form and collects messages into errs.
func check(form interface{}, errs Errors) {
	err := validate.Struct(form)
	if err == nil {
		return
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs.Add(NonFieldErrors, err.Error())
		return
	}
	for _, fe := range verrs {
		errs.Add(fe.Field(), message(fe))
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "nonblank":
		return "This field is required."
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "number":
		return "Select a valid choice."
	case "eqfield":
		return "The two password fields didn't match."
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	}
	return fmt.Sprintf("Invalid value (%s).", fe.Tag())
}
