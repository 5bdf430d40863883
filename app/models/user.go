package models

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt cost used for new password hashes. Tests lower it.
var PasswordCost = bcrypt.DefaultCost

// ErrPasswordMismatch is returned by CheckPassword for a wrong password.
var ErrPasswordMismatch = errors.New("password does not match")

// Validate checks if the user meets all validation requirements
func (u *User) Validate() error {
	if err := validate.Struct(u); err != nil {
		return err
	}

	if u.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (u *User) BeforeCreate() {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
}

// SetPassword replaces the stored hash with one for plainTextPassword.
func (u *User) SetPassword(plainTextPassword string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), PasswordCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashed)
	return nil
}

// CheckPassword compares plainTextPassword with the stored hash.
func (u *User) CheckPassword(plainTextPassword string) error {
	if u.PasswordHash == "" {
		return ErrPasswordMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plainTextPassword)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}

// FullName joins first and last name, falling back to the username.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

func (u *User) String() string {
	return u.Username
}
