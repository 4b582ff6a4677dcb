// Package session holds the signed-in librarian. Authentication is a
// local stub: credentials are checked for presence only and the user
// record lives in a file in the data directory.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultFullName is used when a user signs in without giving a name.
const DefaultFullName = "Librarian"

// User is the signed-in librarian.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// Mode selects between the sign-in and sign-up forms.
type Mode int

const (
	ModeSignIn Mode = iota
	ModeSignUp
)

func (m Mode) String() string {
	if m == ModeSignUp {
		return "sign up"
	}
	return "sign in"
}

// Field names a credential input.
type Field string

const (
	FieldFullName Field = "full name"
	FieldEmail    Field = "email"
	FieldPassword Field = "password"
)

// RequiredFields lists the inputs a form must collect for mode. The mode
// changes nothing else about authentication.
func RequiredFields(m Mode) []Field {
	if m == ModeSignUp {
		return []Field{FieldFullName, FieldEmail, FieldPassword}
	}
	return []Field{FieldEmail, FieldPassword}
}

// ErrMissingField is returned when a required credential is blank.
var ErrMissingField = errors.New("required field missing")

// Credentials is what a sign-in or sign-up form collects.
type Credentials struct {
	Email    string
	Password string
	FullName string
	Mode     Mode
}

// Validate checks that every field the mode requires is non-blank.
func (c Credentials) Validate() error {
	for _, f := range RequiredFields(c.Mode) {
		if strings.TrimSpace(c.value(f)) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f)
		}
	}
	return nil
}

func (c Credentials) value(f Field) string {
	switch f {
	case FieldFullName:
		return c.FullName
	case FieldEmail:
		return c.Email
	case FieldPassword:
		return c.Password
	}
	return ""
}

// NewUser builds the local user for a sign-in at now. The password is
// not verified or kept.
func NewUser(c Credentials, now time.Time) User {
	name := strings.TrimSpace(c.FullName)
	if name == "" {
		name = DefaultFullName
	}
	return User{
		ID:       strconv.FormatInt(now.UnixMilli(), 10),
		Email:    strings.TrimSpace(c.Email),
		FullName: name,
	}
}
