package supabase

import (
	"errors"
	"fmt"
	"net/http"
)

// Common PostgREST errors.
var (
	// ErrNotFound is returned when the table or row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned when the API key is missing or rejected.
	ErrUnauthorized = errors.New("unauthorized: check your Supabase key")
	// ErrForbidden is returned when row-level security denies the request.
	ErrForbidden = errors.New("forbidden: row-level security denied the request")
	// ErrConflict is returned on constraint violations.
	ErrConflict = errors.New("conflict: constraint violation")
)

// APIError is a non-2xx PostgREST response. It unwraps to one of the
// sentinel errors above when the status maps to one.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("supabase API error %d (%s): %s", e.Status, e.Code, msg)
	}
	return fmt.Sprintf("supabase API error %d: %s", e.Status, msg)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	}
	return nil
}
