// Package common holds errors and logging setup shared by the censusprep
// packages.
package common

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a stored run does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMissingConfig marks a required setting that was not given.
	ErrMissingConfig = errors.New("missing configuration")
	// ErrInvalidConfig marks a setting with an unusable value.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError carries a message for the person at the terminal on top of
// the underlying cause.
type UserError struct {
	Err         error
	UserMessage string
}

// NewUserError wraps err with a message for the user.
func NewUserError(userMessage string, err error) error {
	return &UserError{UserMessage: userMessage, Err: err}
}

func (e *UserError) Error() string {
	if e.Err == nil {
		return e.UserMessage
	}
	return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
}

func (e *UserError) Unwrap() error { return e.Err }
