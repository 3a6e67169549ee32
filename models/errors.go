package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDeadlinePassed = errors.New("voting deadline has passed")
	ErrIsGuest        = errors.New("player is a guest for this event")
	ErrAlreadyGuest   = errors.New("player is already a guest")
	ErrGuestConflict  = errors.New("player already belongs to a response set")
	ErrNotAuthorized  = errors.New("not authorized")
)

// ValidationError is an input problem caught before any store write.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
