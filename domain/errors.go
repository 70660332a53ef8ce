package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrForbidden          = errors.New("forbidden")
	ErrNotOwner           = errors.New("caller does not own this resource")
	ErrAlreadyArtist      = errors.New("already an artist")
	ErrArtistRequired     = errors.New("only registered artists can upload songs")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError marks a missing or malformed request field. Handlers map it
// to 400 before any mutating store call happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError anywhere in its chain.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
