package services

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrConflict        = errors.New("conflict")
)

// InputError reports the first field that failed validation.
type InputError struct {
	Field   string
	Message string
}

func (err *InputError) Error() string {
	return err.Message
}

func (err *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalidInput(field string, message string) error {
	return &InputError{Field: field, Message: message}
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
