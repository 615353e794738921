package appcore

import (
	"errors"
	"fmt"
)

// ErrValidationFailed matches every ValidationError via errors.Is.
var ErrValidationFailed = errors.New("validation failed")

// ValidationError names the input field that was rejected.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
