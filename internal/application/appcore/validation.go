package appcore

import (
	"fmt"
	"strings"
	"time"

	"github.com/lllypuk/catmap/internal/domain/objectid"
)

// MaxNameLength caps user and cat names.
const MaxNameLength = 100

// ValidateRequired rejects an empty value.
func ValidateRequired(field, value string) error {
	if value == "" {
		return NewValidationError(field, "is required")
	}
	return nil
}

// ValidateObjectID checks that the id is a well formed store identifier
func ValidateObjectID(field string, id string) error {
	if id == "" {
		return NewValidationError(field, "is required")
	}
	if _, err := objectid.Parse(id); err != nil {
		return NewValidationError(field, "must be a valid ObjectID")
	}
	return nil
}

// ValidateMaxLength counts bytes, not runes.
func ValidateMaxLength(field, value string, maxLength int) error {
	if len(value) > maxLength {
		return NewValidationError(field, fmt.Sprintf("must be at most %d characters", maxLength))
	}
	return nil
}

// ValidatePositiveFloat checks value > 0
func ValidatePositiveFloat(field string, value float64) error {
	if value <= 0 {
		return NewValidationError(field, "must be positive")
	}
	return nil
}

// ValidateDateNotFuture rejects a zero date and any date after now.
func ValidateDateNotFuture(field string, date time.Time) error {
	switch {
	case date.IsZero():
		return NewValidationError(field, "is required")
	case date.After(time.Now()):
		return NewValidationError(field, "cannot be in the future")
	}
	return nil
}

// ValidateEmail only checks the shape local@domain.tld; deliverability is
// not our concern.
func ValidateEmail(field, value string) error {
	if value == "" {
		return NewValidationError(field, "email is required")
	}

	local, domain, ok := strings.Cut(value, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return NewValidationError(field, "must be a valid email address")
	}

	dot := strings.LastIndexByte(domain, '.')
	if dot <= 0 || dot == len(domain)-1 {
		return NewValidationError(field, "must be a valid email address")
	}
	return nil
}
