package user

import "errors"

var (
	// ErrUserNotFound is returned for an unknown or malformed user id
	ErrUserNotFound = errors.New("user not found")

	// ErrOwnerNotFound is returned when a cat references a user that no longer exists
	ErrOwnerNotFound = errors.New("owner not found")
)
