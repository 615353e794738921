package cat

import "errors"

var (
	// ErrCatNotFound is returned when a cat does not exist or its id is malformed
	ErrCatNotFound = errors.New("cat not found")
)
