package graphqlhandler

import (
	"errors"
	"net/http"

	"github.com/lllypuk/catmap/internal/application/appcore"
	catapp "github.com/lllypuk/catmap/internal/application/cat"
	userapp "github.com/lllypuk/catmap/internal/application/user"
	"github.com/lllypuk/catmap/internal/domain/errs"
)

// Error codes carried in extensions.code.
const (
	CodeNotFound      = "404"
	CodeBadUserInput  = "BAD_USER_INPUT"
	CodeOwnerNotFound = "OWNER_NOT_FOUND"
	CodeInternal      = "INTERNAL_SERVER_ERROR"
)

// Error is a resolver error with GraphQL extensions. graphql-go copies
// Extensions() into the formatted error.
type Error struct {
	Message    string
	Code       string
	HTTPStatus int
}

func (e *Error) Error() string {
	return e.Message
}

// Extensions implements gqlerrors.ExtendedError.
func (e *Error) Extensions() map[string]any {
	ext := map[string]any{"code": e.Code}
	if e.HTTPStatus != 0 {
		ext["http"] = map[string]any{"status": e.HTTPStatus}
	}
	return ext
}

// NewError creates an Error without an HTTP status.
func NewError(code, message string) *Error {
	return &Error{Message: message, Code: code}
}

// NewBadUserInput creates a BAD_USER_INPUT error answered with HTTP 400.
func NewBadUserInput(message string) *Error {
	return &Error{Message: message, Code: CodeBadUserInput, HTTPStatus: http.StatusBadRequest}
}

// classify maps use-case errors to GraphQL errors. internal is true when the
// error is unexpected and should be logged.
func classify(err error) (gqlErr *Error, internal bool) {
	var typed *Error
	if errors.As(err, &typed) {
		return typed, false
	}

	switch {
	case errors.Is(err, appcore.ErrValidationFailed),
		errors.Is(err, errs.ErrInvalidInput),
		errors.Is(err, errs.ErrAlreadyExists):
		return NewBadUserInput(err.Error()), false
	case errors.Is(err, catapp.ErrCatNotFound):
		return NewError(CodeNotFound, "Cat not found"), false
	case errors.Is(err, userapp.ErrUserNotFound):
		return NewError(CodeNotFound, "User not found"), false
	case errors.Is(err, userapp.ErrOwnerNotFound):
		return NewError(CodeOwnerNotFound, "Owner not found"), false
	default:
		return NewError(CodeInternal, "Internal server error"), true
	}
}

var (
	errInvalidBody      = errors.New("request body must be a JSON object with a query")
	errInvalidVariables = errors.New("variables must be a JSON object")
)
