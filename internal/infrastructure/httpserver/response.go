package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lllypuk/catmap/internal/application/appcore"
	"github.com/lllypuk/catmap/internal/domain/errs"
)

// Response is the envelope of successful REST responses.
type Response struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the body of every REST error.
type ErrorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// HTTPError lets errors choose their own status and client-facing message.
type HTTPError interface {
	error
	HTTPStatus() int
	HTTPMessage() string
}

// StatusError is an HTTPError carrying a fixed status and message.
type StatusError struct {
	Status  int
	Message string
}

// NewStatusError creates a StatusError.
func NewStatusError(status int, message string) *StatusError {
	return &StatusError{Status: status, Message: message}
}

func (e *StatusError) Error() string {
	return e.Message
}

// HTTPStatus implements HTTPError.
func (e *StatusError) HTTPStatus() int {
	return e.Status
}

// HTTPMessage implements HTTPError.
func (e *StatusError) HTTPMessage() string {
	return e.Message
}

// RespondJSON sends a successful JSON response.
func RespondJSON(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, Response{
		Message: message,
		Data:    data,
	})
}

// RespondOK sends a 200 OK response with data.
func RespondOK(c echo.Context, message string, data any) error {
	return RespondJSON(c, http.StatusOK, message, data)
}

// RespondError sends an error JSON response based on the error type.
func RespondError(c echo.Context, err error) error {
	status, message := mapError(err)
	return RespondErrorWithCode(c, status, message)
}

// RespondErrorWithCode sends an error JSON response with a specific HTTP status code.
func RespondErrorWithCode(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorResponse{
		Message: message,
		Status:  status,
	})
}

// HTTPErrorHandler renders every error returned by a handler or middleware
// as an ErrorResponse. Server errors are logged.
func HTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message := mapError(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				slog.String("path", c.Request().URL.Path),
				slog.String("error", err.Error()),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = RespondErrorWithCode(c, status, message)
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response",
				slog.String("error", err.Error()),
			)
		}
	}
}

func mapError(err error) (int, string) {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.HTTPStatus(), httpErr.HTTPMessage()
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok {
			return echoErr.Code, msg
		}
		return echoErr.Code, http.StatusText(echoErr.Code)
	}

	var validationErr *appcore.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Error()
	}

	switch {
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, errs.ErrAlreadyExists):
		return http.StatusConflict, "already exists"
	case errors.Is(err, errs.ErrInvalidInput), errors.Is(err, appcore.ErrValidationFailed):
		return http.StatusBadRequest, "invalid input"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
