package httpserver_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lllypuk/catmap/internal/application/appcore"
	"github.com/lllypuk/catmap/internal/domain/errs"
	"github.com/lllypuk/catmap/internal/infrastructure/httpserver"
)

func newContext(method string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	return e.NewContext(httptest.NewRequest(method, "/", nil), rec), rec
}

func TestRespondOK(t *testing.T) {
	c, rec := newContext(http.MethodPost)

	err := httpserver.RespondOK(c, "file uploaded", map[string]string{"filename": "tom.jpg"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"file uploaded","data":{"filename":"tom.jpg"}}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
}

func TestRespondJSON_NilData(t *testing.T) {
	c, rec := newContext(http.MethodGet)

	require.NoError(t, httpserver.RespondJSON(c, http.StatusAccepted, "queued", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.JSONEq(t, `{"message":"queued"}`, rec.Body.String())
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "status error",
			err:    httpserver.NewStatusError(http.StatusBadRequest, "file not valid"),
			status: http.StatusBadRequest,
			body:   `{"message":"file not valid","status":400}`,
		},
		{
			name:   "wrapped status error",
			err:    fmt.Errorf("upload: %w", httpserver.NewStatusError(http.StatusBadRequest, "file not valid")),
			status: http.StatusBadRequest,
			body:   `{"message":"file not valid","status":400}`,
		},
		{
			name:   "echo error",
			err:    echo.NewHTTPError(http.StatusRequestEntityTooLarge, "too big"),
			status: http.StatusRequestEntityTooLarge,
			body:   `{"message":"too big","status":413}`,
		},
		{
			name:   "echo error without text",
			err:    echo.ErrNotFound,
			status: http.StatusNotFound,
			body:   `{"message":"Not Found","status":404}`,
		},
		{
			name:   "validation error",
			err:    appcore.NewValidationError("user_name", "is required"),
			status: http.StatusBadRequest,
			body:   `{"message":"user_name: is required","status":400}`,
		},
		{
			name:   "not found",
			err:    fmt.Errorf("asset: %w", errs.ErrNotFound),
			status: http.StatusNotFound,
			body:   `{"message":"not found","status":404}`,
		},
		{
			name:   "already exists",
			err:    errs.ErrAlreadyExists,
			status: http.StatusConflict,
			body:   `{"message":"already exists","status":409}`,
		},
		{
			name:   "invalid input",
			err:    errs.ErrInvalidInput,
			status: http.StatusBadRequest,
			body:   `{"message":"invalid input","status":400}`,
		},
		{
			name:   "unknown",
			err:    errors.New("disk on fire"),
			status: http.StatusInternalServerError,
			body:   `{"message":"internal server error","status":500}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(http.MethodGet)

			require.NoError(t, httpserver.RespondError(c, tt.err))

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestHTTPErrorHandler(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.HTTPErrorHandler = httpserver.HTTPErrorHandler(slog.New(slog.NewJSONHandler(&buf, nil)))
	e.POST("/upload", func(_ echo.Context) error {
		return httpserver.NewStatusError(http.StatusBadRequest, "file not valid")
	})
	e.GET("/boom", func(_ echo.Context) error {
		return errors.New("store unreachable")
	})
	e.HEAD("/boom", func(_ echo.Context) error {
		return errors.New("store unreachable")
	})

	t.Run("client error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/upload", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"message":"file not valid","status":400}`, rec.Body.String())
		assert.Empty(t, buf.String())
	})

	t.Run("server error is logged", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, buf.String(), "store unreachable")
	})

	t.Run("head has no body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/boom", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"message":"Not Found","status":404}`, rec.Body.String())
	})
}
