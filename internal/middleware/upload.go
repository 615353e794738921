package middleware

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// UploadedFileKey is the echo context key holding the *UploadedFile.
	UploadedFileKey = "uploaded_file"

	// UploadRejectionKey holds the reason a file was not accepted.
	UploadRejectionKey = "upload_rejection"

	// DefaultMaxUploadSize caps uploaded files at 10MB.
	DefaultMaxUploadSize = 10 << 20

	sniffLen = 512
)

// Rejection reasons.
const (
	RejectMissing         = "missing"
	RejectTooLarge        = "too_large"
	RejectUnsupportedType = "unsupported_type"
)

// AssetWriter persists uploaded bytes.
type AssetWriter interface {
	Save(ctx context.Context, name, contentType string, r io.Reader, size int64) error
}

// UploadedFile describes a file accepted by UploadFile.
type UploadedFile struct {
	Filename     string
	OriginalName string
	ContentType  string
	Size         int64
}

// UploadConfig holds configuration for the UploadFile middleware.
type UploadConfig struct {
	Logger *slog.Logger
	Store  AssetWriter

	FormField    string
	MaxSize      int64
	AllowedTypes []string

	// NameFunc generates the stored base name. Defaults to a random UUID.
	NameFunc func() string
}

// DefaultUploadConfig returns an UploadConfig with sensible defaults.
func DefaultUploadConfig() UploadConfig {
	return UploadConfig{
		Logger:       slog.Default(),
		FormField:    "cat",
		MaxSize:      DefaultMaxUploadSize,
		AllowedTypes: []string{"image/jpeg", "image/png", "image/webp", "image/gif"},
	}
}

// UploadFile validates the multipart file and saves it under a generated
// name. A missing or rejected file is not an error here: nothing is stored
// under UploadedFileKey and the handler decides how to answer.
func UploadFile(config UploadConfig) echo.MiddlewareFunc {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.FormField == "" {
		config.FormField = "cat"
	}
	if config.MaxSize <= 0 {
		config.MaxSize = DefaultMaxUploadSize
	}
	if config.NameFunc == nil {
		config.NameFunc = func() string { return uuid.New().String() }
	}
	if config.Store == nil {
		panic("middleware: UploadFile requires a Store")
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			fh, err := c.FormFile(config.FormField)
			if err != nil {
				c.Set(UploadRejectionKey, RejectMissing)
				return next(c)
			}

			if fh.Size > config.MaxSize {
				config.Logger.WarnContext(ctx, "upload rejected",
					slog.String("reason", RejectTooLarge),
					slog.Int64("size", fh.Size),
				)
				c.Set(UploadRejectionKey, RejectTooLarge)
				return next(c)
			}

			f, err := fh.Open()
			if err != nil {
				return fmt.Errorf("open upload: %w", err)
			}
			defer f.Close()

			head := make([]byte, sniffLen)
			n, err := io.ReadFull(f, head)
			if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
				return fmt.Errorf("read upload: %w", err)
			}
			head = head[:n]

			contentType := http.DetectContentType(head)
			ext := extensionFor(contentType)
			if ext == "" || !slices.Contains(config.AllowedTypes, contentType) {
				config.Logger.WarnContext(ctx, "upload rejected",
					slog.String("reason", RejectUnsupportedType),
					slog.String("content_type", contentType),
				)
				c.Set(UploadRejectionKey, RejectUnsupportedType)
				return next(c)
			}

			name := config.NameFunc() + ext
			body := io.MultiReader(bytes.NewReader(head), f)
			if err = config.Store.Save(ctx, name, contentType, body, fh.Size); err != nil {
				return fmt.Errorf("store upload: %w", err)
			}

			config.Logger.InfoContext(ctx, "upload stored",
				slog.String("filename", name),
				slog.String("content_type", contentType),
				slog.Int64("size", fh.Size),
			)

			c.Set(UploadedFileKey, &UploadedFile{
				Filename:     name,
				OriginalName: fh.Filename,
				ContentType:  contentType,
				Size:         fh.Size,
			})
			return next(c)
		}
	}
}

// GetUploadedFile returns the file stored by UploadFile.
func GetUploadedFile(c echo.Context) (*UploadedFile, bool) {
	f, ok := c.Get(UploadedFileKey).(*UploadedFile)
	return f, ok && f != nil
}

// GetUploadRejection returns why UploadFile did not accept the request, or "".
func GetUploadRejection(c echo.Context) string {
	reason, _ := c.Get(UploadRejectionKey).(string)
	return reason
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ""
	}
}
