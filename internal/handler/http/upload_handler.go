package httphandler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lllypuk/catmap/internal/domain/geo"
	"github.com/lllypuk/catmap/internal/infrastructure/httpserver"
	"github.com/lllypuk/catmap/internal/infrastructure/metrics"
	"github.com/lllypuk/catmap/internal/infrastructure/storage"
	"github.com/lllypuk/catmap/internal/middleware"
)

// Upload handler messages.
const (
	MessageFileUploaded = "file uploaded"
	MessageFileNotValid = "file not valid"
)

// AssetReader opens stored uploads.
// Declared on the consumer side per project guidelines.
type AssetReader interface {
	Open(ctx context.Context, name string) (*storage.Asset, error)
}

// UploadResponse is the data part of a successful upload.
type UploadResponse struct {
	Filename string      `json:"filename"`
	Location geo.GeoJSON `json:"location"`
}

// UploadHandler handles photo uploads and serves stored photos.
type UploadHandler struct {
	assets  AssetReader
	metrics *metrics.APIMetrics
	chain   []echo.MiddlewareFunc
}

// NewUploadHandler creates a new UploadHandler. chain runs in front of the
// upload route and is expected to end with middleware.Coordinates and
// middleware.UploadFile. metrics may be nil.
func NewUploadHandler(assets AssetReader, m *metrics.APIMetrics, chain ...echo.MiddlewareFunc) *UploadHandler {
	return &UploadHandler{assets: assets, metrics: m, chain: chain}
}

// RegisterRoutes registers the upload routes under the API group.
func (h *UploadHandler) RegisterRoutes(r *httpserver.Router) {
	httpserver.NewRouteBuilder(r.API()).
		Use(h.chain...).
		POST("/upload", h.Upload)

	r.API().GET("/uploads/:filename", h.Download)
}

// Upload answers with the stored file name and the location of the photo.
// POST /api/v1/upload
func (h *UploadHandler) Upload(c echo.Context) error {
	file, ok := middleware.GetUploadedFile(c)
	if !ok {
		reason := middleware.GetUploadRejection(c)
		if reason == "" {
			reason = middleware.RejectMissing
		}
		h.metrics.RecordUpload(reason, 0)
		return httpserver.NewStatusError(http.StatusBadRequest, MessageFileNotValid)
	}

	point, _ := middleware.GetLocation(c)
	h.metrics.RecordUpload(metrics.OutcomeUploaded, file.Size)

	return httpserver.RespondOK(c, MessageFileUploaded, UploadResponse{
		Filename: file.Filename,
		Location: point.GeoJSON(),
	})
}

// Download streams a stored photo.
// GET /api/v1/uploads/:filename
func (h *UploadHandler) Download(c echo.Context) error {
	asset, err := h.assets.Open(c.Request().Context(), c.Param("filename"))
	if err != nil {
		return err
	}
	defer asset.Close()

	if asset.Size >= 0 {
		c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(asset.Size, 10))
	}
	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Stream(http.StatusOK, asset.ContentType, asset)
}
