package middleware

import (
	"log/slog"
	"mime/multipart"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rwcarlsen/goexif/exif"

	"github.com/lllypuk/catmap/internal/domain/geo"
)

// LocationKey is the echo context key holding the geo.Point of an upload.
const LocationKey = "upload_location"

// Location sources, reported in logs.
const (
	LocationFromEXIF    = "exif"
	LocationFromForm    = "form"
	LocationFromDefault = "default"
)

// CoordinatesConfig holds configuration for the Coordinates middleware.
type CoordinatesConfig struct {
	Logger *slog.Logger

	// FormField names the multipart file field.
	FormField string

	// LatField and LngField name the optional form fields used when the
	// image carries no GPS tags.
	LatField string
	LngField string

	// Default is used when neither EXIF nor form fields give a valid point.
	Default geo.Point
}

// DefaultCoordinatesConfig returns a CoordinatesConfig with sensible defaults.
func DefaultCoordinatesConfig() CoordinatesConfig {
	return CoordinatesConfig{
		Logger:    slog.Default(),
		FormField: "cat",
		LatField:  "lat",
		LngField:  "lng",
		Default:   geo.Point{Lng: 24.94, Lat: 60.17},
	}
}

// Coordinates resolves where an uploaded photo was taken and stores it under
// LocationKey. GPS EXIF tags win over the lat/lng form fields, which win
// over the configured default.
func Coordinates(config CoordinatesConfig) echo.MiddlewareFunc {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.FormField == "" {
		config.FormField = "cat"
	}
	if config.LatField == "" {
		config.LatField = "lat"
	}
	if config.LngField == "" {
		config.LngField = "lng"
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			point, source := config.Default, LocationFromDefault

			if fh, err := c.FormFile(config.FormField); err == nil {
				if p, ok := pointFromEXIF(fh); ok {
					point, source = p, LocationFromEXIF
				}
			}

			if source == LocationFromDefault {
				if p, ok := pointFromForm(c, config.LatField, config.LngField); ok {
					point, source = p, LocationFromForm
				}
			}

			config.Logger.DebugContext(c.Request().Context(), "upload location resolved",
				slog.String("source", source),
				slog.Float64("lat", point.Lat),
				slog.Float64("lng", point.Lng),
			)

			c.Set(LocationKey, point)
			return next(c)
		}
	}
}

// GetLocation returns the point stored by Coordinates.
func GetLocation(c echo.Context) (geo.Point, bool) {
	p, ok := c.Get(LocationKey).(geo.Point)
	return p, ok
}

func pointFromEXIF(fh *multipart.FileHeader) (geo.Point, bool) {
	f, err := fh.Open()
	if err != nil {
		return geo.Point{}, false
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return geo.Point{}, false
	}

	lat, lng, err := x.LatLong()
	if err != nil {
		return geo.Point{}, false
	}

	p, err := geo.NewPoint(lng, lat)
	if err != nil {
		return geo.Point{}, false
	}
	return p, true
}

func pointFromForm(c echo.Context, latField, lngField string) (geo.Point, bool) {
	latRaw, lngRaw := c.FormValue(latField), c.FormValue(lngField)
	if latRaw == "" || lngRaw == "" {
		return geo.Point{}, false
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return geo.Point{}, false
	}
	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil {
		return geo.Point{}, false
	}

	p, err := geo.NewPoint(lng, lat)
	if err != nil {
		return geo.Point{}, false
	}
	return p, true
}
