package appcore

import (
	"context"
	"errors"
)

// Context keys
type contextKey string

const (
	requestIDKey contextKey = "requestID"
)

var ErrRequestIDNotFound = errors.New("request ID not found in context")

// GetRequestID extracts the request ID from the context
func GetRequestID(ctx context.Context) (string, error) {
	requestID, ok := ctx.Value(requestIDKey).(string)
	if !ok || requestID == "" {
		return "", ErrRequestIDNotFound
	}
	return requestID, nil
}

// WithRequestID adds the request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDOrEmpty returns the request ID or an empty string, for log attributes
func RequestIDOrEmpty(ctx context.Context) string {
	id, _ := GetRequestID(ctx)
	return id
}
