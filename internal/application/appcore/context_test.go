package appcore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lllypuk/catmap/internal/application/appcore"
)

func TestRequestIDContext(t *testing.T) {
	t.Run("set and get requestID", func(t *testing.T) {
		ctx := appcore.WithRequestID(context.Background(), "req-1")

		requestID, err := appcore.GetRequestID(ctx)
		require.NoError(t, err)
		assert.Equal(t, "req-1", requestID)
		assert.Equal(t, "req-1", appcore.RequestIDOrEmpty(ctx))
	})

	t.Run("get requestID from empty context", func(t *testing.T) {
		_, err := appcore.GetRequestID(context.Background())
		require.Error(t, err)
		assert.Equal(t, appcore.ErrRequestIDNotFound, err)
		assert.Empty(t, appcore.RequestIDOrEmpty(context.Background()))
	})
}
