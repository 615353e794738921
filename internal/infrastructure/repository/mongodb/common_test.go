package mongodb_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/lllypuk/catmap/internal/domain/errs"
	"github.com/lllypuk/catmap/internal/infrastructure/repository/mongodb"
)

func TestHandleMongoError(t *testing.T) {
	assert.NoError(t, mongodb.HandleMongoError(nil, "cat"))

	require.ErrorIs(t, mongodb.HandleMongoError(mongo.ErrNoDocuments, "cat"), errs.ErrNotFound)
	require.ErrorIs(t,
		mongodb.HandleMongoError(fmt.Errorf("wrapped: %w", mongo.ErrNoDocuments), "cat"),
		errs.ErrNotFound)

	other := errors.New("socket closed")
	err := mongodb.HandleMongoError(other, "cat")
	require.ErrorIs(t, err, other)
	assert.Contains(t, err.Error(), "failed to operate on cat")
}
