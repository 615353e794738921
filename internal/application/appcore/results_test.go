package appcore_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lllypuk/catmap/internal/application/appcore"
)

func TestResult(t *testing.T) {
	full := appcore.NewResult(42)
	assert.False(t, full.IsEmpty())
	assert.Equal(t, 42, full.Value)

	empty := appcore.EmptyResult[int]("nothing here")
	assert.True(t, empty.IsEmpty())
	assert.Zero(t, empty.Value)
}

func TestListResult(t *testing.T) {
	list := appcore.NewListResult[string](nil)
	assert.False(t, list.IsEmpty())
	assert.NotNil(t, list.Items)
	assert.Empty(t, list.Items)

	empty := appcore.EmptyListResult[string]("no items")
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, "no items", empty.Message)
}

func TestValidationError_IsValidationFailed(t *testing.T) {
	err := appcore.NewValidationError("weight", "must be positive")

	assert.ErrorIs(t, err, appcore.ErrValidationFailed)
	assert.Contains(t, err.Error(), "weight")

	var ve *appcore.ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "weight", ve.Field)
}
