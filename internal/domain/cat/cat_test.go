package cat_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catDomain "github.com/lllypuk/catmap/internal/domain/cat"
	"github.com/lllypuk/catmap/internal/domain/errs"
	"github.com/lllypuk/catmap/internal/domain/geo"
	"github.com/lllypuk/catmap/internal/domain/objectid"
)

var (
	helsinki  = geo.Point{Lng: 24.94, Lat: 60.17}
	birthdate = time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
)

func newTom(t *testing.T) *catDomain.Cat {
	t.Helper()
	c, err := catDomain.NewCat("Tom", 4.2, birthdate, objectid.New(), helsinki, "tom.jpg")
	require.NoError(t, err)
	return c
}

func TestNewCat_Success(t *testing.T) {
	owner := objectid.New()

	c, err := catDomain.NewCat(" Tom ", 4.2, birthdate, owner, helsinki, "tom.jpg")

	require.NoError(t, err)
	assert.False(t, c.ID().IsZero())
	assert.Equal(t, "Tom", c.Name())
	assert.InDelta(t, 4.2, c.Weight(), 1e-9)
	assert.Equal(t, birthdate, c.Birthdate())
	assert.Equal(t, owner, c.Owner())
	assert.Equal(t, helsinki, c.Location())
	assert.Equal(t, "tom.jpg", c.Filename())
	assert.WithinDuration(t, time.Now(), c.CreatedAt(), time.Second)
}

func TestNewCat_Validation(t *testing.T) {
	owner := objectid.New()
	future := time.Now().Add(48 * time.Hour)

	tests := []struct {
		name      string
		catName   string
		weight    float64
		birthdate time.Time
		owner     objectid.ID
		location  geo.Point
		filename  string
	}{
		{"empty name", "", 4, birthdate, owner, helsinki, "a.jpg"},
		{"zero weight", "Tom", 0, birthdate, owner, helsinki, "a.jpg"},
		{"negative weight", "Tom", -1, birthdate, owner, helsinki, "a.jpg"},
		{"future birthdate", "Tom", 4, future, owner, helsinki, "a.jpg"},
		{"missing birthdate", "Tom", 4, time.Time{}, owner, helsinki, "a.jpg"},
		{"missing owner", "Tom", 4, birthdate, "", helsinki, "a.jpg"},
		{"bad location", "Tom", 4, birthdate, owner, geo.Point{Lng: 200, Lat: 0}, "a.jpg"},
		{"missing filename", "Tom", 4, birthdate, owner, helsinki, " "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := catDomain.NewCat(tt.catName, tt.weight, tt.birthdate, tt.owner, tt.location, tt.filename)

			require.ErrorIs(t, err, errs.ErrInvalidInput)
			assert.Nil(t, c)
		})
	}
}

func TestApply_PartialUpdate(t *testing.T) {
	c := newTom(t)
	owner := c.Owner()
	name := "Thomas"

	err := c.Apply(catDomain.Changes{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "Thomas", c.Name())
	assert.InDelta(t, 4.2, c.Weight(), 1e-9)
	assert.Equal(t, owner, c.Owner())
	assert.Equal(t, "tom.jpg", c.Filename())
}

func TestApply_InvalidLeavesCatUntouched(t *testing.T) {
	c := newTom(t)
	name := "Thomas"
	weight := -2.0

	err := c.Apply(catDomain.Changes{Name: &name, Weight: &weight})

	require.ErrorIs(t, err, errs.ErrInvalidInput)
	assert.Equal(t, "Tom", c.Name())
}

func TestApply_Empty(t *testing.T) {
	c := newTom(t)
	before := c.UpdatedAt()

	require.NoError(t, c.Apply(catDomain.Changes{}))
	assert.Equal(t, before, c.UpdatedAt())
}
