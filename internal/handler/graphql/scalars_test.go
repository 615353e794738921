package graphqlhandler_test

import (
	"testing"
	"time"

	"github.com/graphql-go/graphql/language/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	graphqlhandler "github.com/lllypuk/catmap/internal/handler/graphql"
)

func TestParseDate(t *testing.T) {
	got, err := graphqlhandler.ParseDate("2020-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC), got)

	got, err = graphqlhandler.ParseDate("2020-02-29T12:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 2, 29, 10, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())

	_, err = graphqlhandler.ParseDate("29/02/2020")
	require.Error(t, err)
}

func TestDateScalar(t *testing.T) {
	d := time.Date(2021, 5, 4, 0, 0, 0, 0, time.FixedZone("EET", 2*3600))

	assert.Equal(t, "2021-05-03T22:00:00Z", graphqlhandler.DateScalar.Serialize(d))
	assert.Equal(t, "2021-05-03T22:00:00Z", graphqlhandler.DateScalar.Serialize(&d))
	assert.Nil(t, graphqlhandler.DateScalar.Serialize(42))

	assert.Equal(t, time.Date(2021, 5, 4, 0, 0, 0, 0, time.UTC), graphqlhandler.DateScalar.ParseValue("2021-05-04"))
	assert.Nil(t, graphqlhandler.DateScalar.ParseValue("May 4th"))
	assert.Nil(t, graphqlhandler.DateScalar.ParseValue(20210504))

	assert.Equal(t, time.Date(2021, 5, 4, 0, 0, 0, 0, time.UTC),
		graphqlhandler.DateScalar.ParseLiteral(&ast.StringValue{Value: "2021-05-04"}))
	assert.Nil(t, graphqlhandler.DateScalar.ParseLiteral(&ast.IntValue{Value: "20210504"}))
}
