package graphqlhandler

import (
	"time"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

const dateOnly = "2006-01-02"

// DateScalar accepts YYYY-MM-DD or RFC 3339 and serializes RFC 3339 in UTC.
var DateScalar = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Date",
	Description: "A calendar date, YYYY-MM-DD or RFC 3339.",
	Serialize: func(value any) any {
		switch v := value.(type) {
		case time.Time:
			return v.UTC().Format(time.RFC3339)
		case *time.Time:
			if v == nil {
				return nil
			}
			return v.UTC().Format(time.RFC3339)
		case string:
			return v
		default:
			return nil
		}
	},
	ParseValue: func(value any) any {
		s, ok := value.(string)
		if !ok {
			return nil
		}
		t, err := ParseDate(s)
		if err != nil {
			return nil
		}
		return t
	},
	ParseLiteral: func(valueAST ast.Value) any {
		s, ok := valueAST.(*ast.StringValue)
		if !ok {
			return nil
		}
		t, err := ParseDate(s.Value)
		if err != nil {
			return nil
		}
		return t
	},
})

// ParseDate parses YYYY-MM-DD (as UTC midnight) or RFC 3339.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
