package objectid

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/lllypuk/catmap/internal/domain/errs"
)

// ID is the store-assigned identifier of users and cats, a 24 character hex string.
type ID string

// New generates a fresh identifier.
func New() ID {
	return ID(bson.NewObjectID().Hex())
}

// Parse validates s as a hex ObjectID.
func Parse(s string) (ID, error) {
	oid, err := bson.ObjectIDFromHex(s)
	if err != nil {
		return "", fmt.Errorf("%w: malformed id %q", errs.ErrInvalidInput, s)
	}
	return ID(oid.Hex()), nil
}

// MustParse parses s or panics. Intended for tests and constants.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the id is empty
func (id ID) IsZero() bool {
	return id == ""
}

// ObjectID converts the id into its BSON representation.
func (id ID) ObjectID() (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(string(id))
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("%w: malformed id %q", errs.ErrInvalidInput, id)
	}
	return oid, nil
}

// FromObjectID converts a BSON ObjectID into a domain id.
func FromObjectID(oid bson.ObjectID) ID {
	if oid.IsZero() {
		return ""
	}
	return ID(oid.Hex())
}
