package mongodb

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/lllypuk/catmap/internal/application/appcore"
	catdomain "github.com/lllypuk/catmap/internal/domain/cat"
	"github.com/lllypuk/catmap/internal/domain/errs"
	"github.com/lllypuk/catmap/internal/domain/geo"
	"github.com/lllypuk/catmap/internal/domain/objectid"
)

// MongoCatRepository implements catapp.Repository
type MongoCatRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// CatRepoOption configures MongoCatRepository.
type CatRepoOption func(*MongoCatRepository)

// WithCatRepoLogger sets the logger for cat repository.
func WithCatRepoLogger(logger *slog.Logger) CatRepoOption {
	return func(r *MongoCatRepository) {
		r.logger = logger
	}
}

// NewMongoCatRepository creates a new MongoDB cat repository
func NewMongoCatRepository(collection *mongo.Collection, opts ...CatRepoOption) *MongoCatRepository {
	r := &MongoCatRepository{
		collection: collection,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// FindByID finds a cat by ID
func (r *MongoCatRepository) FindByID(ctx context.Context, id objectid.ID) (*catdomain.Cat, error) {
	oid, err := id.ObjectID()
	if err != nil {
		return nil, errs.ErrNotFound
	}

	var doc catDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.ErrorContext(ctx, "failed to find cat by ID",
				slog.String("cat_id", id.String()),
				slog.String("request_id", appcore.RequestIDOrEmpty(ctx)),
				slog.String("error", err.Error()),
			)
		}
		return nil, HandleMongoError(err, "cat")
	}

	return r.documentToCat(&doc)
}

// List returns all cats
func (r *MongoCatRepository) List(ctx context.Context) ([]*catdomain.Cat, error) {
	return findDocuments(ctx, r.collection, bson.M{}, r.documentToCat, r.logger, "cats")
}

// ListByOwner returns the cats of one owner
func (r *MongoCatRepository) ListByOwner(ctx context.Context, owner objectid.ID) ([]*catdomain.Cat, error) {
	oid, err := owner.ObjectID()
	if err != nil {
		return []*catdomain.Cat{}, nil
	}
	return findDocuments(ctx, r.collection, bson.M{"owner": oid}, r.documentToCat, r.logger, "cats")
}

// ListWithinBox returns cats whose location falls inside box.
// The $box corners are given longitude first.
func (r *MongoCatRepository) ListWithinBox(ctx context.Context, box geo.Box) ([]*catdomain.Cat, error) {
	filter := bson.M{
		"location": bson.M{
			"$geoWithin": bson.M{
				"$box": box.Corners(),
			},
		},
	}
	return findDocuments(ctx, r.collection, filter, r.documentToCat, r.logger, "cats")
}

// Save inserts the cat
func (r *MongoCatRepository) Save(ctx context.Context, c *catdomain.Cat) error {
	if c == nil || c.ID().IsZero() {
		return errs.ErrInvalidInput
	}

	doc, err := r.catToDocument(c)
	if err != nil {
		return err
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to save cat",
			slog.String("cat_id", c.ID().String()),
			slog.String("owner", c.Owner().String()),
			slog.String("error", err.Error()),
		)
		return HandleMongoError(err, "cat")
	}
	if !result.Acknowledged {
		return errs.ErrNotAcknowledged
	}
	return nil
}

// Update rewrites the mutable fields of an existing cat.
// Owner, location and filename are never written after creation.
func (r *MongoCatRepository) Update(ctx context.Context, c *catdomain.Cat) error {
	oid, err := c.ID().ObjectID()
	if err != nil {
		return errs.ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"cat_name":   c.Name(),
		"weight":     c.Weight(),
		"birthdate":  c.Birthdate(),
		"updated_at": c.UpdatedAt(),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to update cat",
			slog.String("cat_id", c.ID().String()),
			slog.String("error", err.Error()),
		)
		return HandleMongoError(err, "cat")
	}
	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes the cat and returns the deleted document
func (r *MongoCatRepository) Delete(ctx context.Context, id objectid.ID) (*catdomain.Cat, error) {
	oid, err := id.ObjectID()
	if err != nil {
		return nil, errs.ErrNotFound
	}

	var doc catDocument
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.ErrorContext(ctx, "failed to delete cat",
				slog.String("cat_id", id.String()),
				slog.String("error", err.Error()),
			)
		}
		return nil, HandleMongoError(err, "cat")
	}

	return r.documentToCat(&doc)
}

// Count returns the number of cats
func (r *MongoCatRepository) Count(ctx context.Context) (int64, error) {
	count, err := CountAll(ctx, r.collection)
	if err != nil {
		return 0, HandleMongoError(err, "cats")
	}
	return count, nil
}

// catDocument is the stored shape of a cat
type catDocument struct {
	ID        bson.ObjectID `bson:"_id"`
	Name      string        `bson:"cat_name"`
	Weight    float64       `bson:"weight"`
	Birthdate time.Time     `bson:"birthdate"`
	Owner     bson.ObjectID `bson:"owner"`
	Location  geo.GeoJSON   `bson:"location"`
	Filename  string        `bson:"filename"`

	BaseDocument `bson:",inline"`
}

func (r *MongoCatRepository) catToDocument(c *catdomain.Cat) (catDocument, error) {
	oid, err := c.ID().ObjectID()
	if err != nil {
		return catDocument{}, err
	}
	owner, err := c.Owner().ObjectID()
	if err != nil {
		return catDocument{}, err
	}

	return catDocument{
		ID:        oid,
		Name:      c.Name(),
		Weight:    c.Weight(),
		Birthdate: c.Birthdate(),
		Owner:     owner,
		Location:  c.Location().GeoJSON(),
		Filename:  c.Filename(),
		BaseDocument: BaseDocument{
			CreatedAt: c.CreatedAt(),
			UpdatedAt: c.UpdatedAt(),
		},
	}, nil
}

func (r *MongoCatRepository) documentToCat(doc *catDocument) (*catdomain.Cat, error) {
	if doc == nil || doc.ID.IsZero() {
		return nil, errs.ErrInvalidInput
	}

	location, err := geo.FromGeoJSON(doc.Location.Type, doc.Location.Coordinates)
	if err != nil {
		return nil, err
	}

	return catdomain.Reconstruct(
		objectid.FromObjectID(doc.ID),
		doc.Name,
		doc.Weight,
		doc.Birthdate,
		objectid.FromObjectID(doc.Owner),
		location,
		doc.Filename,
		doc.CreatedAt,
		doc.UpdatedAt,
	), nil
}
