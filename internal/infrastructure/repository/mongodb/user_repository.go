package mongodb

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/lllypuk/catmap/internal/application/appcore"
	"github.com/lllypuk/catmap/internal/domain/errs"
	"github.com/lllypuk/catmap/internal/domain/objectid"
	userdomain "github.com/lllypuk/catmap/internal/domain/user"
)

// MongoUserRepository realizuet userapp.Repository (application layer interface)
type MongoUserRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// UserRepoOption configures MongoUserRepository.
type UserRepoOption func(*MongoUserRepository)

// WithUserRepoLogger sets the logger for user repository.
func WithUserRepoLogger(logger *slog.Logger) UserRepoOption {
	return func(r *MongoUserRepository) {
		r.logger = logger
	}
}

// NewMongoUserRepository creates New MongoDB User Repository
func NewMongoUserRepository(collection *mongo.Collection, opts ...UserRepoOption) *MongoUserRepository {
	r := &MongoUserRepository{
		collection: collection,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// FindByID finds user po ID
func (r *MongoUserRepository) FindByID(ctx context.Context, id objectid.ID) (*userdomain.User, error) {
	oid, err := id.ObjectID()
	if err != nil {
		return nil, errs.ErrNotFound
	}

	var doc userDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.ErrorContext(ctx, "failed to find user by ID",
				slog.String("user_id", id.String()),
				slog.String("request_id", appcore.RequestIDOrEmpty(ctx)),
				slog.String("error", err.Error()),
			)
		}
		return nil, HandleMongoError(err, "user")
	}

	return r.documentToUser(&doc)
}

// FindByIDs loads several users with a single $in query
func (r *MongoUserRepository) FindByIDs(ctx context.Context, ids []objectid.ID) ([]*userdomain.User, error) {
	if len(ids) == 0 {
		return []*userdomain.User{}, nil
	}

	oids, err := toObjectIDs(ids)
	if err != nil {
		return nil, err
	}

	return findDocuments(ctx, r.collection, bson.M{"_id": bson.M{"$in": oids}}, r.documentToUser, r.logger, "users")
}

// List returns all users
func (r *MongoUserRepository) List(ctx context.Context) ([]*userdomain.User, error) {
	return findDocuments(ctx, r.collection, bson.M{}, r.documentToUser, r.logger, "users")
}

// Save inserts the user
func (r *MongoUserRepository) Save(ctx context.Context, user *userdomain.User) error {
	if user == nil || user.ID().IsZero() {
		return errs.ErrInvalidInput
	}

	doc, err := r.userToDocument(user)
	if err != nil {
		return err
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to save user",
			slog.String("user_id", user.ID().String()),
			slog.String("email", user.Email()),
			slog.String("error", err.Error()),
		)
		return HandleMongoError(err, "user")
	}
	if !result.Acknowledged {
		return errs.ErrNotAcknowledged
	}
	return nil
}

// Update rewrites the mutable fields of an existing user
func (r *MongoUserRepository) Update(ctx context.Context, user *userdomain.User) error {
	oid, err := user.ID().ObjectID()
	if err != nil {
		return errs.ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"user_name":  user.UserName(),
		"updated_at": user.UpdatedAt(),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to update user",
			slog.String("user_id", user.ID().String()),
			slog.String("error", err.Error()),
		)
		return HandleMongoError(err, "user")
	}
	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes the user and returns the deleted document
func (r *MongoUserRepository) Delete(ctx context.Context, id objectid.ID) (*userdomain.User, error) {
	oid, err := id.ObjectID()
	if err != nil {
		return nil, errs.ErrNotFound
	}

	var doc userDocument
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.ErrorContext(ctx, "failed to delete user",
				slog.String("user_id", id.String()),
				slog.String("error", err.Error()),
			)
		}
		return nil, HandleMongoError(err, "user")
	}

	return r.documentToUser(&doc)
}

// Count returns the number of users
func (r *MongoUserRepository) Count(ctx context.Context) (int64, error) {
	count, err := CountAll(ctx, r.collection)
	if err != nil {
		return 0, HandleMongoError(err, "users")
	}
	return count, nil
}

// userDocument is the stored shape of a user
type userDocument struct {
	ID       bson.ObjectID `bson:"_id"`
	UserName string        `bson:"user_name"`
	Email    string        `bson:"email"`

	BaseDocument `bson:",inline"`
}

// userToDocument preobrazuet User in Document
func (r *MongoUserRepository) userToDocument(user *userdomain.User) (userDocument, error) {
	oid, err := user.ID().ObjectID()
	if err != nil {
		return userDocument{}, err
	}

	return userDocument{
		ID:       oid,
		UserName: user.UserName(),
		Email:    user.Email(),
		BaseDocument: BaseDocument{
			CreatedAt: user.CreatedAt(),
			UpdatedAt: user.UpdatedAt(),
		},
	}, nil
}

// documentToUser preobrazuet Document in User
func (r *MongoUserRepository) documentToUser(doc *userDocument) (*userdomain.User, error) {
	if doc == nil || doc.ID.IsZero() {
		return nil, errs.ErrInvalidInput
	}

	return userdomain.Reconstruct(
		objectid.FromObjectID(doc.ID),
		doc.UserName,
		doc.Email,
		doc.CreatedAt,
		doc.UpdatedAt,
	), nil
}
