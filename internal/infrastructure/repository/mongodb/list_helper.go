package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/lllypuk/catmap/internal/application/appcore"
)

// byInsertion sorts by _id; ObjectIDs grow with creation time.
var byInsertion = bson.D{{Key: "_id", Value: 1}}

// findDocuments runs filter and converts every document with convert.
// A document that cannot be decoded or converted is logged and skipped so
// one bad record does not hide the rest. The returned slice is never nil.
func findDocuments[T any, R any](
	ctx context.Context,
	collection *mongo.Collection,
	filter bson.M,
	convert func(*T) (R, error),
	logger *slog.Logger,
	collectionName string,
) ([]R, error) {
	cursor, err := collection.Find(ctx, filter, options.Find().SetSort(byInsertion))
	if err != nil {
		return nil, HandleMongoError(err, collectionName)
	}
	defer cursor.Close(ctx)

	results := make([]R, 0)
	for cursor.Next(ctx) {
		var doc T
		if err = cursor.Decode(&doc); err == nil {
			var item R
			if item, err = convert(&doc); err == nil {
				results = append(results, item)
				continue
			}
		}

		logger.WarnContext(ctx, "skipping unreadable document",
			slog.String("collection", collectionName),
			slog.Any("id", cursor.Current.Lookup("_id")),
			slog.String("request_id", appcore.RequestIDOrEmpty(ctx)),
			slog.String("error", err.Error()),
		)
	}

	if err = cursor.Err(); err != nil {
		return nil, fmt.Errorf("%s cursor: %w", collectionName, err)
	}

	return results, nil
}
