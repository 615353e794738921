// Package mongodb provides MongoDB infrastructure components including index management.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names as constants for consistency.
const (
	CollectionUsers = "users"
	CollectionCats  = "cats"
)

// IndexDefinition describes a MongoDB index to be created.
type IndexDefinition struct {
	Collection string
	Keys       bson.D
	Options    *options.IndexOptionsBuilder
}

// CreateAllIndexes creates all necessary indexes for the application.
// This function is idempotent - calling it multiple times is safe.
func CreateAllIndexes(ctx context.Context, db *mongo.Database) error {
	return createIndexes(ctx, db, GetAllIndexDefinitions())
}

// GetAllIndexDefinitions returns all index definitions for all collections.
func GetAllIndexDefinitions() []IndexDefinition {
	var indexes []IndexDefinition

	indexes = append(indexes, GetUserIndexes()...)
	indexes = append(indexes, GetCatIndexes()...)

	return indexes
}

// GetUserIndexes returns index definitions for the users collection.
// user_name is deliberately not unique.
func GetUserIndexes() []IndexDefinition {
	return []IndexDefinition{
		{
			Collection: CollectionUsers,
			Keys:       bson.D{{Key: "user_name", Value: 1}},
			Options:    options.Index().SetName("idx_users_user_name"),
		},
	}
}

// GetCatIndexes returns index definitions for the cats collection.
func GetCatIndexes() []IndexDefinition {
	return []IndexDefinition{
		{
			// Owner lookups for catsByOwner
			Collection: CollectionCats,
			Keys:       bson.D{{Key: "owner", Value: 1}},
			Options:    options.Index().SetName("idx_cats_owner"),
		},
		{
			// GeoJSON point index on location
			Collection: CollectionCats,
			Keys:       bson.D{{Key: "location", Value: "2dsphere"}},
			Options:    options.Index().SetName("idx_cats_location_2dsphere"),
		},
	}
}

func createIndexes(ctx context.Context, db *mongo.Database, indexes []IndexDefinition) error {
	for _, idx := range indexes {
		coll := db.Collection(idx.Collection)
		model := mongo.IndexModel{
			Keys:    idx.Keys,
			Options: idx.Options,
		}

		if _, err := coll.Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", idx.Collection, err)
		}
	}

	return nil
}
