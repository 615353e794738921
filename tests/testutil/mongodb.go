package testutil

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/lllypuk/catmap/internal/infrastructure/mongodb"
)

const (
	mongoCtxTimeout   = 10 * time.Second
	maxTestNameLength = 40
)

var mongoContainer = newSharedContainer(testcontainers.ContainerRequest{
	Image: "mongo:8",
	Name:  "catmap-test-mongodb", // Required for Reuse mode
	Env: map[string]string{
		"MONGO_INITDB_ROOT_USERNAME": "admin",
		"MONGO_INITDB_ROOT_PASSWORD": "admin123",
	},
	WaitingFor: wait.ForLog("Waiting for connections").WithStartupTimeout(containerStartupTimeout),
}, "27017")

// SetupSharedTestMongoDB returns a database of its own for the calling test.
// The database is dropped when the test ends.
func SetupSharedTestMongoDB(t *testing.T) *mongo.Database {
	t.Helper()

	addr, err := mongoContainer.Addr()
	require.NoError(t, err, "mongodb container")

	client, err := mongo.Connect(options.Client().ApplyURI("mongodb://admin:admin123@" + addr))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), mongoCtxTimeout)
	defer cancel()
	require.Eventually(t, func() bool {
		return client.Ping(ctx, nil) == nil
	}, mongoCtxTimeout, 250*time.Millisecond, "mongodb ping")

	db := client.Database(testDBName(t.Name()))

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), mongoCtxTimeout)
		defer cleanupCancel()
		_ = db.Drop(cleanupCtx)
		_ = client.Disconnect(cleanupCtx)
	})

	return db
}

// SetupTestMongoDB is SetupSharedTestMongoDB with the users and cats
// indexes already in place.
func SetupTestMongoDB(t *testing.T) *mongo.Database {
	t.Helper()

	db := SetupSharedTestMongoDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), mongoCtxTimeout)
	defer cancel()
	require.NoError(t, mongodb.CreateAllIndexes(ctx, db))

	return db
}

// testDBName keeps names under the 63 byte MongoDB limit.
func testDBName(testName string) string {
	testName = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, testName)
	if len(testName) > maxTestNameLength {
		hash := sha256.Sum256([]byte(testName))
		testName = testName[:20] + "_" + hex.EncodeToString(hash[:])[:12]
	}
	return "catmap_test_" + testName
}
