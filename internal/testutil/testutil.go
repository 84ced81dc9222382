package testutil

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// testIDCounter is used to generate unique test database names
var testIDCounter uint64

// TestConfig holds test configuration
type TestConfig struct {
	MongoURI string
	MongoDB  string
}

// DefaultTestConfig returns default test configuration
func DefaultTestConfig() TestConfig {
	mongoURI := os.Getenv("TEST_MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27018"
	}

	mongoDB := os.Getenv("TEST_MONGO_DB")
	if mongoDB == "" {
		mongoDB = "moviedb_test"
	}

	return TestConfig{
		MongoURI: mongoURI,
		MongoDB:  mongoDB,
	}
}

// NewTestLogger creates a test logger
func NewTestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// NewNopLogger creates a no-op logger for benchmarks
func NewNopLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestMongoDB connects to the test MongoDB and returns a database unique
// to the calling test, dropped on cleanup.
func NewTestMongoDB(t *testing.T, config TestConfig) (*mongo.Client, *mongo.Database) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.MongoURI)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		t.Skipf("MongoDB ping failed: %v", err)
	}

	db := client.Database(fmt.Sprintf("%s_%d", config.MongoDB, atomic.AddUint64(&testIDCounter, 1)))

	t.Cleanup(func() {
		db.Drop(context.Background())
		client.Disconnect(context.Background())
	})

	return client, db
}

// SeedCollection inserts docs into the named collection.
func SeedCollection(t *testing.T, db *mongo.Database, name string, docs ...any) {
	t.Helper()
	if len(docs) == 0 {
		return
	}
	if _, err := db.Collection(name).InsertMany(context.Background(), docs); err != nil {
		t.Fatalf("Failed to seed %s: %v", name, err)
	}
}

// SkipIfShort skips the test if running in short mode
func SkipIfShort(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping in short mode")
	}
}

// SkipIfNoMongo skips the test if MongoDB is not available
func SkipIfNoMongo(t *testing.T) {
	config := DefaultTestConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.MongoURI)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		t.Skip("MongoDB not available")
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		t.Skip("MongoDB not available")
	}
}
