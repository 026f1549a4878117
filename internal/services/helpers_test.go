package services

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devranvijay/PropertyPro/internal/models"
)

var testMongoURI string

func init() {
	// Try to load .env from project root (2 levels up from this file)
	_, filename, _, _ := runtime.Caller(0)
	projectRoot := filepath.Join(filepath.Dir(filename), "..", "..")
	if err := godotenv.Load(filepath.Join(projectRoot, ".env")); err != nil {
		godotenv.Load()
	}

	testMongoURI = os.Getenv("MONGO_URI_TEST")
	if testMongoURI == "" {
		panic("MONGO_URI_TEST environment variable is required for tests")
	}
}

func setupTestDB(t *testing.T, dbName string) *mongo.Database {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(testMongoURI))
	require.NoError(t, err, "Failed to connect to MongoDB")
	db := client.Database(dbName)
	for _, name := range []string{usersCollection, propertiesCollection, offersCollection, visitsCollection, inquiriesCollection, contactsCollection, activityCollection} {
		_ = db.Collection(name).Drop(context.Background())
	}
	t.Cleanup(func() {
		_ = client.Disconnect(context.Background())
	})
	return db
}

// insertTestUser writes a user document directly, bypassing Register, so
// tests can control timestamps and roles.
func insertTestUser(t *testing.T, db *mongo.Database, name string, role models.Role, createdAt time.Time) *models.User {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		Role:         role,
		Favorites:    []primitive.ObjectID{},
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	res, err := db.Collection(usersCollection).InsertOne(context.Background(), user)
	require.NoError(t, err)
	user.ID = res.InsertedID.(primitive.ObjectID)
	return user
}

// insertTestProperty writes a minimal listing owned by ownerID.
func insertTestProperty(t *testing.T, db *mongo.Database, ownerID primitive.ObjectID, title string, price int64) *models.Property {
	t.Helper()
	now := time.Now()
	property := &models.Property{
		Title:     title,
		Price:     price,
		Location:  "Springfield",
		Type:      models.PropertyTypeBuy,
		Images:    []string{},
		Amenities: []string{},
		Owner:     ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := db.Collection(propertiesCollection).InsertOne(context.Background(), property)
	require.NoError(t, err)
	property.ID = res.InsertedID.(primitive.ObjectID)
	return property
}
