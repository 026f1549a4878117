package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devranvijay/PropertyPro/internal/auth"
	"github.com/devranvijay/PropertyPro/internal/db"
	"github.com/devranvijay/PropertyPro/internal/models"
)

// IUserService defines the interface for user-related operations.
// This allows for easier mocking in tests.
type IUserService interface {
	Register(ctx context.Context, name, email, password string, role models.Role) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	FindByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	ToggleFavorite(ctx context.Context, userID, propertyID primitive.ObjectID) (saved bool, err error)
	SavedProperties(ctx context.Context, userID primitive.ObjectID) ([]models.Property, error)
	ListAll(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, userID primitive.ObjectID) error
	UpdateRole(ctx context.Context, userID primitive.ObjectID, role models.Role) (*models.User, error)
	EarliestAdmin(ctx context.Context) (*models.User, error)
}

const usersCollection = "users"

// userService implements IUserService.
type userService struct {
	db *mongo.Database
}

// NewUserService creates a new UserService.
func NewUserService(db *mongo.Database) IUserService {
	return &userService{db: db}
}

// Register creates a new user with a bcrypt-hashed password. An existing
// account with the same email is rejected up front; the unique index on
// email (db.EnsureIndexes) closes the race between check and insert, and
// a duplicate-key write is surfaced as the same ErrEmailExists.
func (s *userService) Register(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	collection := s.db.Collection(usersCollection)

	count, err := collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("error checking email availability: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailExists
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Favorites:    []primitive.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	res, err := collection.InsertOne(ctx, user)
	if err != nil {
		if db.IsMongoDuplicateKeyError(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("error inserting user: %w", err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

// Authenticate verifies email/password and returns the matching user.
// Returns ErrInvalidCredentials for both unknown email and bad password.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	collection := s.db.Collection(usersCollection)

	err := collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// FindByID finds a user by their ID.
// Returns nil and mongo.ErrNoDocuments if not found.
func (s *userService) FindByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	var user models.User
	collection := s.db.Collection(usersCollection)

	err := collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("error finding user %s: %w", userID.Hex(), err)
	}
	return &user, nil
}

// ToggleFavorite adds propertyID to the user's favorites if absent, or
// removes it if present. Both directions are single conditional updates,
// so concurrent toggles converge on membership rather than a count.
func (s *userService) ToggleFavorite(ctx context.Context, userID, propertyID primitive.ObjectID) (bool, error) {
	collection := s.db.Collection(usersCollection)

	// Attempt removal first: matches only when the ID is present.
	res, err := collection.UpdateOne(ctx,
		bson.M{"_id": userID, "favorites": propertyID},
		bson.M{"$pull": bson.M{"favorites": propertyID}, "$set": bson.M{"updatedAt": time.Now()}},
	)
	if err != nil {
		return false, fmt.Errorf("error removing favorite: %w", err)
	}
	if res.ModifiedCount > 0 {
		return false, nil
	}

	// Not present: add it. $addToSet keeps the list duplicate-free even
	// if two adds race.
	res, err = collection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"favorites": propertyID}, "$set": bson.M{"updatedAt": time.Now()}},
	)
	if err != nil {
		return false, fmt.Errorf("error adding favorite: %w", err)
	}
	if res.MatchedCount == 0 {
		return false, mongo.ErrNoDocuments
	}
	return true, nil
}

// SavedProperties returns the property documents behind the user's
// favorites list. Favorites pointing at deleted properties are silently
// dropped from the result.
func (s *userService) SavedProperties(ctx context.Context, userID primitive.ObjectID) ([]models.Property, error) {
	user, err := s.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.Favorites) == 0 {
		return []models.Property{}, nil
	}

	cursor, err := s.db.Collection(propertiesCollection).Find(ctx,
		bson.M{"_id": bson.M{"$in": user.Favorites}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("error loading saved properties: %w", err)
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("error decoding saved properties: %w", err)
	}
	return properties, nil
}

// ListAll returns every user, newest first.
func (s *userService) ListAll(ctx context.Context) ([]models.User, error) {
	cursor, err := s.db.Collection(usersCollection).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("error decoding users: %w", err)
	}
	return users, nil
}

// Delete removes the user document. Properties and submissions created by
// the user are left in place; reads that resolve them handle the dangling
// reference.
func (s *userService) Delete(ctx context.Context, userID primitive.ObjectID) error {
	res, err := s.db.Collection(usersCollection).DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		return fmt.Errorf("error deleting user %s: %w", userID.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// UpdateRole sets the user's role and returns the updated document.
func (s *userService) UpdateRole(ctx context.Context, userID primitive.ObjectID, role models.Role) (*models.User, error) {
	var user models.User
	err := s.db.Collection(usersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"role": role, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("error updating role for %s: %w", userID.Hex(), err)
	}
	return &user, nil
}

// EarliestAdmin returns the longest-standing admin account, used as the
// routing fallback for submissions on orphaned properties. Sorting by
// creation time makes the choice deterministic.
func (s *userService) EarliestAdmin(ctx context.Context) (*models.User, error) {
	var user models.User
	err := s.db.Collection(usersCollection).FindOne(ctx,
		bson.M{"role": models.RoleAdmin},
		options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}}),
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("error finding admin user: %w", err)
	}
	return &user, nil
}
