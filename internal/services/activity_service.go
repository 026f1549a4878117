package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devranvijay/PropertyPro/internal/models"
)

const activityCollection = "activities"

// IActivityService defines the interface for the append-only activity log.
type IActivityService interface {
	Log(ctx context.Context, userID, propertyID primitive.ObjectID, action models.ActivityAction) (*models.Activity, error)
	ListAll(ctx context.Context) ([]models.Activity, error)
}

type activityService struct {
	db *mongo.Database
}

// NewActivityService creates a new ActivityService.
func NewActivityService(db *mongo.Database) IActivityService {
	return &activityService{db: db}
}

// Log appends one interaction record. Records are never updated or
// deleted by the application.
func (s *activityService) Log(ctx context.Context, userID, propertyID primitive.ObjectID, action models.ActivityAction) (*models.Activity, error) {
	activity := &models.Activity{
		User:      userID,
		Property:  propertyID,
		Action:    action,
		CreatedAt: time.Now(),
	}

	res, err := s.db.Collection(activityCollection).InsertOne(ctx, activity)
	if err != nil {
		return nil, fmt.Errorf("error inserting activity record: %w", err)
	}
	activity.ID = res.InsertedID.(primitive.ObjectID)
	return activity, nil
}

// ListAll returns the full log, newest first.
func (s *activityService) ListAll(ctx context.Context) ([]models.Activity, error) {
	cursor, err := s.db.Collection(activityCollection).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("error listing activity records: %w", err)
	}
	defer cursor.Close(ctx)

	activities := []models.Activity{}
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, fmt.Errorf("error decoding activity records: %w", err)
	}
	return activities, nil
}
