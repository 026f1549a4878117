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

	"github.com/devranvijay/PropertyPro/internal/models"
)

const visitsCollection = "visits"

// VisitRequest carries the client-supplied fields for scheduling a visit.
type VisitRequest struct {
	PropertyID primitive.ObjectID
	Phone      string
	VisitDate  string
	VisitTime  string
}

// IVisitService defines the interface for visit scheduling operations.
type IVisitService interface {
	Create(ctx context.Context, visitor *models.User, req VisitRequest) (*models.Visit, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Visit, error)
	ListIncoming(ctx context.Context, ownerID primitive.ObjectID) ([]models.Visit, error)
	ListAll(ctx context.Context) ([]models.Visit, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, actor *models.User, status models.VisitStatus, sellerNote string) (*models.Visit, error)
}

type visitService struct {
	db         *mongo.Database
	users      IUserService
	properties IPropertyService
}

// NewVisitService creates a new VisitService.
func NewVisitService(db *mongo.Database, users IUserService, properties IPropertyService) IVisitService {
	return &visitService{db: db, users: users, properties: properties}
}

// Create schedules a viewing. Visitor contact details are snapshotted
// from the acting user; date and time are stored as given. The property
// and a recipient must exist at submission time.
func (s *visitService) Create(ctx context.Context, visitor *models.User, req VisitRequest) (*models.Visit, error) {
	if _, _, err := resolveRecipient(ctx, s.users, s.properties, req.PropertyID); err != nil {
		return nil, err
	}

	now := time.Now()
	visit := &models.Visit{
		PropertyID:   req.PropertyID,
		UserID:       visitor.ID,
		VisitorName:  visitor.Name,
		VisitorEmail: visitor.Email,
		VisitorPhone: req.Phone,
		VisitDate:    req.VisitDate,
		VisitTime:    req.VisitTime,
		Status:       models.VisitStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	res, err := s.db.Collection(visitsCollection).InsertOne(ctx, visit)
	if err != nil {
		return nil, fmt.Errorf("error inserting visit: %w", err)
	}
	visit.ID = res.InsertedID.(primitive.ObjectID)
	return visit, nil
}

// ListByUser returns the user's own visit requests ordered by visit date,
// soonest first.
func (s *visitService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Visit, error) {
	return s.list(ctx, bson.M{"userId": userID}, bson.D{{Key: "visitDate", Value: 1}})
}

// ListIncoming returns visit requests on any property currently owned by
// ownerID.
func (s *visitService) ListIncoming(ctx context.Context, ownerID primitive.ObjectID) ([]models.Visit, error) {
	propertyIDs, err := s.properties.OwnedPropertyIDs(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(propertyIDs) == 0 {
		return []models.Visit{}, nil
	}
	return s.list(ctx, bson.M{"propertyId": bson.M{"$in": propertyIDs}}, bson.D{{Key: "createdAt", Value: -1}})
}

// ListAll returns every visit request, newest first.
func (s *visitService) ListAll(ctx context.Context) ([]models.Visit, error) {
	return s.list(ctx, bson.M{}, bson.D{{Key: "createdAt", Value: -1}})
}

func (s *visitService) list(ctx context.Context, filter bson.M, sort bson.D) ([]models.Visit, error) {
	cursor, err := s.db.Collection(visitsCollection).Find(ctx, filter,
		options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("error listing visits: %w", err)
	}
	defer cursor.Close(ctx)

	visits := []models.Visit{}
	if err := cursor.All(ctx, &visits); err != nil {
		return nil, fmt.Errorf("error decoding visits: %w", err)
	}
	return visits, nil
}

// UpdateStatus transitions a visit request. Only the current owner of the
// visit's property or an admin may act.
func (s *visitService) UpdateStatus(ctx context.Context, id primitive.ObjectID, actor *models.User, status models.VisitStatus, sellerNote string) (*models.Visit, error) {
	var visit models.Visit
	collection := s.db.Collection(visitsCollection)

	if err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&visit); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("error finding visit %s: %w", id.Hex(), err)
	}

	if err := s.authorize(ctx, actor, visit.PropertyID); err != nil {
		return nil, err
	}

	set := bson.M{"status": status, "updatedAt": time.Now()}
	if sellerNote != "" {
		set["sellerNote"] = sellerNote
	}

	err := collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&visit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("error updating visit %s: %w", id.Hex(), err)
	}
	return &visit, nil
}

func (s *visitService) authorize(ctx context.Context, actor *models.User, propertyID primitive.ObjectID) error {
	if actor != nil && actor.Role == models.RoleAdmin {
		return nil
	}
	property, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrForbidden
		}
		return err
	}
	if actor == nil || property.Owner != actor.ID {
		return ErrForbidden
	}
	return nil
}
