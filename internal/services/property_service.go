package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devranvijay/PropertyPro/internal/models"
)

const propertiesCollection = "properties"

// PropertyFilter carries the optional listing filters. Zero values mean
// "no constraint"; all set filters are AND-combined.
type PropertyFilter struct {
	Search   string                // case-insensitive match on title, location or description
	MinPrice *int64                // inclusive
	MaxPrice *int64                // inclusive
	Types    []models.PropertyType // any of
	Location string                // case-insensitive substring
}

// IPropertyService defines the interface for listing operations.
type IPropertyService interface {
	Create(ctx context.Context, p *models.Property) (*models.Property, error)
	List(ctx context.Context, filter PropertyFilter) ([]models.Property, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error)
	IncrementViews(ctx context.Context, id primitive.ObjectID) (int64, error)
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Property, error)
	OwnedPropertyIDs(ctx context.Context, ownerID primitive.ObjectID) ([]primitive.ObjectID, error)
}

type propertyService struct {
	db *mongo.Database
}

// NewPropertyService creates a new PropertyService.
func NewPropertyService(db *mongo.Database) IPropertyService {
	return &propertyService{db: db}
}

// Create inserts a new listing. Owner, title and price are expected to be
// validated by the caller.
func (s *propertyService) Create(ctx context.Context, p *models.Property) (*models.Property, error) {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Views = 0
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Amenities == nil {
		p.Amenities = []string{}
	}

	res, err := s.db.Collection(propertiesCollection).InsertOne(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("error inserting property: %w", err)
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return p, nil
}

// buildFilter translates a PropertyFilter into a bson query. User input
// is regex-quoted so filter strings are always treated literally.
func buildFilter(f PropertyFilter) bson.M {
	query := bson.M{}

	if f.Search != "" {
		pattern := regexp.QuoteMeta(f.Search)
		query["$or"] = bson.A{
			bson.M{"title": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"location": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}

	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		query["price"] = price
	}

	if len(f.Types) > 0 {
		query["type"] = bson.M{"$in": f.Types}
	}

	if f.Location != "" {
		query["location"] = bson.M{"$regex": regexp.QuoteMeta(f.Location), "$options": "i"}
	}

	return query
}

// List returns listings matching the filter, newest first.
func (s *propertyService) List(ctx context.Context, filter PropertyFilter) ([]models.Property, error) {
	cursor, err := s.db.Collection(propertiesCollection).Find(ctx, buildFilter(filter),
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("error listing properties: %w", err)
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("error decoding properties: %w", err)
	}
	return properties, nil
}

// FindByID returns a single listing.
// Returns nil and mongo.ErrNoDocuments if not found.
func (s *propertyService) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	var p models.Property
	err := s.db.Collection(propertiesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("error finding property %s: %w", id.Hex(), err)
	}
	return &p, nil
}

// IncrementViews bumps the view counter atomically and returns the new
// count. Concurrent increments are never lost; the counter only grows.
func (s *propertyService) IncrementViews(ctx context.Context, id primitive.ObjectID) (int64, error) {
	var p models.Property
	err := s.db.Collection(propertiesCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"views": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, mongo.ErrNoDocuments
		}
		return 0, fmt.Errorf("error incrementing views for %s: %w", id.Hex(), err)
	}
	return p.Views, nil
}

// FindByOwner returns all listings owned by ownerID, newest first.
func (s *propertyService) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Property, error) {
	cursor, err := s.db.Collection(propertiesCollection).Find(ctx,
		bson.M{"owner": ownerID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("error listing properties for owner %s: %w", ownerID.Hex(), err)
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("error decoding owner properties: %w", err)
	}
	return properties, nil
}

// OwnedPropertyIDs returns just the IDs of listings owned by ownerID.
// Used to resolve "submissions received" queries for sellers.
func (s *propertyService) OwnedPropertyIDs(ctx context.Context, ownerID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cursor, err := s.db.Collection(propertiesCollection).Find(ctx,
		bson.M{"owner": ownerID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("error listing property ids for owner %s: %w", ownerID.Hex(), err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding property ids: %w", err)
	}

	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}
