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

const offersCollection = "offers"

// IOfferService defines the interface for purchase-offer operations.
type IOfferService interface {
	Create(ctx context.Context, buyer *models.User, propertyID primitive.ObjectID, amount int64, note, phone string) (*models.Offer, error)
	ListByBuyer(ctx context.Context, buyerID primitive.ObjectID) ([]models.Offer, error)
	ListReceived(ctx context.Context, ownerID primitive.ObjectID) ([]models.Offer, error)
	ListAll(ctx context.Context) ([]models.Offer, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, actor *models.User, status models.OfferStatus, counterAmount *int64, sellerNote string) (*models.Offer, error)
}

type offerService struct {
	db         *mongo.Database
	users      IUserService
	properties IPropertyService
}

// NewOfferService creates a new OfferService.
func NewOfferService(db *mongo.Database, users IUserService, properties IPropertyService) IOfferService {
	return &offerService{db: db, users: users, properties: properties}
}

// Create records a new offer on a property. Buyer contact details are
// snapshotted onto the document so the record stays readable after the
// buyer account changes or disappears. The property and a recipient must
// exist at submission time.
func (s *offerService) Create(ctx context.Context, buyer *models.User, propertyID primitive.ObjectID, amount int64, note, phone string) (*models.Offer, error) {
	if _, _, err := resolveRecipient(ctx, s.users, s.properties, propertyID); err != nil {
		return nil, err
	}

	now := time.Now()
	offer := &models.Offer{
		PropertyID:  propertyID,
		BuyerID:     buyer.ID,
		BuyerName:   buyer.Name,
		BuyerEmail:  buyer.Email,
		BuyerPhone:  phone,
		OfferAmount: amount,
		Note:        note,
		Status:      models.OfferStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := s.db.Collection(offersCollection).InsertOne(ctx, offer)
	if err != nil {
		return nil, fmt.Errorf("error inserting offer: %w", err)
	}
	offer.ID = res.InsertedID.(primitive.ObjectID)
	return offer, nil
}

// ListByBuyer returns the buyer's own offers, newest first.
func (s *offerService) ListByBuyer(ctx context.Context, buyerID primitive.ObjectID) ([]models.Offer, error) {
	return s.list(ctx, bson.M{"buyerId": buyerID})
}

// ListReceived returns offers on any property currently owned by ownerID.
// Ownership is resolved at read time, so offers follow the property if it
// changes hands.
func (s *offerService) ListReceived(ctx context.Context, ownerID primitive.ObjectID) ([]models.Offer, error) {
	propertyIDs, err := s.properties.OwnedPropertyIDs(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(propertyIDs) == 0 {
		return []models.Offer{}, nil
	}
	return s.list(ctx, bson.M{"propertyId": bson.M{"$in": propertyIDs}})
}

// ListAll returns every offer, newest first.
func (s *offerService) ListAll(ctx context.Context) ([]models.Offer, error) {
	return s.list(ctx, bson.M{})
}

func (s *offerService) list(ctx context.Context, filter bson.M) ([]models.Offer, error) {
	cursor, err := s.db.Collection(offersCollection).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("error listing offers: %w", err)
	}
	defer cursor.Close(ctx)

	offers := []models.Offer{}
	if err := cursor.All(ctx, &offers); err != nil {
		return nil, fmt.Errorf("error decoding offers: %w", err)
	}
	return offers, nil
}

// UpdateStatus transitions an offer. Only the current owner of the
// offer's property or an admin may act; anyone else gets ErrForbidden.
// A counter amount and seller note are persisted alongside the status
// when provided.
func (s *offerService) UpdateStatus(ctx context.Context, id primitive.ObjectID, actor *models.User, status models.OfferStatus, counterAmount *int64, sellerNote string) (*models.Offer, error) {
	var offer models.Offer
	collection := s.db.Collection(offersCollection)

	if err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&offer); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("error finding offer %s: %w", id.Hex(), err)
	}

	if err := s.authorize(ctx, actor, offer.PropertyID); err != nil {
		return nil, err
	}

	set := bson.M{"status": status, "updatedAt": time.Now()}
	if counterAmount != nil {
		set["counterAmount"] = *counterAmount
	}
	if sellerNote != "" {
		set["sellerNote"] = sellerNote
	}

	err := collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&offer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("error updating offer %s: %w", id.Hex(), err)
	}
	return &offer, nil
}

// authorize checks that actor may act on a submission tied to propertyID.
// Admins always may; otherwise the actor must be the property's current
// owner. A missing property leaves only admins authorized.
func (s *offerService) authorize(ctx context.Context, actor *models.User, propertyID primitive.ObjectID) error {
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
