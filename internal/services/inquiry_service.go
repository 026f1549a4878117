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
	"github.com/devranvijay/PropertyPro/internal/policy"
)

const inquiriesCollection = "inquiries"

// IInquiryService defines the interface for property inquiry operations.
type IInquiryService interface {
	Create(ctx context.Context, sender *models.User, propertyID primitive.ObjectID, message, phone string) (*models.Inquiry, error)
	ListSent(ctx context.Context, senderID primitive.ObjectID) ([]models.Inquiry, error)
	ListReceived(ctx context.Context, recipientID primitive.ObjectID) ([]models.Inquiry, error)
	ListAll(ctx context.Context) ([]models.Inquiry, error)
	MarkRead(ctx context.Context, id primitive.ObjectID, actor *models.User) (*models.Inquiry, error)
	Reply(ctx context.Context, id primitive.ObjectID, actor *models.User, reply string) (*models.Inquiry, error)
}

type inquiryService struct {
	db         *mongo.Database
	users      IUserService
	properties IPropertyService
}

// NewInquiryService creates a new InquiryService.
func NewInquiryService(db *mongo.Database, users IUserService, properties IPropertyService) IInquiryService {
	return &inquiryService{db: db, users: users, properties: properties}
}

// Create sends an inquiry about a property. The recipient is resolved
// once at submission time (property owner, or an admin if the owner is
// gone) and pinned on the document. Sender contact details are
// snapshotted from the acting user.
func (s *inquiryService) Create(ctx context.Context, sender *models.User, propertyID primitive.ObjectID, message, phone string) (*models.Inquiry, error) {
	recipient, _, err := resolveRecipient(ctx, s.users, s.properties, propertyID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	inquiry := &models.Inquiry{
		PropertyID:  propertyID,
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		SenderName:  sender.Name,
		SenderEmail: sender.Email,
		SenderPhone: phone,
		Message:     message,
		Status:      models.InquiryStatusUnread,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := s.db.Collection(inquiriesCollection).InsertOne(ctx, inquiry)
	if err != nil {
		return nil, fmt.Errorf("error inserting inquiry: %w", err)
	}
	inquiry.ID = res.InsertedID.(primitive.ObjectID)
	return inquiry, nil
}

// ListSent returns inquiries the user sent, newest first.
func (s *inquiryService) ListSent(ctx context.Context, senderID primitive.ObjectID) ([]models.Inquiry, error) {
	return s.list(ctx, bson.M{"senderId": senderID})
}

// ListReceived returns inquiries addressed to the user, newest first.
// Unlike offers and visits, inquiries route by the pinned recipientId.
func (s *inquiryService) ListReceived(ctx context.Context, recipientID primitive.ObjectID) ([]models.Inquiry, error) {
	return s.list(ctx, bson.M{"recipientId": recipientID})
}

// ListAll returns every inquiry, newest first.
func (s *inquiryService) ListAll(ctx context.Context) ([]models.Inquiry, error) {
	return s.list(ctx, bson.M{})
}

func (s *inquiryService) list(ctx context.Context, filter bson.M) ([]models.Inquiry, error) {
	cursor, err := s.db.Collection(inquiriesCollection).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("error listing inquiries: %w", err)
	}
	defer cursor.Close(ctx)

	inquiries := []models.Inquiry{}
	if err := cursor.All(ctx, &inquiries); err != nil {
		return nil, fmt.Errorf("error decoding inquiries: %w", err)
	}
	return inquiries, nil
}

// MarkRead flips an unread inquiry to read. A replied inquiry stays
// replied. Only the pinned recipient or an admin may act.
func (s *inquiryService) MarkRead(ctx context.Context, id primitive.ObjectID, actor *models.User) (*models.Inquiry, error) {
	inquiry, err := s.load(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if inquiry.Status == models.InquiryStatusReplied {
		return inquiry, nil
	}

	return s.update(ctx, id, bson.M{"status": models.InquiryStatusRead, "updatedAt": time.Now()})
}

// Reply stores the recipient's reply and marks the inquiry replied.
// Only the pinned recipient or an admin may act.
func (s *inquiryService) Reply(ctx context.Context, id primitive.ObjectID, actor *models.User, reply string) (*models.Inquiry, error) {
	if _, err := s.load(ctx, id, actor); err != nil {
		return nil, err
	}

	now := time.Now()
	return s.update(ctx, id, bson.M{
		"status":    models.InquiryStatusReplied,
		"reply":     reply,
		"repliedAt": now,
		"updatedAt": now,
	})
}

// load fetches the inquiry and checks the actor against its recipient.
func (s *inquiryService) load(ctx context.Context, id primitive.ObjectID, actor *models.User) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	err := s.db.Collection(inquiriesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&inquiry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("error finding inquiry %s: %w", id.Hex(), err)
	}
	if !policy.CanMutateSubmission(actor, inquiry.RecipientID) {
		return nil, ErrForbidden
	}
	return &inquiry, nil
}

func (s *inquiryService) update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	err := s.db.Collection(inquiriesCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&inquiry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("error updating inquiry %s: %w", id.Hex(), err)
	}
	return &inquiry, nil
}
