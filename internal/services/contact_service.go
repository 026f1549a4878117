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

const contactsCollection = "contacts"

// ContactRequest carries the contact-form fields.
type ContactRequest struct {
	Name       string
	Email      string
	Phone      string
	Message    string
	PropertyID *primitive.ObjectID
}

// IContactService defines the interface for contact-form operations.
// Submit also reports the email address the notification should go to,
// which may be the configured fallback when no account resolves.
type IContactService interface {
	Submit(ctx context.Context, req ContactRequest) (*models.Contact, string, error)
	ListForRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]models.Contact, error)
	ListAll(ctx context.Context) ([]models.Contact, error)
}

type contactService struct {
	db         *mongo.Database
	users      IUserService
	properties IPropertyService
	fallbackTo string
}

// NewContactService creates a new ContactService. fallbackTo is the
// address used when no owner or admin account can be resolved.
func NewContactService(db *mongo.Database, users IUserService, properties IPropertyService, fallbackTo string) IContactService {
	return &contactService{db: db, users: users, properties: properties, fallbackTo: fallbackTo}
}

// Submit persists the message with its recipient resolved at submission
// time. The message is stored even when every resolution step falls
// through to the configured fallback address; losing the record is
// worse than a misrouted notification.
func (s *contactService) Submit(ctx context.Context, req ContactRequest) (*models.Contact, string, error) {
	recipient := s.resolveRecipientUser(ctx, req.PropertyID)

	contact := &models.Contact{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Message:    req.Message,
		PropertyID: req.PropertyID,
		CreatedAt:  time.Now(),
	}
	notifyTo := s.fallbackTo
	if recipient != nil {
		contact.Recipient = recipient.ID
		notifyTo = recipient.Email
	}

	res, err := s.db.Collection(contactsCollection).InsertOne(ctx, contact)
	if err != nil {
		return nil, "", fmt.Errorf("error inserting contact message: %w", err)
	}
	contact.ID = res.InsertedID.(primitive.ObjectID)
	return contact, notifyTo, nil
}

// resolveRecipientUser picks the account the message is addressed to:
// the property owner when the message references a property, else the
// longest-standing admin. Resolution failures degrade to nil, never
// error.
func (s *contactService) resolveRecipientUser(ctx context.Context, propertyID *primitive.ObjectID) *models.User {
	if propertyID != nil {
		if property, err := s.properties.FindByID(ctx, *propertyID); err == nil {
			if owner, err := s.users.FindByID(ctx, property.Owner); err == nil {
				return owner
			}
		}
	}
	if admin, err := s.users.EarliestAdmin(ctx); err == nil {
		return admin
	}
	return nil
}

// ListForRecipient returns messages addressed to the given account,
// newest first.
func (s *contactService) ListForRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]models.Contact, error) {
	return s.list(ctx, bson.M{"recipient": recipientID})
}

// ListAll returns every contact message, newest first.
func (s *contactService) ListAll(ctx context.Context) ([]models.Contact, error) {
	return s.list(ctx, bson.M{})
}

func (s *contactService) list(ctx context.Context, filter bson.M) ([]models.Contact, error) {
	cursor, err := s.db.Collection(contactsCollection).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []models.Contact{}, nil
		}
		return nil, fmt.Errorf("error listing contact messages: %w", err)
	}
	defer cursor.Close(ctx)

	contacts := []models.Contact{}
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, fmt.Errorf("error decoding contact messages: %w", err)
	}
	return contacts, nil
}
