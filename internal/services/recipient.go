package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devranvijay/PropertyPro/internal/models"
)

// resolveRecipient determines who should receive a submission about the
// given property: the property owner if that account still exists,
// otherwise the longest-standing admin. Returns ErrNoRecipient when
// neither can be found, and mongo.ErrNoDocuments when the property
// itself is gone.
func resolveRecipient(ctx context.Context, users IUserService, properties IPropertyService, propertyID primitive.ObjectID) (*models.User, *models.Property, error) {
	property, err := properties.FindByID(ctx, propertyID)
	if err != nil {
		return nil, nil, err
	}

	owner, err := users.FindByID(ctx, property.Owner)
	if err == nil {
		return owner, property, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil, err
	}

	// Owner account deleted: fall back to an admin.
	admin, err := users.EarliestAdmin(ctx)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, ErrNoRecipient
		}
		return nil, nil, err
	}
	return admin, property, nil
}
