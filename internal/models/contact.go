package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact is a general contact-form message. PropertyID is set when the
// message was sent from a property page; Recipient is the resolved
// notification address at submission time.
type Contact struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"_id,omitempty"`
	Name       string              `bson:"name" json:"name"`
	Email      string              `bson:"email" json:"email"`
	Phone      string              `bson:"phone" json:"phone"`
	Message    string              `bson:"message" json:"message"`
	PropertyID *primitive.ObjectID `bson:"propertyId,omitempty" json:"propertyId,omitempty"`
	Recipient  primitive.ObjectID  `bson:"recipient,omitempty" json:"recipient,omitempty"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
}
