package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InquiryStatus is the closed set of inquiry states.
type InquiryStatus string

const (
	InquiryStatusUnread  InquiryStatus = "unread"
	InquiryStatusRead    InquiryStatus = "read"
	InquiryStatusReplied InquiryStatus = "replied"
)

// Valid reports whether s is one of the known inquiry statuses.
func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryStatusUnread, InquiryStatusRead, InquiryStatusReplied:
		return true
	}
	return false
}

// Inquiry is a direct message about a property, routed to the property
// owner (or an admin when the property is orphaned). Sender fields are
// creation-time snapshots.
type Inquiry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	PropertyID  primitive.ObjectID `bson:"propertyId" json:"propertyId"`
	SenderID    primitive.ObjectID `bson:"senderId" json:"senderId"`
	RecipientID primitive.ObjectID `bson:"recipientId" json:"recipientId"`
	SenderName  string             `bson:"senderName" json:"senderName"`
	SenderEmail string             `bson:"senderEmail" json:"senderEmail"`
	SenderPhone string             `bson:"senderPhone" json:"senderPhone"`
	Message     string             `bson:"message" json:"message"`
	Status      InquiryStatus      `bson:"status" json:"status"`
	Reply       string             `bson:"reply,omitempty" json:"reply,omitempty"`
	RepliedAt   *time.Time         `bson:"repliedAt,omitempty" json:"repliedAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
