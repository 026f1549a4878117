package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OfferStatus is the closed set of offer states.
type OfferStatus string

const (
	OfferStatusPending   OfferStatus = "pending"
	OfferStatusAccepted  OfferStatus = "accepted"
	OfferStatusRejected  OfferStatus = "rejected"
	OfferStatusCountered OfferStatus = "countered"
)

// Valid reports whether s is one of the known offer statuses.
func (s OfferStatus) Valid() bool {
	switch s {
	case OfferStatusPending, OfferStatusAccepted, OfferStatusRejected, OfferStatusCountered:
		return true
	}
	return false
}

// Offer represents a purchase offer on a property.
// BuyerName/Email/Phone are point-in-time snapshots captured at submission;
// they are never re-derived from the live user record.
type Offer struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	PropertyID    primitive.ObjectID `bson:"propertyId" json:"propertyId"`
	BuyerID       primitive.ObjectID `bson:"buyerId" json:"buyerId"`
	BuyerName     string             `bson:"buyerName" json:"buyerName"`
	BuyerEmail    string             `bson:"buyerEmail" json:"buyerEmail"`
	BuyerPhone    string             `bson:"buyerPhone" json:"buyerPhone"`
	OfferAmount   int64              `bson:"offerAmount" json:"offerAmount"`
	Note          string             `bson:"note" json:"note"`
	Status        OfferStatus        `bson:"status" json:"status"`
	CounterAmount *int64             `bson:"counterAmount,omitempty" json:"counterAmount,omitempty"`
	SellerNote    string             `bson:"sellerNote,omitempty" json:"sellerNote,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
