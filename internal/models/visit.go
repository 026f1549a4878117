package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VisitStatus is the closed set of visit states.
type VisitStatus string

const (
	VisitStatusPending   VisitStatus = "pending"
	VisitStatusConfirmed VisitStatus = "confirmed"
	VisitStatusCancelled VisitStatus = "cancelled"
	VisitStatusCompleted VisitStatus = "completed"
)

// Valid reports whether s is one of the known visit statuses.
func (s VisitStatus) Valid() bool {
	switch s {
	case VisitStatusPending, VisitStatusConfirmed, VisitStatusCancelled, VisitStatusCompleted:
		return true
	}
	return false
}

// Visit represents a property viewing request.
// VisitDate and VisitTime are opaque strings chosen by the client; they are
// not validated as calendar-correct. Visitor fields are creation-time
// snapshots.
type Visit struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	PropertyID   primitive.ObjectID `bson:"propertyId" json:"propertyId"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	VisitorName  string             `bson:"visitorName" json:"visitorName"`
	VisitorEmail string             `bson:"visitorEmail" json:"visitorEmail"`
	VisitorPhone string             `bson:"visitorPhone" json:"visitorPhone"`
	VisitDate    string             `bson:"visitDate" json:"visitDate"`
	VisitTime    string             `bson:"visitTime" json:"visitTime"`
	Status       VisitStatus        `bson:"status" json:"status"`
	SellerNote   string             `bson:"sellerNote,omitempty" json:"sellerNote,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
