package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityAction names a trackable buyer interaction.
type ActivityAction string

const (
	ActivityVisit   ActivityAction = "visit"
	ActivityInquiry ActivityAction = "inquiry"
	ActivitySave    ActivityAction = "save"
)

// Valid reports whether a is one of the known activity actions.
func (a ActivityAction) Valid() bool {
	switch a {
	case ActivityVisit, ActivityInquiry, ActivitySave:
		return true
	}
	return false
}

// Activity is an append-only record of a user's interaction with a property.
type Activity struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Property  primitive.ObjectID `bson:"property" json:"property"`
	Action    ActivityAction     `bson:"action" json:"action"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
