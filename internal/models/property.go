package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PropertyType is the closed set of listing categories.
type PropertyType string

const (
	PropertyTypeBuy        PropertyType = "buy"
	PropertyTypeRent       PropertyType = "rent"
	PropertyTypeCommercial PropertyType = "commercial"
)

// Valid reports whether t is one of the known property types.
func (t PropertyType) Valid() bool {
	switch t {
	case PropertyTypeBuy, PropertyTypeRent, PropertyTypeCommercial:
		return true
	}
	return false
}

// Property represents a listed property.
// Price is stored as-is (no currency minor units). Images are opaque URL
// strings, either local /uploads paths or absolute object-store URLs.
// Owner is immutable after creation. Views only ever increases, via an
// atomic $inc at the store level.
type Property struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Price       int64              `bson:"price" json:"price"`
	Location    string             `bson:"location" json:"location"`
	Type        PropertyType       `bson:"type" json:"type"`
	Images      []string           `bson:"images" json:"images"`
	Amenities   []string           `bson:"amenities" json:"amenities"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner"`
	Views       int64              `bson:"views" json:"views"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
