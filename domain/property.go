package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Property statuses. A property starts available and is flipped to booked
// when a booking against it is created.
const (
	PropertyStatusAvailable = "available"
	PropertyStatusBooked    = "booked"
)

// Property represents a rental listing owned by a registered user.
type Property struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserEmail    string             `bson:"userEmail" json:"userEmail"`
	PropertyName string             `bson:"propertyName" json:"propertyName"`
	Description  string             `bson:"description" json:"description"`
	Category     string             `bson:"category" json:"category"`
	Price        float64            `bson:"price" json:"price"`
	Location     string             `bson:"location" json:"location"`
	Image        string             `bson:"image" json:"image"`
	Status       string             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
