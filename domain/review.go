package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review represents a rating left by a registered user on a property.
// Deletable by the reviewer or by an admin.
type Review struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	PropertyID    string             `bson:"propertyId" json:"propertyId"`
	ReviewerEmail string             `bson:"reviewerEmail" json:"reviewerEmail"`
	ReviewerName  string             `bson:"reviewerName,omitempty" json:"reviewerName,omitempty"`
	Rating        float64            `bson:"rating" json:"rating"`
	Comment       string             `bson:"comment" json:"comment"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
