package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactMessageStatusNew is assigned to every incoming message.
const ContactMessageStatusNew = "new"

// ContactMessage represents a message sent through the public contact form.
// Anyone may submit one; only an admin may list them.
type ContactMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Message   string             `bson:"message" json:"message"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
