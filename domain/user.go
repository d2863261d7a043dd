package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role defines the user roles known to the system.
type Role string

const (
	RoleUser  Role = "user"  // regular registered user
	RoleAdmin Role = "admin" // elevated user, may mutate roles and statuses
)

// User represents a registered account. Email is the natural key: it is
// unique within the collection and is what the identity provider's tokens
// carry.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name" json:"name"`
	Role      Role               `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// IsAdmin reports whether the stored role grants elevated operations.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
