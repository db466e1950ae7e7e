// internal/domain/models/membership.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership roles.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Membership is the authoritative join between users and clubs.
// Exactly one document per (user_id, club_id); role is a scalar ("admin"|"member").
type Membership struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	ClubID    primitive.ObjectID `bson:"club_id" json:"club_id"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// IsAdmin reports whether the membership grants club administration.
func (m Membership) IsAdmin() bool {
	return m.Role == RoleAdmin
}
