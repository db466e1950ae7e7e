// internal/domain/models/club.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Club statuses.
const (
	ClubActive   = "active"
	ClubArchived = "archived"
)

// Club is the tenant root. Bourbons, meetings, polls, and suggestions all
// carry a club_id and belong to exactly one club.
type Club struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"name_ci"` // Case-insensitive for search

	// Status: "active" or "archived"
	Status string `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
