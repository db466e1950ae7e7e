// internal/domain/models/meeting.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Meeting is a dated club tasting event.
type Meeting struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClubID   primitive.ObjectID `bson:"club_id" json:"club_id"`
	Title    string             `bson:"title" json:"title"`
	Location string             `bson:"location,omitempty" json:"location,omitempty"`
	Date     time.Time          `bson:"date" json:"date"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// MeetingBourbon links a bottle to the meeting it was poured at.
// Meeting-bound reviews reference this document rather than the bourbon.
type MeetingBourbon struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClubID    primitive.ObjectID `bson:"club_id" json:"club_id"`
	MeetingID primitive.ObjectID `bson:"meeting_id" json:"meeting_id"`
	BourbonID primitive.ObjectID `bson:"bourbon_id" json:"bourbon_id"`
	Position  int                `bson:"position" json:"position"` // pour order
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
