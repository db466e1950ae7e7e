// internal/domain/models/rsvp.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RSVP statuses.
const (
	RSVPGoing    = "going"
	RSVPMaybe    = "maybe"
	RSVPNotGoing = "not_going"
)

// RSVP is a user's attendance intent for a meeting.
// Exactly one document per (user_id, meeting_id); the last write wins.
// ClubID and MeetingDate are copied from the meeting so attendance can be
// counted without a join.
type RSVP struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	MeetingID   primitive.ObjectID `bson:"meeting_id" json:"meeting_id"`
	ClubID      primitive.ObjectID `bson:"club_id" json:"club_id"`
	MeetingDate time.Time          `bson:"meeting_date" json:"meeting_date"`
	Status      string             `bson:"status" json:"status"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// ValidRSVPStatus reports whether s is one of the known statuses.
func ValidRSVPStatus(s string) bool {
	switch s {
	case RSVPGoing, RSVPMaybe, RSVPNotGoing:
		return true
	}
	return false
}

// Attended reports whether the status counts toward attendance.
// Both "going" and "maybe" count.
func (r RSVP) Attended() bool {
	return r.Status == RSVPGoing || r.Status == RSVPMaybe
}
