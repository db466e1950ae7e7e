// internal/domain/models/engagement.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Poll is a club question with fixed options.
type Poll struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClubID    primitive.ObjectID `bson:"club_id" json:"club_id"`
	Question  string             `bson:"question" json:"question"`
	Options   []string           `bson:"options" json:"options"`
	CreatedBy primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// PollVote is one user's answer to a poll. One per (poll_id, user_id).
type PollVote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PollID    primitive.ObjectID `bson:"poll_id" json:"poll_id"`
	ClubID    primitive.ObjectID `bson:"club_id" json:"club_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Option    string             `bson:"option" json:"option"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// BourbonSuggestion is a member's proposal for a bottle the club should try.
type BourbonSuggestion struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClubID    primitive.ObjectID `bson:"club_id" json:"club_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name      string             `bson:"name" json:"name"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// SuggestionVote is an upvote on a suggestion. One per (suggestion_id, user_id).
// SuggestedBy is copied from the suggestion so votes received can be counted
// per author without a join.
type SuggestionVote struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SuggestionID primitive.ObjectID `bson:"suggestion_id" json:"suggestion_id"`
	ClubID       primitive.ObjectID `bson:"club_id" json:"club_id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"user_id"`
	SuggestedBy  primitive.ObjectID `bson:"suggested_by" json:"suggested_by"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}
