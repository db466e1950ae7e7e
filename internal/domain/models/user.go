// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User statuses.
const (
	UserActive   = "active"
	UserDisabled = "disabled"
)

// User is a club member account.
//
// NOTE:
//   - Club membership is not embedded on User.
//     Use the club_memberships collection to discover a user's clubs.
//   - CurrentClubID is the last club the user worked in. It may go stale
//     (club deleted, membership revoked); tenant resolution repairs it.
type User struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FullName      string              `bson:"full_name" json:"full_name"`
	FullNameCI    string              `bson:"full_name_ci" json:"full_name_ci"` // lowercase, diacritics-stripped
	Email         string              `bson:"email" json:"email"`
	Status        string              `bson:"status,omitempty" json:"status,omitempty"`
	CurrentClubID *primitive.ObjectID `bson:"current_club_id,omitempty" json:"current_club_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
