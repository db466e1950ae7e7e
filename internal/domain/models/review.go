// internal/domain/models/review.go
package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryScores holds the five tasting categories. Each is independently
// optional; nil means the reviewer did not score that category.
type CategoryScores struct {
	Appearance *float64 `bson:"appearance,omitempty" json:"appearance"`
	Nose       *float64 `bson:"nose,omitempty" json:"nose"`
	Taste      *float64 `bson:"taste,omitempty" json:"taste"`
	Mouthfeel  *float64 `bson:"mouthfeel,omitempty" json:"mouthfeel"`
	Finish     *float64 `bson:"finish,omitempty" json:"finish"`
}

// Values returns the scores in fixed category order.
func (c CategoryScores) Values() [5]*float64 {
	return [5]*float64{c.Appearance, c.Nose, c.Taste, c.Mouthfeel, c.Finish}
}

// Mean returns the mean of the non-nil scores and false when none are set.
func (c CategoryScores) Mean() (float64, bool) {
	var sum float64
	n := 0
	for _, v := range c.Values() {
		if v == nil {
			continue
		}
		sum += *v
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// Empty reports whether no category was scored.
func (c CategoryScores) Empty() bool {
	_, ok := c.Mean()
	return !ok
}

// ReviewNotes holds free-text tasting notes. Taste notes are the "palate".
type ReviewNotes struct {
	Appearance string `bson:"appearance,omitempty" json:"appearance,omitempty"`
	Nose       string `bson:"nose,omitempty" json:"nose,omitempty"`
	Palate     string `bson:"palate,omitempty" json:"palate,omitempty"`
	Mouthfeel  string `bson:"mouthfeel,omitempty" json:"mouthfeel,omitempty"`
	Finish     string `bson:"finish,omitempty" json:"finish,omitempty"`
	General    string `bson:"general,omitempty" json:"general,omitempty"`
}

// ReviewKind distinguishes category-scored reviews from legacy ones.
type ReviewKind int

const (
	// ReviewFull has at least one category score; Rating is derived from them.
	ReviewFull ReviewKind = iota
	// ReviewLegacy has no category scores and carries only an overall Rating.
	ReviewLegacy
)

// ErrNoRating is returned by Normalize when a review has neither category
// scores nor an overall rating.
var ErrNoRating = errors.New("review needs at least one category score or an overall rating")

// Review is a scored tasting entry.
//
// A review is either standalone (one per user per bourbon) or bound to a
// specific meeting pour via MeetingBourbonID (one per user per pour).
// Standalone mirrors MeetingBourbonID == nil so the two uniqueness scopes can
// be enforced with partial indexes.
type Review struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ClubID           primitive.ObjectID  `bson:"club_id" json:"club_id"`
	BourbonID        primitive.ObjectID  `bson:"bourbon_id" json:"bourbon_id"`
	UserID           primitive.ObjectID  `bson:"user_id" json:"user_id"`
	MeetingBourbonID *primitive.ObjectID `bson:"meeting_bourbon_id,omitempty" json:"meeting_bourbon_id,omitempty"`
	Standalone       bool                `bson:"standalone" json:"standalone"`

	Scores CategoryScores `bson:"scores" json:"scores"`
	Notes  ReviewNotes    `bson:"notes" json:"notes"`

	// Rating is derived: the mean of the non-nil category scores, or the
	// supplied overall rating for legacy reviews.
	Rating float64 `bson:"rating" json:"rating"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Kind reports which variant the review is.
func (r Review) Kind() ReviewKind {
	if r.Scores.Empty() {
		return ReviewLegacy
	}
	return ReviewFull
}

// Normalize derives Rating and Standalone. Call it on create and on every edit.
// Legacy reviews keep their overall rating, which must be positive.
func (r *Review) Normalize() error {
	r.Standalone = r.MeetingBourbonID == nil
	if mean, ok := r.Scores.Mean(); ok {
		r.Rating = mean
		return nil
	}
	if r.Rating <= 0 {
		return ErrNoRating
	}
	return nil
}

// TastingText concatenates the notes used for flavor matching:
// nose, palate, finish, and general.
func (r Review) TastingText() string {
	parts := []string{r.Notes.Nose, r.Notes.Palate, r.Notes.Finish, r.Notes.General}
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += p
	}
	return out
}
