// internal/app/store/rsvps/rsvpstore.go
package rsvpstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/bourbonclub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrBadStatus = errors.New(`status must be "going", "maybe", or "not_going"`)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("rsvps")}
}

// Set records the user's status for meeting. The last write wins.
func (s *Store) Set(ctx context.Context, userID primitive.ObjectID, meeting models.Meeting, status string) (models.RSVP, error) {
	if !models.ValidRSVPStatus(status) {
		return models.RSVP{}, ErrBadStatus
	}
	now := time.Now().UTC()
	filter := bson.M{"user_id": userID, "meeting_id": meeting.ID}
	update := bson.M{
		"$set": bson.M{
			"club_id":      meeting.ClubID,
			"meeting_date": meeting.Date,
			"status":       status,
			"updated_at":   now,
		},
		"$setOnInsert": bson.M{"_id": primitive.NewObjectID()},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var out models.RSVP
	if err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out); err != nil {
		return models.RSVP{}, err
	}
	return out, nil
}

// ListByUserClub returns the user's RSVPs for meetings in clubID.
func (s *Store) ListByUserClub(ctx context.Context, userID, clubID primitive.ObjectID) ([]models.RSVP, error) {
	opts := options.Find().SetSort(bson.D{{Key: "meeting_date", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID, "club_id": clubID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.RSVP
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountAttended returns how many meetings held on or before asOf the user
// marked going or maybe, across all clubs.
func (s *Store) CountAttended(ctx context.Context, userID primitive.ObjectID, asOf time.Time) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{
		"user_id":      userID,
		"status":       bson.M{"$in": bson.A{models.RSVPGoing, models.RSVPMaybe}},
		"meeting_date": bson.M{"$lte": asOf.UTC()},
	})
}
