// internal/app/store/memberships/membershipstore.go
package membershipstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/bourbonclub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("club_memberships")}
}

var errBadRole = errors.New(`role must be "admin" or "member"`)

var ErrDuplicateMembership = errors.New("user is already a member of this club")

// Add creates the membership for (userID, clubID).
func (s *Store) Add(ctx context.Context, userID, clubID primitive.ObjectID, role string) (models.Membership, error) {
	if role != models.RoleAdmin && role != models.RoleMember {
		return models.Membership{}, errBadRole
	}
	m := models.Membership{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		ClubID:    clubID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Membership{}, ErrDuplicateMembership
		}
		return models.Membership{}, err
	}
	return m, nil
}

// Remove deletes the membership for (userID, clubID).
func (s *Store) Remove(ctx context.Context, userID, clubID primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"user_id": userID, "club_id": clubID})
	return err
}

// Get returns the membership and whether it exists.
func (s *Store) Get(ctx context.Context, userID, clubID primitive.ObjectID) (models.Membership, bool, error) {
	var m models.Membership
	err := s.c.FindOne(ctx, bson.M{"user_id": userID, "club_id": clubID}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return models.Membership{}, false, nil
	}
	if err != nil {
		return models.Membership{}, false, err
	}
	return m, true, nil
}

// FirstForUser returns the user's oldest membership. Used to heal a missing
// current club.
func (s *Store) FirstForUser(ctx context.Context, userID primitive.ObjectID) (models.Membership, bool, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	var m models.Membership
	err := s.c.FindOne(ctx, bson.M{"user_id": userID}, opts).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return models.Membership{}, false, nil
	}
	if err != nil {
		return models.Membership{}, false, err
	}
	return m, true, nil
}

// ListByUser returns every membership of the user, oldest first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Membership, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Membership
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByClub returns the number of members in a club, optionally filtered
// by role. If role is empty, counts all memberships.
func (s *Store) CountByClub(ctx context.Context, clubID primitive.ObjectID, role string) (int64, error) {
	filter := bson.M{"club_id": clubID}
	if role != "" {
		filter["role"] = role
	}
	return s.c.CountDocuments(ctx, filter)
}
