// internal/app/store/achievements/achievementstore.go
package achievementstore

import (
	"context"
	"time"

	"github.com/dalemusser/bourbonclub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store holds earned achievement records. Records are never updated or
// removed.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("user_achievements")}
}

// ListEarned returns the user's earned records, oldest first.
func (s *Store) ListEarned(ctx context.Context, userID primitive.ObjectID) ([]models.UserAchievement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "earned_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.UserAchievement
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Award records that the user earned key at the given time. An existing
// record wins and its earned_at is kept.
func (s *Store) Award(ctx context.Context, userID primitive.ObjectID, key string, at time.Time) error {
	_, err := s.c.InsertOne(ctx, models.UserAchievement{
		ID:       primitive.NewObjectID(),
		UserID:   userID,
		Key:      key,
		EarnedAt: at.UTC(),
	})
	if err != nil && !wafflemongo.IsDup(err) {
		return err
	}
	return nil
}
