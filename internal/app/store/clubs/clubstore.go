// internal/app/store/clubs/clubstore.go
package clubstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/bourbonclub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrEmptyName = errors.New("club name is required")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("clubs")}
}

// Create inserts an active club.
func (s *Store) Create(ctx context.Context, name string) (models.Club, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Club{}, ErrEmptyName
	}
	now := time.Now().UTC()
	c := models.Club{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Status:    models.ClubActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Club{}, err
	}
	return c, nil
}

// GetByID returns mongo.ErrNoDocuments when the club does not exist.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Club, error) {
	var c models.Club
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	return c, err
}

// ListByIDs returns the clubs with the given ids ordered by name.
func (s *Store) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Club, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Club
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
