// internal/app/store/bourbons/bourbonstore.go
package bourbonstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/bourbonclub/internal/app/system/normalize"
	"github.com/dalemusser/bourbonclub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	errNameNeeded  = errors.New("bourbon name is required")
	errNegativeNum = errors.New("price, cost, proof, and age must not be negative")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("bourbons")}
}

// Create inserts b into clubID's catalog.
func (s *Store) Create(ctx context.Context, clubID primitive.ObjectID, b models.Bourbon) (models.Bourbon, error) {
	b.Name = normalize.Name(b.Name)
	if b.Name == "" {
		return models.Bourbon{}, errNameNeeded
	}
	for _, v := range []*float64{b.Price, b.Cost, b.Proof, b.Age} {
		if v != nil && *v < 0 {
			return models.Bourbon{}, errNegativeNum
		}
	}

	now := time.Now().UTC()
	b.ID = primitive.NewObjectID()
	b.ClubID = clubID
	b.NameCI = text.Fold(b.Name)
	b.Distillery = normalize.Name(b.Distillery)
	b.CreatedAt = now
	b.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, b); err != nil {
		return models.Bourbon{}, err
	}
	return b, nil
}

// GetByID loads a bourbon in clubID. A bourbon from another club is reported
// as mongo.ErrNoDocuments.
func (s *Store) GetByID(ctx context.Context, clubID, id primitive.ObjectID) (models.Bourbon, error) {
	var b models.Bourbon
	err := s.c.FindOne(ctx, bson.M{"_id": id, "club_id": clubID}).Decode(&b)
	return b, err
}

// ListByClub returns the club's catalog ordered by name.
func (s *Store) ListByClub(ctx context.Context, clubID primitive.ObjectID) ([]models.Bourbon, error) {
	return s.find(ctx, bson.M{"club_id": clubID})
}

// ListByIDs returns the bourbons among ids that belong to clubID, ordered by
// name. Ids from other clubs are silently absent.
func (s *Store) ListByIDs(ctx context.Context, clubID primitive.ObjectID, ids []primitive.ObjectID) ([]models.Bourbon, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.find(ctx, bson.M{"club_id": clubID, "_id": bson.M{"$in": ids}})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Bourbon, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Bourbon
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
