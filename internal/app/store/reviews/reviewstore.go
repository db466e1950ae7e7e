// internal/app/store/reviews/reviewstore.go
package reviewstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/bourbonclub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrDuplicateReview is returned when the user already has a review in
	// the same scope: standalone for the bourbon, or for the same meeting pour.
	ErrDuplicateReview = errors.New("review already exists for this bourbon")

	// ErrInvalidReview wraps validation failures such as a review with no
	// scores and no overall rating.
	ErrInvalidReview = errors.New("invalid review")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("reviews")}
}

// Create inserts r after deriving its rating. ClubID, BourbonID, and UserID
// must be set by the caller.
func (s *Store) Create(ctx context.Context, r models.Review) (models.Review, error) {
	if err := r.Normalize(); err != nil {
		return models.Review{}, fmt.Errorf("%w: %w", ErrInvalidReview, err)
	}
	now := time.Now().UTC()
	r.ID = primitive.NewObjectID()
	r.CreatedAt = now
	r.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, r); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Review{}, ErrDuplicateReview
		}
		return models.Review{}, err
	}
	return r, nil
}

// GetByID loads a review in clubID. A review from another club is reported
// as mongo.ErrNoDocuments.
func (s *Store) GetByID(ctx context.Context, clubID, id primitive.ObjectID) (models.Review, error) {
	var r models.Review
	err := s.c.FindOne(ctx, bson.M{"_id": id, "club_id": clubID}).Decode(&r)
	return r, err
}

// Edit is the member-editable part of a review.
type Edit struct {
	Scores models.CategoryScores
	Notes  models.ReviewNotes
	Rating float64 // overall rating; used only when Scores is empty
}

// Update applies e to the review and re-derives its rating. The review's
// bourbon, author, and meeting binding never change.
func (s *Store) Update(ctx context.Context, clubID, id primitive.ObjectID, e Edit) (models.Review, error) {
	r, err := s.GetByID(ctx, clubID, id)
	if err != nil {
		return models.Review{}, err
	}
	r.Scores = e.Scores
	r.Notes = e.Notes
	r.Rating = e.Rating
	if err := r.Normalize(); err != nil {
		return models.Review{}, fmt.Errorf("%w: %w", ErrInvalidReview, err)
	}
	r.UpdatedAt = time.Now().UTC()

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "club_id": clubID},
		bson.M{"$set": bson.M{
			"scores":     r.Scores,
			"notes":      r.Notes,
			"rating":     r.Rating,
			"updated_at": r.UpdatedAt,
		}},
	)
	if err != nil {
		return models.Review{}, err
	}
	if res.MatchedCount == 0 {
		return models.Review{}, mongo.ErrNoDocuments
	}
	return r, nil
}

// Delete removes a review. Returns mongo.ErrNoDocuments if nothing matched.
func (s *Store) Delete(ctx context.Context, clubID, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "club_id": clubID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ListByClub returns every review in the club in insertion order. Engine
// ties keep this order.
func (s *Store) ListByClub(ctx context.Context, clubID primitive.ObjectID) ([]models.Review, error) {
	return s.find(ctx, bson.M{"club_id": clubID})
}

// ListByBourbons returns the club's reviews of the given bourbons in
// insertion order.
func (s *Store) ListByBourbons(ctx context.Context, clubID primitive.ObjectID, bourbonIDs []primitive.ObjectID) ([]models.Review, error) {
	if len(bourbonIDs) == 0 {
		return nil, nil
	}
	return s.find(ctx, bson.M{"club_id": clubID, "bourbon_id": bson.M{"$in": bourbonIDs}})
}

// CountByUser returns how many reviews the user has written across all clubs.
func (s *Store) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"user_id": userID})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Review
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
