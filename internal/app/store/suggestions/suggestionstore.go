// internal/app/store/suggestions/suggestionstore.go
package suggestionstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/bourbonclub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrDuplicateVote = errors.New("you have already voted for this suggestion")
	ErrOwnSuggestion = errors.New("you cannot vote for your own suggestion")

	ErrNameNeeded = errors.New("suggested bourbon name is required")
)

// Store covers bourbon suggestions and their upvotes.
type Store struct {
	c     *mongo.Collection
	votes *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("bourbon_suggestions"),
		votes: db.Collection("suggestion_votes"),
	}
}

// Create records userID's suggestion in clubID.
func (s *Store) Create(ctx context.Context, clubID, userID primitive.ObjectID, name, notes string) (models.BourbonSuggestion, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.BourbonSuggestion{}, ErrNameNeeded
	}
	sg := models.BourbonSuggestion{
		ID:        primitive.NewObjectID(),
		ClubID:    clubID,
		UserID:    userID,
		Name:      name,
		Notes:     strings.TrimSpace(notes),
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, sg); err != nil {
		return models.BourbonSuggestion{}, err
	}
	return sg, nil
}

// GetByID loads a suggestion in clubID.
func (s *Store) GetByID(ctx context.Context, clubID, id primitive.ObjectID) (models.BourbonSuggestion, error) {
	var sg models.BourbonSuggestion
	err := s.c.FindOne(ctx, bson.M{"_id": id, "club_id": clubID}).Decode(&sg)
	return sg, err
}

// ListByClub returns the club's suggestions, newest first.
func (s *Store) ListByClub(ctx context.Context, clubID primitive.ObjectID) ([]models.BourbonSuggestion, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"club_id": clubID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.BourbonSuggestion
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Vote upvotes sg on behalf of userID. Authors cannot vote for their own
// suggestions, and each user votes once.
func (s *Store) Vote(ctx context.Context, sg models.BourbonSuggestion, userID primitive.ObjectID) (models.SuggestionVote, error) {
	if sg.UserID == userID {
		return models.SuggestionVote{}, ErrOwnSuggestion
	}
	v := models.SuggestionVote{
		ID:           primitive.NewObjectID(),
		SuggestionID: sg.ID,
		ClubID:       sg.ClubID,
		UserID:       userID,
		SuggestedBy:  sg.UserID,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.votes.InsertOne(ctx, v); err != nil {
		if wafflemongo.IsDup(err) {
			return models.SuggestionVote{}, ErrDuplicateVote
		}
		return models.SuggestionVote{}, err
	}
	return v, nil
}

// VoteCounts returns upvotes per suggestion in clubID.
func (s *Store) VoteCounts(ctx context.Context, clubID primitive.ObjectID) (map[primitive.ObjectID]int, error) {
	cur, err := s.votes.Aggregate(ctx, []bson.M{
		{"$match": bson.M{"club_id": clubID}},
		{"$group": bson.M{"_id": "$suggestion_id", "n": bson.M{"$sum": 1}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[primitive.ObjectID]int)
	for cur.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
			N  int                `bson:"n"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out[row.ID] = row.N
	}
	return out, cur.Err()
}

// CountByUser returns how many suggestions the user has made, across all clubs.
func (s *Store) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"user_id": userID})
}

// CountVotesReceived returns how many upvotes the user's suggestions have
// received, across all clubs.
func (s *Store) CountVotesReceived(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.votes.CountDocuments(ctx, bson.M{"suggested_by": userID})
}
