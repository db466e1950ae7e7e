// internal/app/store/polls/pollstore.go
package pollstore

import (
	"context"
	"errors"
	"slices"
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
	ErrDuplicateVote = errors.New("you have already voted in this poll")
	ErrUnknownOption = errors.New("option is not on this poll")

	ErrQuestionNeeded = errors.New("poll question is required")
	ErrTooFewOptions  = errors.New("poll needs at least two distinct options")
)

// Store covers polls and their votes.
type Store struct {
	c     *mongo.Collection
	votes *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("polls"),
		votes: db.Collection("poll_votes"),
	}
}

// Create opens a poll in clubID. Options are trimmed and de-duplicated.
func (s *Store) Create(ctx context.Context, clubID, createdBy primitive.ObjectID, question string, opts []string) (models.Poll, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return models.Poll{}, ErrQuestionNeeded
	}
	var clean []string
	for _, o := range opts {
		o = strings.TrimSpace(o)
		if o != "" && !slices.Contains(clean, o) {
			clean = append(clean, o)
		}
	}
	if len(clean) < 2 {
		return models.Poll{}, ErrTooFewOptions
	}

	p := models.Poll{
		ID:        primitive.NewObjectID(),
		ClubID:    clubID,
		Question:  question,
		Options:   clean,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Poll{}, err
	}
	return p, nil
}

// GetByID loads a poll in clubID.
func (s *Store) GetByID(ctx context.Context, clubID, id primitive.ObjectID) (models.Poll, error) {
	var p models.Poll
	err := s.c.FindOne(ctx, bson.M{"_id": id, "club_id": clubID}).Decode(&p)
	return p, err
}

// ListByClub returns the club's polls, newest first.
func (s *Store) ListByClub(ctx context.Context, clubID primitive.ObjectID) ([]models.Poll, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"club_id": clubID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Poll
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Vote records userID's answer. A user votes once per poll.
func (s *Store) Vote(ctx context.Context, poll models.Poll, userID primitive.ObjectID, option string) (models.PollVote, error) {
	option = strings.TrimSpace(option)
	if !slices.Contains(poll.Options, option) {
		return models.PollVote{}, ErrUnknownOption
	}
	v := models.PollVote{
		ID:        primitive.NewObjectID(),
		PollID:    poll.ID,
		ClubID:    poll.ClubID,
		UserID:    userID,
		Option:    option,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.votes.InsertOne(ctx, v); err != nil {
		if wafflemongo.IsDup(err) {
			return models.PollVote{}, ErrDuplicateVote
		}
		return models.PollVote{}, err
	}
	return v, nil
}

// Tally returns vote counts per option. Options with no votes are present
// with zero.
func (s *Store) Tally(ctx context.Context, poll models.Poll) (map[string]int, error) {
	out := make(map[string]int, len(poll.Options))
	for _, o := range poll.Options {
		out[o] = 0
	}

	cur, err := s.votes.Aggregate(ctx, []bson.M{
		{"$match": bson.M{"poll_id": poll.ID}},
		{"$group": bson.M{"_id": "$option", "n": bson.M{"$sum": 1}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var row struct {
			Option string `bson:"_id"`
			N      int    `bson:"n"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out[row.Option] = row.N
	}
	return out, cur.Err()
}

// CountVotesByUser returns how many polls the user has voted in, across all
// clubs.
func (s *Store) CountVotesByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.votes.CountDocuments(ctx, bson.M{"user_id": userID})
}
