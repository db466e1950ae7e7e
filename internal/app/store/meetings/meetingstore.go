// internal/app/store/meetings/meetingstore.go
package meetingstore

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
	errTitleNeeded = errors.New("meeting title is required")
	errDateNeeded  = errors.New("meeting date is required")

	// ErrDuplicatePour is returned when a bourbon is poured twice at one meeting.
	ErrDuplicatePour = errors.New("bourbon is already on this meeting's pour list")
)

// Store covers meetings and the bourbons poured at them.
type Store struct {
	c     *mongo.Collection
	pours *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("meetings"),
		pours: db.Collection("meeting_bourbons"),
	}
}

// Create schedules a meeting in clubID.
func (s *Store) Create(ctx context.Context, clubID primitive.ObjectID, title, location string, date time.Time) (models.Meeting, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Meeting{}, errTitleNeeded
	}
	if date.IsZero() {
		return models.Meeting{}, errDateNeeded
	}
	now := time.Now().UTC()
	m := models.Meeting{
		ID:        primitive.NewObjectID(),
		ClubID:    clubID,
		Title:     title,
		Location:  strings.TrimSpace(location),
		Date:      date.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Meeting{}, err
	}
	return m, nil
}

// GetByID loads a meeting in clubID. A meeting from another club is
// reported as mongo.ErrNoDocuments.
func (s *Store) GetByID(ctx context.Context, clubID, id primitive.ObjectID) (models.Meeting, error) {
	var m models.Meeting
	err := s.c.FindOne(ctx, bson.M{"_id": id, "club_id": clubID}).Decode(&m)
	return m, err
}

// ListByClub returns the club's meetings, oldest first.
func (s *Store) ListByClub(ctx context.Context, clubID primitive.ObjectID) ([]models.Meeting, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"club_id": clubID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Meeting
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddPour puts bourbonID on the meeting's pour list at the next position.
func (s *Store) AddPour(ctx context.Context, meeting models.Meeting, bourbonID primitive.ObjectID) (models.MeetingBourbon, error) {
	n, err := s.pours.CountDocuments(ctx, bson.M{"meeting_id": meeting.ID})
	if err != nil {
		return models.MeetingBourbon{}, err
	}
	mb := models.MeetingBourbon{
		ID:        primitive.NewObjectID(),
		ClubID:    meeting.ClubID,
		MeetingID: meeting.ID,
		BourbonID: bourbonID,
		Position:  int(n) + 1,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.pours.InsertOne(ctx, mb); err != nil {
		if wafflemongo.IsDup(err) {
			return models.MeetingBourbon{}, ErrDuplicatePour
		}
		return models.MeetingBourbon{}, err
	}
	return mb, nil
}

// GetPour loads one meeting pour in clubID.
func (s *Store) GetPour(ctx context.Context, clubID, id primitive.ObjectID) (models.MeetingBourbon, error) {
	var mb models.MeetingBourbon
	err := s.pours.FindOne(ctx, bson.M{"_id": id, "club_id": clubID}).Decode(&mb)
	return mb, err
}

// ListPours returns a meeting's pours in pour order.
func (s *Store) ListPours(ctx context.Context, meetingID primitive.ObjectID) ([]models.MeetingBourbon, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.pours.Find(ctx, bson.M{"meeting_id": meetingID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.MeetingBourbon
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
