package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/bourbonclub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to insert into %s: %v", coll, err)
	}
}

// CreateClub creates an active club.
func (f *Fixtures) CreateClub(ctx context.Context, name string) models.Club {
	f.t.Helper()
	now := time.Now().UTC()
	c := models.Club{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Status:    models.ClubActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "clubs", c)
	return c
}

// CreateUser creates an active user with no current club.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	now := time.Now().UTC()
	u := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		Status:     models.UserActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.insert(ctx, "users", u)
	return u
}

// CreateMembership adds userID to clubID with the given role.
func (f *Fixtures) CreateMembership(ctx context.Context, userID, clubID primitive.ObjectID, role string) models.Membership {
	f.t.Helper()
	m := models.Membership{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		ClubID:    clubID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	f.insert(ctx, "club_memberships", m)
	return m
}

// CreateMember creates a user who belongs to clubID as a member.
func (f *Fixtures) CreateMember(ctx context.Context, fullName string, clubID primitive.ObjectID) models.User {
	f.t.Helper()
	u := f.CreateUser(ctx, fullName, text.Fold(fullName)+"@test.com")
	f.CreateMembership(ctx, u.ID, clubID, models.RoleMember)
	return u
}

// CreateBourbon creates a bourbon in clubID. price and proof may be nil.
func (f *Fixtures) CreateBourbon(ctx context.Context, clubID primitive.ObjectID, name string, price, proof *float64) models.Bourbon {
	f.t.Helper()
	now := time.Now().UTC()
	b := models.Bourbon{
		ID:        primitive.NewObjectID(),
		ClubID:    clubID,
		Name:      name,
		NameCI:    text.Fold(name),
		Price:     price,
		Proof:     proof,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "bourbons", b)
	return b
}

// CreateReview inserts a normalized standalone legacy review.
func (f *Fixtures) CreateReview(ctx context.Context, clubID, bourbonID, userID primitive.ObjectID, rating float64) models.Review {
	f.t.Helper()
	now := time.Now().UTC()
	r := models.Review{
		ID:        primitive.NewObjectID(),
		ClubID:    clubID,
		BourbonID: bourbonID,
		UserID:    userID,
		Rating:    rating,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.Normalize(); err != nil {
		f.t.Fatalf("invalid review fixture: %v", err)
	}
	f.insert(ctx, "reviews", r)
	return r
}

// CreateMeeting creates a meeting in clubID on date.
func (f *Fixtures) CreateMeeting(ctx context.Context, clubID primitive.ObjectID, title string, date time.Time) models.Meeting {
	f.t.Helper()
	now := time.Now().UTC()
	m := models.Meeting{
		ID:        primitive.NewObjectID(),
		ClubID:    clubID,
		Title:     title,
		Date:      date.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "meetings", m)
	return m
}

// CreateMeetingBourbon pours bourbonID at meeting.
func (f *Fixtures) CreateMeetingBourbon(ctx context.Context, meeting models.Meeting, bourbonID primitive.ObjectID) models.MeetingBourbon {
	f.t.Helper()
	mb := models.MeetingBourbon{
		ID:        primitive.NewObjectID(),
		ClubID:    meeting.ClubID,
		MeetingID: meeting.ID,
		BourbonID: bourbonID,
		CreatedAt: time.Now().UTC(),
	}
	f.insert(ctx, "meeting_bourbons", mb)
	return mb
}

// CreateRSVP records userID's status for meeting.
func (f *Fixtures) CreateRSVP(ctx context.Context, userID primitive.ObjectID, meeting models.Meeting, status string) models.RSVP {
	f.t.Helper()
	r := models.RSVP{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		MeetingID:   meeting.ID,
		ClubID:      meeting.ClubID,
		MeetingDate: meeting.Date,
		Status:      status,
		UpdatedAt:   time.Now().UTC(),
	}
	f.insert(ctx, "rsvps", r)
	return r
}

// Date returns midnight UTC on the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
