package rsvpstore_test

import (
	"errors"
	"testing"
	"time"

	rsvpstore "github.com/dalemusser/bourbonclub/internal/app/store/rsvps"
	"github.com/dalemusser/bourbonclub/internal/app/system/indexes"
	"github.com/dalemusser/bourbonclub/internal/domain/models"
	"github.com/dalemusser/bourbonclub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Set_LastWriteWins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := rsvpstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	club := fixtures.CreateClub(ctx, "Club")
	user := fixtures.CreateMember(ctx, "Taster", club.ID)
	meeting := fixtures.CreateMeeting(ctx, club.ID, "March", testutil.Date(2026, 3, 1))

	first, err := store.Set(ctx, user.ID, meeting, models.RSVPGoing)
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	second, err := store.Set(ctx, user.ID, meeting, models.RSVPNotGoing)
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if first.ID != second.ID {
		t.Error("second write should update the same document")
	}
	if second.Status != models.RSVPNotGoing || !second.MeetingDate.Equal(meeting.Date) || second.ClubID != club.ID {
		t.Errorf("unexpected rsvp: %+v", second)
	}

	n, err := db.Collection("rsvps").CountDocuments(ctx, bson.M{"user_id": user.ID})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 rsvp document, got %d", n)
	}
}

func TestStore_Set_BadStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := rsvpstore.New(db).Set(ctx, primitive.NewObjectID(), models.Meeting{}, "Going")
	if !errors.Is(err, rsvpstore.ErrBadStatus) {
		t.Errorf("expected ErrBadStatus, got %v", err)
	}
}

func TestStore_ListAndCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := rsvpstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Club")
	other := fixtures.CreateClub(ctx, "Other")
	user := fixtures.CreateMember(ctx, "Taster", club.ID)

	m1 := fixtures.CreateMeeting(ctx, club.ID, "Jan", testutil.Date(2026, 1, 1))
	m2 := fixtures.CreateMeeting(ctx, club.ID, "Feb", testutil.Date(2026, 2, 1))
	m3 := fixtures.CreateMeeting(ctx, other.ID, "Elsewhere", testutil.Date(2026, 1, 15))

	fixtures.CreateRSVP(ctx, user.ID, m2, models.RSVPMaybe)
	fixtures.CreateRSVP(ctx, user.ID, m1, models.RSVPNotGoing)
	fixtures.CreateRSVP(ctx, user.ID, m3, models.RSVPGoing)

	next := fixtures.CreateMeeting(ctx, club.ID, "Next month", time.Now().UTC().AddDate(0, 1, 0))
	fixtures.CreateRSVP(ctx, user.ID, next, models.RSVPGoing)

	list, err := store.ListByUserClub(ctx, user.ID, club.ID)
	if err != nil {
		t.Fatalf("ListByUserClub failed: %v", err)
	}
	if len(list) != 3 || list[0].MeetingID != m1.ID || list[1].MeetingID != m2.ID || list[2].MeetingID != next.ID {
		t.Errorf("expected [Jan Feb Next month], got %+v", list)
	}

	n, err := store.CountAttended(ctx, user.ID, time.Now())
	if err != nil {
		t.Fatalf("CountAttended failed: %v", err)
	}
	if n != 2 {
		t.Errorf("CountAttended: got %d, want 2 (maybe + going, future meeting excluded)", n)
	}

	n, err = store.CountAttended(ctx, user.ID, next.Date)
	if err != nil {
		t.Fatalf("CountAttended as of next meeting failed: %v", err)
	}
	if n != 3 {
		t.Errorf("CountAttended as of next meeting: got %d, want 3", n)
	}
}
