package meetingstore_test

import (
	"errors"
	"testing"
	"time"

	meetingstore "github.com/dalemusser/bourbonclub/internal/app/store/meetings"
	"github.com/dalemusser/bourbonclub/internal/app/system/indexes"
	"github.com/dalemusser/bourbonclub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_CreateAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := meetingstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Club")
	other := fixtures.CreateClub(ctx, "Other")

	later, err := store.Create(ctx, club.ID, " April Pour ", "Den", testutil.Date(2026, 4, 1))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	earlier, err := store.Create(ctx, club.ID, "March Pour", "", testutil.Date(2026, 3, 1))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, other.ID, "Elsewhere", "", testutil.Date(2026, 1, 1)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if later.Title != "April Pour" {
		t.Errorf("title not trimmed: %q", later.Title)
	}

	list, err := store.ListByClub(ctx, club.ID)
	if err != nil {
		t.Fatalf("ListByClub failed: %v", err)
	}
	if len(list) != 2 || list[0].ID != earlier.ID || list[1].ID != later.ID {
		t.Errorf("expected [March April], got %+v", list)
	}

	if _, err := store.GetByID(ctx, other.ID, later.ID); err != mongo.ErrNoDocuments {
		t.Errorf("cross-club get: expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_Create_Invalid(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := meetingstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := testutil.NewFixtures(t, db).CreateClub(ctx, "Club")
	if _, err := store.Create(ctx, club.ID, "  ", "", testutil.Date(2026, 1, 1)); err == nil {
		t.Error("expected error for empty title")
	}
	if _, err := store.Create(ctx, club.ID, "X", "", time.Time{}); err == nil {
		t.Error("expected error for zero date")
	}
}

func TestStore_Pours(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := meetingstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	club := fixtures.CreateClub(ctx, "Club")
	meeting := fixtures.CreateMeeting(ctx, club.ID, "March", testutil.Date(2026, 3, 1))
	a := fixtures.CreateBourbon(ctx, club.ID, "A", nil, nil)
	b := fixtures.CreateBourbon(ctx, club.ID, "B", nil, nil)

	first, err := store.AddPour(ctx, meeting, a.ID)
	if err != nil {
		t.Fatalf("AddPour failed: %v", err)
	}
	second, err := store.AddPour(ctx, meeting, b.ID)
	if err != nil {
		t.Fatalf("AddPour failed: %v", err)
	}
	if first.Position != 1 || second.Position != 2 {
		t.Errorf("positions: got %d, %d", first.Position, second.Position)
	}
	if _, err := store.AddPour(ctx, meeting, a.ID); !errors.Is(err, meetingstore.ErrDuplicatePour) {
		t.Errorf("expected ErrDuplicatePour, got %v", err)
	}

	pours, err := store.ListPours(ctx, meeting.ID)
	if err != nil {
		t.Fatalf("ListPours failed: %v", err)
	}
	if len(pours) != 2 || pours[0].BourbonID != a.ID {
		t.Errorf("unexpected pours: %+v", pours)
	}

	got, err := store.GetPour(ctx, club.ID, second.ID)
	if err != nil || got.BourbonID != b.ID {
		t.Errorf("GetPour: got %+v, %v", got, err)
	}
}
