package bourbonstore_test

import (
	"testing"

	bourbonstore "github.com/dalemusser/bourbonclub/internal/app/store/bourbons"
	"github.com/dalemusser/bourbonclub/internal/domain/models"
	"github.com/dalemusser/bourbonclub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func ptr(v float64) *float64 { return &v }

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := bourbonstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := primitive.NewObjectID()
	b, err := store.Create(ctx, club, models.Bourbon{Name: " Blanton's  Original ", Proof: ptr(93), Price: ptr(65)})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if b.Name != "Blanton's Original" || b.NameCI == "" || b.ClubID != club {
		t.Errorf("unexpected bourbon: %+v", b)
	}

	got, err := store.GetByID(ctx, club, b.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Proof == nil || *got.Proof != 93 {
		t.Errorf("proof: got %v", got.Proof)
	}
	if got.Age != nil {
		t.Errorf("unknown age should stay nil, got %v", *got.Age)
	}
}

func TestStore_Create_Invalid(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := bourbonstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tests := []struct {
		name string
		b    models.Bourbon
	}{
		{"empty name", models.Bourbon{Name: " "}},
		{"negative price", models.Bourbon{Name: "X", Price: ptr(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.Create(ctx, primitive.NewObjectID(), tt.b); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestStore_ClubScoping(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := bourbonstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mine := fixtures.CreateClub(ctx, "Mine")
	theirs := fixtures.CreateClub(ctx, "Theirs")
	weller := fixtures.CreateBourbon(ctx, mine.ID, "Weller", nil, nil)
	blantons := fixtures.CreateBourbon(ctx, mine.ID, "Blanton's", nil, nil)
	other := fixtures.CreateBourbon(ctx, theirs.ID, "Booker's", nil, nil)

	list, err := store.ListByClub(ctx, mine.ID)
	if err != nil {
		t.Fatalf("ListByClub failed: %v", err)
	}
	if len(list) != 2 || list[0].ID != blantons.ID || list[1].ID != weller.ID {
		t.Errorf("expected [Blanton's Weller], got %+v", list)
	}

	if _, err := store.GetByID(ctx, mine.ID, other.ID); err != mongo.ErrNoDocuments {
		t.Errorf("cross-club get: expected ErrNoDocuments, got %v", err)
	}

	byIDs, err := store.ListByIDs(ctx, mine.ID, []primitive.ObjectID{weller.ID, other.ID})
	if err != nil {
		t.Fatalf("ListByIDs failed: %v", err)
	}
	if len(byIDs) != 1 || byIDs[0].ID != weller.ID {
		t.Errorf("expected only Weller, got %+v", byIDs)
	}
}
