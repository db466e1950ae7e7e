package validators_test

import (
	"testing"
	"time"

	"github.com/dalemusser/bourbonclub/internal/app/system/validators"
	"github.com/dalemusser/bourbonclub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	have := make(map[string]bool)
	for _, n := range names {
		have[n] = true
	}
	for _, want := range []string{"clubs", "users", "club_memberships", "bourbons", "reviews", "rsvps", "user_achievements"} {
		if !have[want] {
			t.Errorf("expected collection %q to exist", want)
		}
	}
}

func TestRSVPValidator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	tests := []struct {
		name    string
		status  string
		wantErr bool
	}{
		{"going", "going", false},
		{"not going", "not_going", false},
		{"unknown status", "attending", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := db.Collection("rsvps").InsertOne(ctx, bson.M{
				"user_id":      primitive.NewObjectID(),
				"meeting_id":   primitive.NewObjectID(),
				"club_id":      primitive.NewObjectID(),
				"meeting_date": time.Now().UTC(),
				"status":       tt.status,
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("insert status %q: err=%v, wantErr=%v", tt.status, err, tt.wantErr)
			}
		})
	}
}

func TestReviewsValidator_RequiredFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	_, err := db.Collection("reviews").InsertOne(ctx, bson.M{"user_id": primitive.NewObjectID()})
	if err == nil {
		t.Error("expected validation error when inserting review without required fields")
	}
}
