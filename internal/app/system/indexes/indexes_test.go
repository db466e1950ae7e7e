package indexes_test

import (
	"context"
	"testing"

	"github.com/dalemusser/bourbonclub/internal/app/system/indexes"
	"github.com/dalemusser/bourbonclub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func indexNames(t *testing.T, ctx context.Context, db *mongo.Database, coll string) map[string]bool {
	t.Helper()
	cur, err := db.Collection(coll).Indexes().List(ctx)
	if err != nil {
		t.Fatalf("List indexes failed: %v", err)
	}
	defer cur.Close(ctx)

	names := make(map[string]bool)
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			continue
		}
		if name, ok := idx["name"].(string); ok {
			names[name] = true
		}
	}
	return names
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	tests := []struct {
		coll  string
		names []string
	}{
		{"club_memberships", []string{"uniq_cm_user_club", "idx_cm_user_created"}},
		{"reviews", []string{"uniq_reviews_user_bourbon_standalone", "uniq_reviews_user_meetingbourbon", "idx_reviews_club_bourbon__id"}},
		{"rsvps", []string{"uniq_rsvps_user_meeting", "idx_rsvps_user_club_date"}},
		{"poll_votes", []string{"uniq_pv_poll_user"}},
		{"suggestion_votes", []string{"uniq_sv_suggestion_user", "idx_sv_suggested_by"}},
		{"user_achievements", []string{"uniq_ua_user_key"}},
	}
	for _, tt := range tests {
		t.Run(tt.coll, func(t *testing.T) {
			got := indexNames(t, ctx, db, tt.coll)
			for _, name := range tt.names {
				if !got[name] {
					t.Errorf("expected index %q on %s", name, tt.coll)
				}
			}
		})
	}
}

func TestEnsureAll_ReviewScopesAreIndependent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	reviews := db.Collection("reviews")
	user, bourbon, pour := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

	if _, err := reviews.InsertOne(ctx, bson.M{"user_id": user, "bourbon_id": bourbon, "standalone": true}); err != nil {
		t.Fatalf("standalone insert: %v", err)
	}
	// Same bourbon, meeting-bound: a different scope.
	if _, err := reviews.InsertOne(ctx, bson.M{"user_id": user, "bourbon_id": bourbon, "standalone": false, "meeting_bourbon_id": pour}); err != nil {
		t.Fatalf("meeting-bound insert: %v", err)
	}
	if _, err := reviews.InsertOne(ctx, bson.M{"user_id": user, "bourbon_id": bourbon, "standalone": true}); err == nil {
		t.Error("expected duplicate standalone review to be rejected")
	}
	if _, err := reviews.InsertOne(ctx, bson.M{"user_id": user, "bourbon_id": bourbon, "standalone": false, "meeting_bourbon_id": pour}); err == nil {
		t.Error("expected duplicate meeting-bound review to be rejected")
	}
}
