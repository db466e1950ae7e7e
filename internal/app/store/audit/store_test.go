package audit_test

import (
	"testing"
	"time"

	"github.com/dalemusser/bourbonclub/internal/app/store/audit"
	"github.com/dalemusser/bourbonclub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Log(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	clubID := primitive.NewObjectID()
	event := audit.Event{
		Category:  audit.CategoryMember,
		EventType: audit.EventClubSwitched,
		ClubID:    &clubID,
		UserID:    &userID,
		IP:        "192.168.1.1",
		UserAgent: "TestBrowser/1.0",
		Success:   true,
	}

	if err := store.Log(ctx, event); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	events, err := store.GetByUser(ctx, userID, 10)
	if err != nil {
		t.Fatalf("GetByUser failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].ID.IsZero() {
		t.Error("expected ID to be auto-generated")
	}
	if events[0].Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

func TestStore_GetByClub_ScopedAndNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}

	clubA := primitive.NewObjectID()
	clubB := primitive.NewObjectID()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, et := range []string{audit.EventBourbonAdded, audit.EventMeetingCreated, audit.EventPollCreated} {
		if err := store.Log(ctx, audit.Event{
			Category:  audit.CategoryAdmin,
			EventType: et,
			ClubID:    &clubA,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Success:   true,
		}); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}
	if err := store.Log(ctx, audit.Event{Category: audit.CategoryAdmin, EventType: audit.EventBourbonAdded, ClubID: &clubB, Success: true}); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	events, err := store.GetByClub(ctx, clubA, 10)
	if err != nil {
		t.Fatalf("GetByClub failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].EventType != audit.EventPollCreated || events[2].EventType != audit.EventBourbonAdded {
		t.Errorf("expected newest first, got %s..%s", events[0].EventType, events[2].EventType)
	}

	limited, err := store.GetByClub(ctx, clubA, 2)
	if err != nil || len(limited) != 2 {
		t.Errorf("limit: got %d, %v", len(limited), err)
	}
}

func TestStore_QueryFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := primitive.NewObjectID()
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	events := []audit.Event{
		{Category: audit.CategoryAdmin, EventType: audit.EventReviewRemoved, ClubID: &club, Timestamp: base},
		{Category: audit.CategoryAdmin, EventType: audit.EventBourbonAdded, ClubID: &club, Timestamp: base.Add(24 * time.Hour)},
		{Category: audit.CategoryMember, EventType: audit.EventClubSwitched, ClubID: &club, Timestamp: base.Add(48 * time.Hour)},
	}
	for _, e := range events {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	start := base.Add(12 * time.Hour)
	tests := []struct {
		name   string
		filter audit.QueryFilter
		want   int64
	}{
		{"club", audit.QueryFilter{ClubID: &club}, 3},
		{"category", audit.QueryFilter{ClubID: &club, Category: audit.CategoryAdmin}, 2},
		{"event type", audit.QueryFilter{EventType: audit.EventReviewRemoved}, 1},
		{"since", audit.QueryFilter{ClubID: &club, StartTime: &start}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := store.CountByFilter(ctx, tt.filter)
			if err != nil {
				t.Fatalf("CountByFilter failed: %v", err)
			}
			if n != tt.want {
				t.Errorf("got %d, want %d", n, tt.want)
			}
		})
	}
}
