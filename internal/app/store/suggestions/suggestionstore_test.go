package suggestionstore_test

import (
	"errors"
	"testing"

	suggestionstore "github.com/dalemusser/bourbonclub/internal/app/store/suggestions"
	"github.com/dalemusser/bourbonclub/internal/app/system/indexes"
	"github.com/dalemusser/bourbonclub/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := suggestionstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Club")
	user := fixtures.CreateMember(ctx, "Scout", club.ID)

	sg, err := store.Create(ctx, club.ID, user.ID, "  Old Forester 1920 ", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if sg.Name != "Old Forester 1920" {
		t.Errorf("name not trimmed: %q", sg.Name)
	}
	if _, err := store.Create(ctx, club.ID, user.ID, " ", ""); err == nil {
		t.Error("expected error for empty name")
	}

	list, err := store.ListByClub(ctx, club.ID)
	if err != nil || len(list) != 1 {
		t.Errorf("ListByClub: got %d, %v", len(list), err)
	}
}

func TestStore_VoteAndCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := suggestionstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	club := fixtures.CreateClub(ctx, "Club")
	author := fixtures.CreateMember(ctx, "Author", club.ID)
	v1 := fixtures.CreateMember(ctx, "Voter One", club.ID)
	v2 := fixtures.CreateMember(ctx, "Voter Two", club.ID)

	sg, err := store.Create(ctx, club.ID, author.ID, "Elijah Craig Barrel Proof", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := store.Vote(ctx, sg, author.ID); !errors.Is(err, suggestionstore.ErrOwnSuggestion) {
		t.Errorf("expected ErrOwnSuggestion, got %v", err)
	}
	if _, err := store.Vote(ctx, sg, v1.ID); err != nil {
		t.Fatalf("Vote failed: %v", err)
	}
	if _, err := store.Vote(ctx, sg, v2.ID); err != nil {
		t.Fatalf("Vote failed: %v", err)
	}
	if _, err := store.Vote(ctx, sg, v1.ID); !errors.Is(err, suggestionstore.ErrDuplicateVote) {
		t.Errorf("expected ErrDuplicateVote, got %v", err)
	}

	counts, err := store.VoteCounts(ctx, club.ID)
	if err != nil {
		t.Fatalf("VoteCounts failed: %v", err)
	}
	if counts[sg.ID] != 2 {
		t.Errorf("VoteCounts: got %d, want 2", counts[sg.ID])
	}

	received, err := store.CountVotesReceived(ctx, author.ID)
	if err != nil || received != 2 {
		t.Errorf("CountVotesReceived: got %d, %v", received, err)
	}
	made, err := store.CountByUser(ctx, author.ID)
	if err != nil || made != 1 {
		t.Errorf("CountByUser: got %d, %v", made, err)
	}
}
