package discover_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dalemusser/bourbonclub/internal/app/engine/discovery"
	"github.com/dalemusser/bourbonclub/internal/app/features/discover"
	"github.com/dalemusser/bourbonclub/internal/domain/models"
	"github.com/dalemusser/bourbonclub/internal/testutil"
	"go.uber.org/zap"
)

func ptr(v float64) *float64 { return &v }

type response struct {
	Matches  []discovery.Match `json:"matches"`
	Warnings []struct {
		Field string `json:"field"`
	} `json:"warnings"`
}

func TestHandleMatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := discover.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Club")
	user := fixtures.CreateMember(ctx, "Taster", club.ID)
	sweet := fixtures.CreateBourbon(ctx, club.ID, "Sweet One", ptr(40), ptr(90))
	hot := fixtures.CreateBourbon(ctx, club.ID, "Hot One", ptr(120), ptr(130))

	// a sweet-noted review for the first bourbon
	if _, err := db.Collection("reviews").InsertOne(ctx, models.Review{
		ClubID:     club.ID,
		BourbonID:  sweet.ID,
		UserID:     user.ID,
		Rating:     8,
		Standalone: true,
		Notes:      models.ReviewNotes{Palate: "vanilla and caramel", Finish: "honey"},
	}); err != nil {
		t.Fatalf("insert review: %v", err)
	}

	t.Run("valid profile", func(t *testing.T) {
		body := `{"flavor":"sweet","priceBand":{"min":20,"max":60},"proofBand":{"min":80,"max":100},"experience":"beginner"}`
		req := testutil.WithScope(testutil.NewJSONRequest("POST", "/discover", body), user.ID, club.ID)
		rec := testutil.NewRecorder()
		handler.HandleMatch(rec, req)
		rec.AssertStatus(t, http.StatusOK)

		var resp response
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if len(resp.Matches) != 2 || resp.Matches[0].Bourbon.ID != sweet.ID {
			t.Fatalf("expected Sweet One first, got %+v", resp.Matches)
		}
		// rating 8 + 3 flavor hits + 4 experience + 3 price + 3 proof
		if got := resp.Matches[0].MatchScore; got != 21 {
			t.Errorf("match score: got %v, want 21", got)
		}
		if resp.Matches[1].Bourbon.ID != hot.ID || resp.Matches[1].MatchScore != 0 {
			t.Errorf("second match: %+v", resp.Matches[1])
		}
		if len(resp.Warnings) != 0 {
			t.Errorf("unexpected warnings: %+v", resp.Warnings)
		}
	})

	t.Run("unknown values degrade to warnings", func(t *testing.T) {
		body := `{"flavor":"smoky","priceBand":{"min":0,"max":1000},"proofBand":{"min":0,"max":200},"experience":"legend"}`
		req := testutil.WithScope(testutil.NewJSONRequest("POST", "/discover", body), user.ID, club.ID)
		rec := testutil.NewRecorder()
		handler.HandleMatch(rec, req)
		rec.AssertStatus(t, http.StatusOK)

		var resp response
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if len(resp.Warnings) != 2 {
			t.Errorf("expected flavor and experience warnings, got %+v", resp.Warnings)
		}
		for _, m := range resp.Matches {
			if m.Breakdown.Flavor != 0 || m.Breakdown.Experience != 0 {
				t.Errorf("unknown values must contribute zero: %+v", m.Breakdown)
			}
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		req := testutil.WithScope(testutil.NewJSONRequest("POST", "/discover", `{"flavor":`), user.ID, club.ID)
		rec := testutil.NewRecorder()
		handler.HandleMatch(rec, req)
		rec.AssertStatus(t, http.StatusBadRequest)
	})
}
