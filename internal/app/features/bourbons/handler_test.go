package bourbons_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dalemusser/bourbonclub/internal/app/engine/compare"
	"github.com/dalemusser/bourbonclub/internal/app/engine/ratings"
	"github.com/dalemusser/bourbonclub/internal/app/features/bourbons"
	"github.com/dalemusser/bourbonclub/internal/domain/models"
	"github.com/dalemusser/bourbonclub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func ptr(v float64) *float64 { return &v }

func newTestHandler(t *testing.T) (*bourbons.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return bourbons.NewHandler(db, nil, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestServeList_AnnotatesClubBourbons(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Club")
	other := fixtures.CreateClub(ctx, "Other")
	u1 := fixtures.CreateMember(ctx, "One", club.ID)
	u2 := fixtures.CreateMember(ctx, "Two", club.ID)

	b := fixtures.CreateBourbon(ctx, club.ID, "Buffalo Trace", ptr(30), ptr(90))
	fixtures.CreateBourbon(ctx, club.ID, "Unreviewed", nil, nil)
	fixtures.CreateBourbon(ctx, other.ID, "Elsewhere", nil, nil)
	fixtures.CreateReview(ctx, club.ID, b.ID, u1.ID, 8)
	fixtures.CreateReview(ctx, club.ID, b.ID, u2.ID, 6)

	req := testutil.WithScope(testutil.NewRequest("GET", "/bourbons"), u1.ID, club.ID)
	rec := testutil.NewRecorder()
	handler.ServeList(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Bourbons []ratings.AnnotatedBourbon `json:"bourbons"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp.Bourbons) != 2 {
		t.Fatalf("expected 2 club bourbons, got %d", len(resp.Bourbons))
	}
	for _, ab := range resp.Bourbons {
		switch ab.Name {
		case "Buffalo Trace":
			if ab.AvgRating == nil || *ab.AvgRating != 7 || ab.ReviewCount != 2 {
				t.Errorf("annotations: %+v", ab)
			}
			// 7 / 30 * 10
			if ab.ValueScore == nil || *ab.ValueScore < 2.33 || *ab.ValueScore > 2.34 {
				t.Errorf("value score: %v", ab.ValueScore)
			}
		case "Unreviewed":
			if ab.AvgRating != nil || ab.ReviewCount != 0 || ab.ValueScore != nil {
				t.Errorf("unreviewed should carry no rating: %+v", ab)
			}
		default:
			t.Errorf("unexpected bourbon %q", ab.Name)
		}
	}
}

func TestServeList_NoScope(t *testing.T) {
	handler, _ := newTestHandler(t)
	rec := testutil.NewRecorder()
	handler.ServeList(rec, testutil.NewRequest("GET", "/bourbons"))
	rec.AssertStatus(t, http.StatusForbidden)
}

func TestHandleCreate(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Club")
	user := fixtures.CreateMember(ctx, "Host", club.ID)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid", `{"name":"  Four Roses  Single Barrel ","proof":100,"price":45}`, http.StatusCreated},
		{"missing name", `{"proof":100}`, http.StatusUnprocessableEntity},
		{"negative price", `{"name":"X","price":-1}`, http.StatusUnprocessableEntity},
		{"unknown field", `{"name":"X","color":"amber"}`, http.StatusBadRequest},
		{"empty body", ``, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.WithScope(testutil.NewJSONRequest("POST", "/bourbons", tt.body), user.ID, club.ID)
			rec := testutil.NewRecorder()
			handler.HandleCreate(rec, req)
			rec.AssertStatus(t, tt.want)
		})
	}

	list, err := handler.Bourbons.ListByClub(ctx, club.ID)
	if err != nil {
		t.Fatalf("ListByClub failed: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Four Roses Single Barrel" {
		t.Errorf("unexpected catalog: %+v", list)
	}
}

func TestServeCompare(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Club")
	other := fixtures.CreateClub(ctx, "Other")
	user := fixtures.CreateMember(ctx, "One", club.ID)
	a := fixtures.CreateBourbon(ctx, club.ID, "A", ptr(40), ptr(90))
	b := fixtures.CreateBourbon(ctx, club.ID, "B", ptr(60), ptr(110))
	foreign := fixtures.CreateBourbon(ctx, other.ID, "Foreign", nil, ptr(150))
	fixtures.CreateReview(ctx, club.ID, a.ID, user.ID, 9)

	t.Run("drops ids from other clubs", func(t *testing.T) {
		target := "/bourbons/compare?ids=" + a.ID.Hex() + "," + b.ID.Hex() + "," + foreign.ID.Hex()
		req := testutil.WithScope(testutil.NewRequest("GET", target), user.ID, club.ID)
		rec := testutil.NewRecorder()
		handler.ServeCompare(rec, req)
		rec.AssertStatus(t, http.StatusOK)

		var res compare.Result
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if len(res.Rows) != 2 || res.Rows[0].BourbonID != a.ID || res.Rows[1].BourbonID != b.ID {
			t.Fatalf("rows: %+v", res.Rows)
		}
		if !res.Rows[1].BestProof || !res.Rows[0].BestRating {
			t.Errorf("best flags: %+v", res.Rows)
		}
	})

	tests := []struct {
		name string
		ids  string
		want int
	}{
		{"one id", a.ID.Hex(), http.StatusBadRequest},
		{"duplicates collapse", a.ID.Hex() + "," + a.ID.Hex(), http.StatusBadRequest},
		{"malformed", a.ID.Hex() + ",nope", http.StatusBadRequest},
		{"too many", idList(5), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.WithScope(testutil.NewRequest("GET", "/bourbons/compare?ids="+tt.ids), user.ID, club.ID)
			rec := testutil.NewRecorder()
			handler.ServeCompare(rec, req)
			rec.AssertStatus(t, tt.want)
		})
	}
}

func idList(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			s += ","
		}
		s += primitive.NewObjectID().Hex()
	}
	return s
}

func TestServeView(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Club")
	other := fixtures.CreateClub(ctx, "Other")
	user := fixtures.CreateMember(ctx, "One", club.ID)
	b := fixtures.CreateBourbon(ctx, club.ID, "Weller 12", nil, nil)
	foreign := fixtures.CreateBourbon(ctx, other.ID, "Foreign", nil, nil)
	fixtures.CreateReview(ctx, club.ID, b.ID, user.ID, 8)

	req := testutil.WithScope(testutil.NewRequest("GET", "/bourbons/"+b.ID.Hex()), user.ID, club.ID)
	req = testutil.WithChiURLParam(req, "id", b.ID.Hex())
	rec := testutil.NewRecorder()
	handler.ServeView(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Bourbon models.Bourbon  `json:"bourbon"`
		Stats   ratings.Summary `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Stats.ReviewCount != 1 || resp.Bourbon.ID != b.ID {
		t.Errorf("unexpected view: %+v", resp)
	}

	req = testutil.WithScope(testutil.NewRequest("GET", "/bourbons/"+foreign.ID.Hex()), user.ID, club.ID)
	req = testutil.WithChiURLParam(req, "id", foreign.ID.Hex())
	rec = testutil.NewRecorder()
	handler.ServeView(rec, req)
	rec.AssertStatus(t, http.StatusNotFound)
}
